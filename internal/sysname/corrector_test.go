package sysname

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrectValidProceduralUnchanged(t *testing.T) {
	name, ok := Correct("COL 285 SECTOR CD-E F1-2", nil)
	require.True(t, ok)
	assert.Equal(t, "COL 285 SECTOR CD-E F1-2", name)
}

func TestCorrectAllCatalogSectorsUnchanged(t *testing.T) {
	for _, sector := range Sectors {
		if !strings.HasSuffix(sector, " SECTOR") {
			// Dark-region sectors have no boundary token and are out of
			// reach for the corrector, as in the reference behavior.
			continue
		}
		input := sector + " CD-E F1-2"
		name, ok := Correct(input, nil)
		require.True(t, ok, "catalog sector %q should validate", sector)
		assert.Equal(t, input, name)
	}
}

func TestCorrectMisspelledBoundaryToken(t *testing.T) {
	name, ok := Correct("COL 285 SEKTOR CD-E F1-2", nil)
	require.True(t, ok)
	assert.Equal(t, "COL 285 SECTOR CD-E F1-2", name)
}

func TestCorrectMisspelledSectorName(t *testing.T) {
	name, ok := Correct("KOL 285 SECTOR CD-E F1-2", nil)
	require.True(t, ok)
	assert.Equal(t, "COL 285 SECTOR CD-E F1-2", name)
}

func TestCorrectSectorTooFarFails(t *testing.T) {
	// Five edits away from any catalog entry: no substitution, and the
	// uncorrected sector fails validation.
	_, ok := Correct("ZZZZZ 285 QECTOB CD-E F1-2", nil)
	assert.False(t, ok)
}

func TestCorrectDigitLookalikeInMassCode(t *testing.T) {
	name, ok := Correct("COL 285 SECTOR 0D-E F1-2", nil)
	require.True(t, ok)
	assert.Equal(t, "COL 285 SECTOR OD-E F1-2", name)
}

func TestCorrectDigitLookalikeRoundTrips(t *testing.T) {
	cases := map[string]string{
		"PEGASI SECTOR 1D-E F1-2": "PEGASI SECTOR LD-E F1-2",
		"PEGASI SECTOR 5D-E F1-2": "PEGASI SECTOR SD-E F1-2",
		"PEGASI SECTOR 8D-E F1-2": "PEGASI SECTOR BD-E F1-2",
		"PEGASI SECTOR 0D-E F1-2": "PEGASI SECTOR OD-E F1-2",
	}
	for input, expected := range cases {
		name, ok := Correct(input, nil)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, expected, name)
	}
}

func TestCorrectLetterLookalikeInNumberPortion(t *testing.T) {
	name, ok := Correct("COL 285 SECTOR CD-E FL-2", nil)
	require.True(t, ok)
	assert.Equal(t, "COL 285 SECTOR CD-E F1-2", name)
}

func TestCorrectDigitAsClassLetter(t *testing.T) {
	name, ok := Correct("COL 285 SECTOR CD-E 81-2", nil)
	require.True(t, ok)
	assert.Equal(t, "COL 285 SECTOR CD-E B1-2", name)
}

func TestCorrectShortNamedSystemUsesSearch(t *testing.T) {
	search := []Candidate{{Name: "Lave", Distance: 1}, {Name: "Leesti", Distance: 4}}
	name, ok := Correct("Lava", search)
	require.True(t, ok)
	assert.Equal(t, "LAVE", name)
}

func TestCorrectShortNamedSystemDistantMatchRejected(t *testing.T) {
	search := []Candidate{{Name: "Lave", Distance: 3}}
	_, ok := Correct("Lvae", search)
	assert.False(t, ok)
}

func TestCorrectNoBoundaryFails(t *testing.T) {
	_, ok := Correct("COMPLETELY MADE UP NAME", nil)
	assert.False(t, ok)
}

func TestCorrectUncorrectableSuffixFails(t *testing.T) {
	_, ok := Correct("COL 285 SECTOR 2D-E F1-2", nil)
	assert.False(t, ok)
}

func TestNearestSectorTieBreaksByCatalogOrder(t *testing.T) {
	// Every distance is computed against the full catalog; equal minimal
	// distances must resolve to the earliest catalog entry.
	first, ok := nearestSector(Sectors[0])
	require.True(t, ok)
	assert.Equal(t, Sectors[0], first)
}

func TestIsProcedural(t *testing.T) {
	assert.True(t, IsProcedural("COL 285 SECTOR CD-E F1-2"))
	assert.True(t, IsProcedural("PEGASI SECTOR AB-C D12"))
	assert.False(t, IsProcedural("Lave"))
	assert.False(t, IsProcedural("COL 285 SECTOR 0D-E F1-2"))
}

func TestCatalogIsUppercase(t *testing.T) {
	for _, sector := range Sectors {
		assert.Equal(t, strings.ToUpper(sector), sector)
	}
}
