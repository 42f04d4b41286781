package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/rescue-dispatch/internal/domain"
	"github.com/spec-kit/rescue-dispatch/internal/starsystems"
)

func TestValidateSystemConfirmedAbsorbsCatalogData(t *testing.T) {
	f := newFixture(t)
	f.lookup.checks["DELKAR"] = domain.SystemLookup{
		Name:      "Delkar",
		Confirmed: true,
		Landmark:  &domain.Landmark{Name: "Sol", Distance: 83.2},
	}
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg", System: "DELKAR"})
	require.NoError(t, err)

	require.NoError(t, f.service.ValidateSystem(context.Background(), rescue))
	system := rescue.System()
	require.NotNil(t, system)
	assert.True(t, system.Confirmed)
	assert.Equal(t, "Delkar", system.Name)
	require.NotNil(t, system.Landmark)
	assert.Equal(t, "Sol", system.Landmark.Name)
	assert.Empty(t, system.Corrections)
}

func TestValidateSystemAutocorrectsProceduralName(t *testing.T) {
	f := newFixture(t)
	f.lookup.checks["COL 285 SECTOR CD-E F1-2"] = domain.SystemLookup{
		Name:      "COL 285 SECTOR CD-E F1-2",
		Confirmed: true,
	}
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg", System: "Col 285 Sektor CD-E F1-2"})
	require.NoError(t, err)

	require.NoError(t, f.service.ValidateSystem(context.Background(), rescue))
	system := rescue.System()
	require.NotNil(t, system)
	assert.True(t, system.Confirmed)
	assert.Equal(t, "COL 285 SECTOR CD-E F1-2", system.Name)
	assert.Equal(t, "Col 285 Sektor CD-E F1-2", system.RawName)
}

func TestValidateSystemAutocorrectionLeavesQuoteTrail(t *testing.T) {
	f := newFixture(t)
	f.lookup.checks["COL 285 SECTOR CD-E F1-2"] = domain.SystemLookup{
		Name:      "COL 285 SECTOR CD-E F1-2",
		Confirmed: true,
	}
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg", System: "Col 285 Sektor CD-E F1-2"})
	require.NoError(t, err)

	require.NoError(t, f.service.ValidateSystem(context.Background(), rescue))

	quotes := rescue.Quotes()
	require.NotEmpty(t, quotes)
	last := quotes[len(quotes)-1]
	assert.Contains(t, last.Message, "Autocorrected system name")
	assert.Contains(t, last.Message, "Col 285 Sektor CD-E F1-2")
	assert.Contains(t, last.Message, "COL 285 SECTOR CD-E F1-2")
}

func TestValidateSystemAttachesAtMostNineCorrections(t *testing.T) {
	f := newFixture(t)
	results := make([]starsystems.SearchResult, 0, 12)
	for i := 0; i < 12; i++ {
		results = append(results, starsystems.SearchResult{Name: "LAVE", Distance: i + 1})
	}
	f.lookup.searches["NOWHERE LAND"] = results
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg", System: "Nowhere Land"})
	require.NoError(t, err)

	require.NoError(t, f.service.ValidateSystem(context.Background(), rescue))
	system := rescue.System()
	require.NotNil(t, system)
	assert.False(t, system.Confirmed)
	assert.Len(t, system.Corrections, 9)
}

func TestApplyCorrectionRevalidatesChosenName(t *testing.T) {
	f := newFixture(t)
	f.lookup.checks["LAVE"] = domain.SystemLookup{Name: "Lave", Confirmed: true}
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg", System: "Lавe"})
	require.NoError(t, err)
	system := rescue.System()
	system.Corrections = []string{"LAVE", "LAVEH"}
	rescue.SetSystem(system)

	chosen, err := f.service.ApplyCorrection(context.Background(), rescue, 1)
	require.NoError(t, err)
	assert.Equal(t, "LAVE", chosen)
	assert.True(t, rescue.System().Confirmed)
	assert.Equal(t, "Lave", rescue.System().Name)
}

func TestApplyCorrectionRejectsBadIndex(t *testing.T) {
	f := newFixture(t)
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg", System: "Nowhere"})
	require.NoError(t, err)
	system := rescue.System()
	system.Corrections = []string{"LAVE"}
	rescue.SetSystem(system)

	_, err = f.service.ApplyCorrection(context.Background(), rescue, 0)
	assert.Error(t, err)
	_, err = f.service.ApplyCorrection(context.Background(), rescue, 2)
	assert.Error(t, err)
}

func TestApplyCorrectionWithoutCandidatesFails(t *testing.T) {
	f := newFixture(t)
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg"})
	require.NoError(t, err)
	_, err = f.service.ApplyCorrection(context.Background(), rescue, 1)
	assert.Error(t, err)
}

func TestSetSystemStripsSuffixAndValidates(t *testing.T) {
	f := newFixture(t)
	f.lookup.checks["DELKAR"] = domain.SystemLookup{Name: "Delkar", Confirmed: true}
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg"})
	require.NoError(t, err)

	require.NoError(t, f.service.SetSystem(context.Background(), rescue, "Delkar SYSTEM"))
	require.NotNil(t, rescue.System())
	assert.True(t, rescue.System().Confirmed)
	assert.Equal(t, "Delkar", rescue.System().Name)
}
