// Package sysname parses and repairs star system names produced by the
// galactic procedural naming scheme, correcting common human typing errors
// against the fixed sector catalog. It performs no I/O.
package sysname

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// Candidate is one ranked catalog search result handed to the corrector.
type Candidate struct {
	Name     string
	Distance int
}

const sectorToken = "SECTOR"

var sectorSet = buildSectorSet()

func buildSectorSet() map[string]struct{} {
	set := make(map[string]struct{}, len(Sectors))
	for _, name := range Sectors {
		set[name] = struct{}{}
	}
	return set
}

// Correct attempts to repair a reported system name. The search argument
// carries ranked catalog matches for the raw name, used only for short named
// (non-procedural) systems. Returns the corrected name and true, or "" and
// false when no correction is available. All comparisons are uppercase.
func Correct(system string, search []Candidate) (string, bool) {
	system = strings.ToUpper(strings.TrimSpace(system))

	// Fewer than 3 words is probably a misspelled named system rather than
	// a procedural one; trust a very close catalog match.
	if len(strings.Fields(system)) < 3 {
		if len(search) > 0 && search[0].Distance < 2 {
			return strings.ToUpper(search[0].Name), true
		}
	}

	sectorPart, suffix, ok := splitSector(system)
	if !ok {
		return "", false
	}

	sectorPhrase := sectorPart + " " + sectorToken
	if _, known := sectorSet[sectorPhrase]; !known {
		if corrected, found := nearestSector(sectorPhrase); found {
			sectorPhrase = corrected
		}
	}

	if candidate, ok := validate(sectorPhrase, suffix); ok {
		return candidate, true
	}

	fragments := strings.Fields(suffix)
	if len(fragments) < 2 {
		return "", false
	}

	// The mass-code fragment never contains digits; repair lookalikes.
	if strings.ContainsFunc(fragments[0], unicode.IsDigit) {
		fragments[0] = substituteNumbers(fragments[0])
	}

	// The second fragment starts with a class letter followed by digits.
	second := []rune(fragments[1])
	if unicode.IsDigit(second[0]) {
		second[0] = []rune(substituteNumbers(string(second[0])))[0]
	}
	if len(second) > 1 {
		rest := substituteLetters(string(second[1:]))
		second = append(second[:1], []rune(rest)...)
	}
	fragments[1] = string(second)

	if candidate, ok := validate(sectorPhrase, strings.Join(fragments, " ")); ok {
		return candidate, true
	}

	return "", false
}

// splitSector splits a name on the literal SECTOR boundary token, repairing
// a single misspelled boundary token when the literal form is absent.
func splitSector(system string) (sectorPart, suffix string, ok bool) {
	boundary := " " + sectorToken + " "
	if !strings.Contains(system, boundary) {
		repaired, found := repairSectorToken(system)
		if !found {
			return "", "", false
		}
		system = repaired
	}
	parts := strings.Split(system, boundary)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// repairSectorToken looks for a token within edit distance 2 of SECTOR and
// rewrites it, so "COL 285 SEKTOR CD-E F1-2" still finds its boundary.
func repairSectorToken(system string) (string, bool) {
	tokens := strings.Fields(system)
	for i := 1; i < len(tokens)-1; i++ {
		if levenshtein.ComputeDistance(tokens[i], sectorToken) < 3 {
			tokens[i] = sectorToken
			return strings.Join(tokens, " "), true
		}
	}
	return "", false
}

// nearestSector finds the catalog sector closest to the given phrase,
// accepted only below distance 3. Ties resolve by catalog order.
func nearestSector(phrase string) (string, bool) {
	best := ""
	bestDistance := -1
	for _, entry := range Sectors {
		distance := levenshtein.ComputeDistance(phrase, entry)
		if bestDistance == -1 || distance < bestDistance {
			best = entry
			bestDistance = distance
		}
	}
	if bestDistance >= 0 && bestDistance < 3 {
		return best, true
	}
	return "", false
}

// validate accepts a corrected name only when the sector is in the catalog
// and the whole name fits the procedural grammar.
func validate(sectorPhrase, suffix string) (string, bool) {
	if _, known := sectorSet[sectorPhrase]; !known {
		return "", false
	}
	candidate := sectorPhrase + " " + suffix
	if !IsProcedural(candidate) {
		return "", false
	}
	return candidate, true
}
