package sysname

import "regexp"

// proceduralSystemExpression matches names produced by the galactic
// coordinate naming scheme: a sector phrase, a two-letter mass code pair, a
// dash-separated mass code letter, then a class letter with an optional
// cluster number and a system number, e.g. "COL 285 SECTOR CD-E F1-2".
var proceduralSystemExpression = regexp.MustCompile(
	`([\w\s'.()/-]+) ([A-Za-z])([A-Za-z])-([A-Za-z]) ([A-Za-z])(?:(\d+)-)?(\d+)`)

// IsProcedural reports whether the name fits the procedural grammar.
func IsProcedural(name string) bool {
	return proceduralSystemExpression.FindStringIndex(name) != nil
}

// Mass-code fragments never contain digits; these are the letters commonly
// mistyped as each digit.
var numberSubstitutions = map[rune]rune{
	'1': 'L',
	'5': 'S',
	'8': 'B',
	'0': 'O',
}

// The digits commonly mistyped as each letter, for positions where the
// grammar requires a digit.
var letterSubstitutions = map[rune]rune{
	'L': '1',
	'S': '5',
	'B': '8',
	'O': '0',
}

// substituteNumbers replaces digits with their letter lookalikes.
func substituteNumbers(value string) string {
	return substitute(value, numberSubstitutions)
}

// substituteLetters replaces letters with their digit lookalikes.
func substituteLetters(value string) string {
	return substitute(value, letterSubstitutions)
}

func substitute(value string, table map[rune]rune) string {
	out := []rune(value)
	for i, char := range out {
		if replacement, ok := table[char]; ok {
			out[i] = replacement
		}
	}
	return string(out)
}
