package matcher

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Russian)

const minPartial = 3

// Normalize folds case and replaces punctuation (including '_', which is
// used as a word separator in abbreviated names) with spaces.
func Normalize(s string) string {
	s = lower.String(norm.NFC.String(s))
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func ratio(a, b []rune) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	d := levenshtein.ComputeDistance(string(a), string(b))
	return 100 * (1 - float64(d)/float64(maxLen))
}

// Score returns similarity of two strings on 0-100 scale. When one string
// is much longer than the other, the shorter one is also compared with
// every substring of the same length, so abbreviations like "Матем" still
// score high against "Математика". Strings shorter than minPartial runes
// are only compared as a whole.
func Score(a, b string) int {
	ra, rb := []rune(Normalize(a)), []rune(Normalize(b))
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	best := ratio(ra, rb)

	short, long := ra, rb
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) >= minPartial && float64(len(long))/float64(len(short)) >= 1.5 {
		for i := 0; i+len(short) <= len(long); i++ {
			partial := 0.9 * ratio(short, long[i:i+len(short)])
			if partial > best {
				best = partial
			}
		}
	}
	return int(best + 0.5)
}
