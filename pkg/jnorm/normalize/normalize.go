// Package normalize implements string-to-string normalization for Japanese
// and mixed Japanese/Latin text.
//
// Two families of transforms are provided:
//
//   - Normalize: NFKC, digit collapsing and lowercasing. Aggressive and
//     format-losing, meant for bag-of-words indexing.
//   - NormalizeNeologd: the conservative cleanup used by the
//     mecab-ipadic-NEologd project (hyphen and long-vowel unification,
//     tilde removal, symbol width harmonization, space removal at script
//     boundaries).
//
// Every exported function is total and safe for concurrent use.
package normalize

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Casers carry state between calls and must not be shared.
var lowerPool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

// Normalize applies NFKC, then NormalizeNumber, then LowerText.
// The order matters: NFKC turns fullwidth digits into ASCII digits
// before the digit collapser sees them.
//
// Example: Normalize("ＡＢＣ１２３") == "abc0"
func Normalize(text string) string {
	text = NormalizeUnicode(text)
	text = NormalizeNumber(text)
	return LowerText(text)
}

// NormalizeUnicode applies Unicode normalization form KC.
func NormalizeUnicode(text string) string {
	return norm.NFKC.String(text)
}

// NormalizeUnicodeForm applies the given normalization form.
func NormalizeUnicodeForm(text string, form norm.Form) string {
	return form.String(text)
}

// NormalizeNumber replaces every run of ASCII digits with a single "0".
//
// Example: NormalizeNumber("a123b4567c") == "a0b0c"
func NormalizeNumber(text string) string {
	i := strings.IndexFunc(text, isDigit)
	if i < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	b.WriteString(text[:i])

	inRun := false
	for j := i; j < len(text); j++ {
		c := text[j]
		if c >= '0' && c <= '9' {
			if !inRun {
				b.WriteByte('0')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteByte(c)
	}
	return b.String()
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// LowerText lowercases text with the full Unicode lowercase mapping,
// including the context-sensitive final sigma.
func LowerText(text string) string {
	c := lowerPool.Get().(*cases.Caser)
	defer lowerPool.Put(c)
	c.Reset()
	return c.String(text)
}
