package normalize

import "strings"

const ideographicSpace = '　'

type script uint8

const (
	scriptOther script = iota
	scriptWide
	scriptBasic
)

func classify(r rune) script {
	switch {
	case wideClass.Contains(r):
		return scriptWide
	case basicClass.Contains(r):
		return scriptBasic
	default:
		return scriptOther
	}
}

// RemoveExtraSpaces collapses runs of ASCII and ideographic spaces into a
// single ASCII space, then drops that space wherever it separates two CJK
// characters or a CJK character and an ASCII character. Spaces between two
// ASCII characters are kept, so Latin word spacing survives.
//
// The wide set covers CJK ideographs, hiragana, katakana, CJK symbols and
// punctuation and the halfwidth/fullwidth forms block; the basic set is
// U+0000 through U+007F, so a space before a newline or tab next to a CJK
// character is dropped too.
func RemoveExtraSpaces(text string) string {
	src := collapseSpaces(text)
	if !strings.ContainsRune(src, ' ') {
		return src
	}

	rs := []rune(src)
	var b strings.Builder
	b.Grow(len(src))
	for i, r := range rs {
		// After collapsing, a space is never next to another space, so its
		// neighbours are fixed characters and can be judged in one pass.
		if r == ' ' && i > 0 && i+1 < len(rs) && dropSpace(classify(rs[i-1]), classify(rs[i+1])) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func dropSpace(left, right script) bool {
	switch {
	case left == scriptWide && right == scriptWide:
		return true
	case left == scriptWide && right == scriptBasic:
		return true
	case left == scriptBasic && right == scriptWide:
		return true
	}
	return false
}

// collapseSpaces replaces each run of ' ' and U+3000 with one ' '.
func collapseSpaces(text string) string {
	if !strings.ContainsRune(text, ideographicSpace) && !strings.Contains(text, "  ") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	inRun := false
	for _, r := range text {
		if r == ' ' || r == ideographicSpace {
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}
