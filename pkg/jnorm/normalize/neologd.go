package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	choonpu             = 'ー'
	fullwidthHyphen     = '－'
	fullwidthApostrophe = '’'
	fullwidthQuote      = '”'
)

// widenTable maps ASCII punctuation (and ¥ and the halfwidth Japanese
// brackets and marks) to the fullwidth forms NEologd uses. Backslash is
// not mapped.
var widenTable = buildTranslation(
	"!\"#$%&'()*+,-./:;<=>?@[¥]^_`{|}~｡､･｢｣",
	"！”＃＄％＆’（）＊＋，－．／：；＜＝＞？＠［￥］＾＿｀｛｜｝〜。、・「」",
)

func buildTranslation(from, to string) map[rune]rune {
	f, t := []rune(from), []rune(to)
	if len(f) != len(t) {
		panic("normalize: translation table halves differ in length")
	}
	m := make(map[rune]rune, len(f))
	for i, r := range f {
		m[r] = t[i]
	}
	return m
}

// UnicodeNormalize applies NFKC to every maximal run of characters that
// belong to class and leaves everything else alone. Each run is normalized
// on its own. Afterwards the fullwidth hyphen-minus U+FF0D is replaced by
// "-".
func UnicodeNormalize(class Class, text string) string {
	var b strings.Builder
	b.Grow(len(text))

	start := -1
	for i, r := range text {
		in := class.Contains(r)
		switch {
		case in && start < 0:
			start = i
		case !in && start >= 0:
			b.WriteString(norm.NFKC.String(text[start:i]))
			start = -1
			b.WriteRune(r)
		case !in:
			b.WriteRune(r)
		}
	}
	if start >= 0 {
		b.WriteString(norm.NFKC.String(text[start:]))
	}

	return strings.ReplaceAll(b.String(), string(fullwidthHyphen), "-")
}

// NormalizeNeologd normalizes text the way the mecab-ipadic-NEologd
// dictionary build does. Ill-formed UTF-8 is first replaced with U+FFFD so
// every step sees the same runes. Steps, in order:
//
//  1. trim surrounding whitespace
//  2. NFKC over fullwidth alphanumerics and halfwidth katakana (WidthClass)
//  3. each run of hyphen-like characters becomes "-"
//  4. each run of long-vowel-like characters becomes "ー"
//  5. tilde-like characters are removed
//  6. ASCII punctuation is widened (see widenTable)
//  7. RemoveExtraSpaces
//  8. NFKC over SymbolClass, which narrows the punctuation again except
//     ＝, ・, 「 and 」
//  9. ’ becomes ' and ” becomes "
//
// The result is not always a fixed point: tilde removal can expose trailing
// whitespace or join two choonpu runs, which a second call then strips or
// merges.
//
// Example: NormalizeNeologd("ﾊﾝｶｸ ﾀﾞｲｽｷ") == "ハンカクダイスキ"
func NormalizeNeologd(text string) string {
	text = replaceIllFormed(text)
	text = Strip(text)
	text = UnicodeNormalize(WidthClass, text)
	text = UnifyHyphens(text)
	text = UnifyChoonpu(text)
	text = RemoveTildes(text)
	text = WidenSymbols(text)
	text = RemoveExtraSpaces(text)
	text = UnicodeNormalize(SymbolClass, text)
	return NarrowQuotes(text)
}

// Strip trims leading and trailing whitespace. Besides unicode.IsSpace it
// trims the information separators U+001C through U+001F.
func Strip(text string) string {
	return strings.TrimFunc(text, isStripSpace)
}

func isStripSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1C && r <= 0x1F)
}

// UnifyHyphens replaces each run of hyphen-like characters with "-".
func UnifyHyphens(text string) string {
	return collapseRuns(text, hyphenClass, '-')
}

// UnifyChoonpu replaces each run of dash and bar characters that stand in
// for the katakana long vowel mark with a single "ー".
func UnifyChoonpu(text string) string {
	return collapseRuns(text, choonpuClass, choonpu)
}

// RemoveTildes deletes tilde and wave dash characters.
func RemoveTildes(text string) string {
	out, _, err := transform.String(runes.Remove(runes.In(tildeClass.Table())), text)
	if err != nil {
		return text
	}
	return out
}

// WidenSymbols converts ASCII punctuation to fullwidth forms.
func WidenSymbols(text string) string {
	return mapRunes(text, func(r rune) rune {
		if w, ok := widenTable[r]; ok {
			return w
		}
		return r
	})
}

// NarrowQuotes replaces the right single and right double quotation marks
// with their ASCII counterparts. Left quotation marks are kept.
func NarrowQuotes(text string) string {
	return mapRunes(text, func(r rune) rune {
		switch r {
		case fullwidthApostrophe:
			return '\''
		case fullwidthQuote:
			return '"'
		}
		return r
	})
}

func replaceIllFormed(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	out, _, err := transform.String(runes.ReplaceIllFormed(), text)
	if err != nil {
		return text
	}
	return out
}

func mapRunes(text string, fn func(rune) rune) string {
	out, _, err := transform.String(runes.Map(fn), text)
	if err != nil {
		return text
	}
	return out
}

// collapseRuns writes repl once for every maximal run of class members.
func collapseRuns(text string, class Class, repl rune) string {
	if strings.IndexFunc(text, class.Contains) < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	inRun := false
	for _, r := range text {
		if class.Contains(r) {
			if !inRun {
				b.WriteRune(repl)
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}
