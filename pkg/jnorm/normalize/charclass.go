package normalize

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/rangetable"

	"github.com/cognicore/jnorm/pkg/jnorm/internalerr"
)

// Range is an inclusive code point range.
type Range struct {
	Lo, Hi rune
}

// Class is an immutable set of code points.
// The zero Class contains nothing.
type Class struct {
	table *unicode.RangeTable
}

// NewClass builds a Class from inclusive ranges. Ranges may overlap and
// appear in any order.
func NewClass(ranges ...Range) Class {
	tables := make([]*unicode.RangeTable, 0, len(ranges))
	for _, r := range ranges {
		if r.Lo > r.Hi {
			r.Lo, r.Hi = r.Hi, r.Lo
		}
		tables = append(tables, singleRange(r.Lo, r.Hi))
	}
	return Class{table: rangetable.Merge(tables...)}
}

// singleRange returns a table holding exactly lo..hi, split across R16
// and R32 when the range crosses the BMP boundary.
func singleRange(lo, hi rune) *unicode.RangeTable {
	rt := &unicode.RangeTable{}
	if lo <= 0xFFFF {
		top := hi
		if top > 0xFFFF {
			top = 0xFFFF
		}
		rt.R16 = []unicode.Range16{{Lo: uint16(lo), Hi: uint16(top), Stride: 1}}
		lo = 0x10000
	}
	if hi >= lo {
		rt.R32 = []unicode.Range32{{Lo: uint32(lo), Hi: uint32(hi), Stride: 1}}
	}
	return rt
}

// ParseClass compiles the body of a regular-expression bracket class such
// as "０-９Ａ-Ｚａ-ｚ" into a Class. Supported syntax is literal runes,
// a-b ranges and backslash escapes; negation is not.
func ParseClass(body string) (Class, error) {
	if !utf8.ValidString(body) {
		return Class{}, fmt.Errorf("parse class: %w: invalid UTF-8", internalerr.ErrInvalidInput)
	}
	src := []rune(body)
	if len(src) > 0 && src[0] == '^' {
		return Class{}, fmt.Errorf("parse class %q: %w: negated classes are not supported", body, internalerr.ErrInvalidInput)
	}

	var ranges []Range
	next := func(i int) (rune, int, error) {
		if src[i] != '\\' {
			return src[i], i + 1, nil
		}
		if i+1 >= len(src) {
			return 0, 0, fmt.Errorf("parse class %q: %w: trailing backslash", body, internalerr.ErrInvalidInput)
		}
		return src[i+1], i + 2, nil
	}

	for i := 0; i < len(src); {
		lo, j, err := next(i)
		if err != nil {
			return Class{}, err
		}
		// A '-' that is the last rune is a literal.
		if j+1 < len(src) && src[j] == '-' {
			hi, k, err := next(j + 1)
			if err != nil {
				return Class{}, err
			}
			if hi < lo {
				return Class{}, fmt.Errorf("parse class %q: %w: bad range %q-%q", body, internalerr.ErrInvalidInput, lo, hi)
			}
			ranges = append(ranges, Range{Lo: lo, Hi: hi})
			i = k
			continue
		}
		ranges = append(ranges, Range{Lo: lo, Hi: lo})
		i = j
	}
	return NewClass(ranges...), nil
}

// MustParseClass is like ParseClass but panics on error.
// It is meant for package-level tables.
func MustParseClass(body string) Class {
	c, err := ParseClass(body)
	if err != nil {
		panic(err)
	}
	return c
}

// Contains reports whether r is in the class.
func (c Class) Contains(r rune) bool {
	if c.table == nil {
		return false
	}
	return unicode.Is(c.table, r)
}

// Table exposes the compiled range table, e.g. for runes.In.
func (c Class) Table() *unicode.RangeTable {
	if c.table == nil {
		return &unicode.RangeTable{}
	}
	return c.table
}

// Script blocks used by RemoveExtraSpaces.
var (
	wideClass = NewClass(
		Range{0x4E00, 0x9FFF}, // CJK unified ideographs
		Range{0x3040, 0x309F}, // hiragana
		Range{0x30A0, 0x30FF}, // katakana
		Range{0x3000, 0x303F}, // CJK symbols and punctuation
		Range{0xFF00, 0xFFEF}, // halfwidth and fullwidth forms
	)
	basicClass = NewClass(Range{0x0000, 0x007F})
)

// NEologd character sets.
var (
	// Fullwidth digits and Latin letters plus halfwidth katakana and its
	// punctuation.
	WidthClass = MustParseClass("０-９Ａ-Ｚａ-ｚ｡-ﾟ")

	// Fullwidth symbols narrowed after widening; ＝・「」 are absent on purpose.
	SymbolClass = MustParseClass("！”＃＄％＆’（）＊＋，－．／：；＜＞？＠［￥］＾＿｀｛｜｝〜")

	hyphenClass = NewClass(
		Range{0x02D7, 0x02D7}, Range{0x058A, 0x058A},
		Range{0x2010, 0x2013}, Range{0x2043, 0x2043},
		Range{0x207B, 0x207B}, Range{0x208B, 0x208B},
		Range{0x2212, 0x2212},
	)

	choonpuClass = NewClass(
		Range{0xFE63, 0xFE63}, Range{0xFF0D, 0xFF0D},
		Range{0xFF70, 0xFF70}, Range{0x2014, 0x2015},
		Range{0x2500, 0x2501}, Range{0x30FC, 0x30FC},
	)

	tildeClass = NewClass(
		Range{'~', '~'}, Range{0x223C, 0x223C}, Range{0x223E, 0x223E},
		Range{0x301C, 0x301C}, Range{0x3030, 0x3030}, Range{0xFF5E, 0xFF5E},
	)
)
