// Package numbering computes and renders the counters of ordinal lists:
// decimal, bijective base-26 alphabetic, subtractive roman, and
// composite outline notation.
package numbering

import (
	"strconv"
	"strings"

	"github.com/dshills/listcraft/internal/doctree"
)

// romanMax is the largest value expressible in the subtractive table.
// Values outside 1..romanMax render as their decimal string.
const romanMax = 3999

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// Format renders a counter value under a marker style. Bullet styles
// render their glyph; ordinal styles that cannot represent the value
// fall back to the decimal string.
func Format(n int, style doctree.MarkerStyle) string {
	switch style {
	case doctree.Disc:
		return "•"
	case doctree.Circle:
		return "◦"
	case doctree.Square:
		return "▪"
	case doctree.LowerAlpha:
		return formatAlpha(n, false)
	case doctree.UpperAlpha:
		return formatAlpha(n, true)
	case doctree.LowerRoman:
		return formatRoman(n, false)
	case doctree.UpperRoman:
		return formatRoman(n, true)
	default:
		return strconv.Itoa(n)
	}
}

// formatAlpha renders n in bijective base-26: 1→a .. 26→z, 27→aa,
// 28→ab. Ordinary base-26 does not apply because the scheme has no zero
// digit. Non-positive values fall back to decimal.
func formatAlpha(n int, upper bool) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('a' + n%26)}, b...)
		n /= 26
	}
	s := string(b)
	if upper {
		return strings.ToUpper(s)
	}
	return s
}

// formatRoman renders n in subtractive roman notation, valid for
// 1..3999; anything else falls back to decimal.
func formatRoman(n int, upper bool) string {
	if n <= 0 || n > romanMax {
		return strconv.Itoa(n)
	}
	var sb strings.Builder
	for _, e := range romanTable {
		for n >= e.value {
			sb.WriteString(e.symbol)
			n -= e.value
		}
	}
	s := sb.String()
	if upper {
		return strings.ToUpper(s)
	}
	return s
}

// DefaultStyleForLevel returns the scheme applied to a level when the
// configuration does not name one: decimal, lower-alpha, lower-roman,
// then decimal for every deeper level.
func DefaultStyleForLevel(level int) doctree.MarkerStyle {
	switch level {
	case 0:
		return doctree.Decimal
	case 1:
		return doctree.LowerAlpha
	case 2:
		return doctree.LowerRoman
	default:
		return doctree.Decimal
	}
}

// Scheme maps nesting levels to marker styles for numbered lists.
// Levels beyond the configured depth use DefaultStyleForLevel.
type Scheme struct {
	Levels []doctree.MarkerStyle
}

// StyleForLevel resolves the style for a nesting level.
func (s Scheme) StyleForLevel(level int) doctree.MarkerStyle {
	if level >= 0 && level < len(s.Levels) {
		return s.Levels[level]
	}
	return DefaultStyleForLevel(level)
}
