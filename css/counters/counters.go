// Package counters formats counter values according to a counter style,
// covering the predefined CSS 2.1 styles.
package counters

import (
	"strconv"
	"strings"
)

var (
	symbolic = map[string]string{
		"disc":   "•",
		"circle": "◦",
		"square": "▪",
	}

	romanUnits = []struct {
		value  int
		symbol string
	}{
		{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
		{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
		{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
	}
)

// Format renders `value` in the given counter style, defaulting to
// "decimal" for an unknown style. Styles with a limited range (roman,
// alphabetic) fall back to "decimal" for out of range values.
func Format(value int, style string) string {
	switch style {
	case "none":
		return ""
	case "disc", "circle", "square":
		return symbolic[style]
	case "decimal-leading-zero":
		if -9 <= value && value <= 9 {
			return negative(value, func(v int) string { return "0" + strconv.Itoa(v) })
		}
		return strconv.Itoa(value)
	case "lower-roman":
		if 1 <= value && value <= 4999 {
			return roman(value)
		}
	case "upper-roman":
		if 1 <= value && value <= 4999 {
			return strings.ToUpper(roman(value))
		}
	case "lower-alpha", "lower-latin":
		if value >= 1 {
			return alphabetic(value, 'a')
		}
	case "upper-alpha", "upper-latin":
		if value >= 1 {
			return alphabetic(value, 'A')
		}
	}
	return strconv.Itoa(value)
}

// FormatMarker renders `value` as the text of a list marker, including
// the style suffix.
func FormatMarker(value int, style string) string {
	if style == "none" {
		return ""
	}
	if s, ok := symbolic[style]; ok {
		return s + " "
	}
	return Format(value, style) + ". "
}

func negative(value int, format func(int) string) string {
	if value < 0 {
		return "-" + format(-value)
	}
	return format(value)
}

func roman(value int) string {
	var sb strings.Builder
	for _, unit := range romanUnits {
		for value >= unit.value {
			value -= unit.value
			sb.WriteString(unit.symbol)
		}
	}
	return sb.String()
}

func alphabetic(value int, first rune) string {
	// bijective base 26
	var out []rune
	for value > 0 {
		value--
		out = append([]rune{first + rune(value%26)}, out...)
		value /= 26
	}
	return string(out)
}
