package pgfplot

import "strings"

// Color is a PGF color expression: a predefined color name or a weighted
// mix of colors.
type Color struct {
	value string
}

// Predefined PGF colors.
var (
	Red       = Color{"red"}
	Green     = Color{"green"}
	Blue      = Color{"blue"}
	Cyan      = Color{"cyan"}
	Magenta   = Color{"magenta"}
	Yellow    = Color{"yellow"}
	Black     = Color{"black"}
	Gray      = Color{"gray"}
	White     = Color{"white"}
	DarkGray  = Color{"darkgray"}
	LightGray = Color{"lightgray"}
	Brown     = Color{"brown"}
	Lime      = Color{"lime"}
	Olive     = Color{"olive"}
	Orange    = Color{"orange"}
	Pink      = Color{"pink"}
	Purple    = Color{"purple"}
	Teal      = Color{"teal"}
	Violet    = Color{"violet"}
)

// Weighted pairs a color with its weight in a mix.
type Weighted struct {
	Color  Color
	Weight uint8
}

// Mix builds a color from weighted parts using the 255-based rgb mixing
// syntax, e.g. "rgb,255:red,25;green,230".
func Mix(parts ...Weighted) Color {
	var sb strings.Builder
	sb.WriteString("rgb,255:")
	for i, part := range parts {
		if i > 0 {
			sb.WriteString(";")
		}
		sb.WriteString(part.Color.value)
		sb.WriteString(",")
		sb.WriteString(formatFloat(float64(part.Weight)))
	}
	return Color{value: sb.String()}
}

func (c Color) String() string { return c.value }

// braceColor wraps mix expressions in braces so their commas do not split
// the surrounding option list.
func braceColor(c Color) string {
	if strings.ContainsAny(c.value, ",;") {
		return "{" + c.value + "}"
	}
	return c.value
}
