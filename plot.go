package pgfplot

import "strings"

// Type2D selects how the coordinates of a two-dimensional plot are
// connected. The parametrized variants are built with Smooth, XBar, and
// YBar; the rest are ready-made values.
type Type2D struct {
	text string
}

// Ready-made plot types.
var (
	// SharpPlot connects coordinates with straight lines.
	SharpPlot = Type2D{"sharp plot"}
	// ConstLeft connects coordinates with horizontal and vertical lines,
	// marks to the left of each horizontal line.
	ConstLeft = Type2D{"const plot mark left"}
	// ConstRight is ConstLeft with marks to the right.
	ConstRight = Type2D{"const plot mark right"}
	// ConstMid is ConstLeft with marks in the middle.
	ConstMid = Type2D{"const plot mark mid"}
	// JumpLeft is ConstLeft without the vertical lines.
	JumpLeft = Type2D{"jump mark left"}
	// JumpRight is ConstRight without the vertical lines.
	JumpRight = Type2D{"jump mark right"}
	// JumpMid is ConstMid without the vertical lines.
	JumpMid = Type2D{"jump mark mid"}
	// XComb draws a single horizontal line from x = 0 to each coordinate.
	XComb = Type2D{"xcomb"}
	// YComb draws a single vertical line from y = 0 to each coordinate.
	YComb = Type2D{"ycomb"}
	// OnlyMarks draws markers without connecting lines.
	OnlyMarks = Type2D{"only marks"}
)

// Smooth interpolates smoothly between successive coordinates. A good
// starting tension is 0.55; higher values give rounder curves.
func Smooth(tension float64) Type2D {
	return Type2D{"smooth, tension=" + formatFloat(tension)}
}

// XBar draws horizontal bars between the y = 0 line and each coordinate.
// Width and shift are in pt unless the picture sets compat=1.7 or higher.
func XBar(barWidth, barShift float64) Type2D {
	return Type2D{"xbar, bar width=" + formatFloat(barWidth) + ", bar shift=" + formatFloat(barShift)}
}

// YBar draws vertical bars between the x = 0 line and each coordinate.
func YBar(barWidth, barShift float64) Type2D {
	return Type2D{"ybar, bar width=" + formatFloat(barWidth) + ", bar shift=" + formatFloat(barShift)}
}

func (t Type2D) String() string { return t.text }

// TypeKey controls the type of a two-dimensional plot. Plots hold at most
// one type key; adding another replaces it.
func TypeKey(t Type2D) Key {
	return Key{canon: "type", text: t.text}
}

// ErrorCharacter controls whether error values are absolute or relative to
// the coordinate.
type ErrorCharacter uint8

const (
	// ErrorAbsolute treats error values as absolute.
	ErrorAbsolute ErrorCharacter = iota
	// ErrorRelative treats error values as a fraction of the coordinate.
	ErrorRelative
)

func (c ErrorCharacter) String() string {
	switch c {
	case ErrorAbsolute:
		return "explicit"
	case ErrorRelative:
		return "explicit relative"
	}
	return "unknown"
}

// ErrorDirection controls which bounds of an error bar are drawn.
type ErrorDirection uint8

const (
	// ErrorNone draws no error bars.
	ErrorNone ErrorDirection = iota
	// ErrorPlus draws only upper bounds.
	ErrorPlus
	// ErrorMinus draws only lower bounds.
	ErrorMinus
	// ErrorBoth draws upper and lower bounds.
	ErrorBoth
)

func (d ErrorDirection) String() string {
	switch d {
	case ErrorNone:
		return "none"
	case ErrorPlus:
		return "plus"
	case ErrorMinus:
		return "minus"
	case ErrorBoth:
		return "both"
	}
	return "unknown"
}

// XErrorKey controls the character of x error bars. Bars are drawn only when
// XErrorDirectionKey is also set.
func XErrorKey(c ErrorCharacter) Key {
	return Key{canon: "error bars/x", text: "error bars/x " + c.String()}
}

// XErrorDirectionKey controls the direction of x error bars.
func XErrorDirectionKey(d ErrorDirection) Key {
	return Key{canon: "error bars/x dir", text: "error bars/x dir=" + d.String()}
}

// YErrorKey controls the character of y error bars. Bars are drawn only when
// YErrorDirectionKey is also set.
func YErrorKey(c ErrorCharacter) Key {
	return Key{canon: "error bars/y", text: "error bars/y " + c.String()}
}

// YErrorDirectionKey controls the direction of y error bars.
func YErrorDirectionKey(d ErrorDirection) Key {
	return Key{canon: "error bars/y dir", text: "error bars/y dir=" + d.String()}
}

// MarkShape names a PGFPlots marker.
type MarkShape struct {
	name     string
	textMark string
}

// Marker shapes. The *Filled variants are the solid counterparts.
var (
	MarkO              = MarkShape{name: "o"}
	MarkOFilled        = MarkShape{name: "*"}
	MarkX              = MarkShape{name: "x"}
	MarkPlus           = MarkShape{name: "+"}
	MarkMinus          = MarkShape{name: "-"}
	MarkPipe           = MarkShape{name: "|"}
	MarkStar           = MarkShape{name: "star"}
	MarkOPlus          = MarkShape{name: "oplus"}
	MarkOPlusFilled    = MarkShape{name: "oplus*"}
	MarkOTimes         = MarkShape{name: "otimes"}
	MarkOTimesFilled   = MarkShape{name: "otimes*"}
	MarkSquare         = MarkShape{name: "square"}
	MarkSquareFilled   = MarkShape{name: "square*"}
	MarkTriangle       = MarkShape{name: "triangle"}
	MarkTriangleFilled = MarkShape{name: "triangle*"}
	MarkDiamond        = MarkShape{name: "diamond"}
	MarkDiamondFilled  = MarkShape{name: "diamond*"}
	MarkPentagon       = MarkShape{name: "pentagon"}
	MarkPentagonFilled = MarkShape{name: "pentagon*"}
)

// MarkText places arbitrary text at each coordinate.
func MarkText(text string) MarkShape {
	return MarkShape{name: "text", textMark: text}
}

// MarkOption customizes the appearance of a marker.
type MarkOption struct {
	text string
}

// MarkFill sets the fill color of the marker.
func MarkFill(c Color) MarkOption { return MarkOption{"fill=" + braceColor(c)} }

// MarkDraw sets the stroke color of the marker.
func MarkDraw(c Color) MarkOption { return MarkOption{"draw=" + braceColor(c)} }

// MarkScale scales the marker.
func MarkScale(s float64) MarkOption { return MarkOption{"scale=" + formatFloat(s)} }

// Marker is a mark shape plus its options.
type Marker struct {
	shape   MarkShape
	options []MarkOption
}

// NewMarker builds a marker from a shape and options in the given order.
func NewMarker(shape MarkShape, options ...MarkOption) Marker {
	return Marker{shape: shape, options: options}
}

func (m Marker) String() string {
	var sb strings.Builder
	sb.WriteString("mark=")
	sb.WriteString(m.shape.name)
	if m.shape.textMark != "" {
		sb.WriteString(", text mark=")
		sb.WriteString(m.shape.textMark)
	}
	sb.WriteString(", mark options={")
	for i, opt := range m.options {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(opt.text)
	}
	sb.WriteString("}")
	return sb.String()
}

// MarkerKey controls the marker drawn at each coordinate.
func MarkerKey(m Marker) Key {
	return Key{canon: "mark", text: m.String()}
}

// Plot is an ordered list of coordinates plus its option keys, added to an
// axis as an \addplot (or \addplot3) command.
type Plot struct {
	threeD bool
	keys   keySet
	coords []Coordinate
}

// NewPlot2D creates a new, empty two-dimensional plot.
func NewPlot2D() *Plot {
	return &Plot{}
}

// NewPlot3D creates a new, empty three-dimensional plot.
func NewPlot3D() *Plot {
	return &Plot{threeD: true}
}

// ThreeD reports whether the plot renders as \addplot3.
func (p *Plot) ThreeD() bool { return p.threeD }

// AddKey adds an option key to the plot, replacing any previous key with the
// same canonical name.
func (p *Plot) AddKey(k Key) {
	p.keys.add(k)
}

// Keys returns the plot's option keys in rendering order.
func (p *Plot) Keys() []Key {
	return p.keys.list()
}

// AppendCoordinate appends a coordinate at the end of the plot's sequence.
func (p *Plot) AppendCoordinate(c Coordinate) {
	p.coords = append(p.coords, c)
}

// SetCoordinates replaces the plot's coordinate sequence.
func (p *Plot) SetCoordinates(coords []Coordinate) {
	p.coords = append(p.coords[:0:0], coords...)
}

// Coordinates returns the coordinate sequence in drawing order.
func (p *Plot) Coordinates() []Coordinate {
	out := make([]Coordinate, len(p.coords))
	copy(out, p.coords)
	return out
}

// String renders the \addplot command, one coordinate per line.
func (p *Plot) String() string {
	var sb strings.Builder
	sb.WriteString("\t\\addplot")
	if p.threeD {
		sb.WriteString("3")
	}
	sb.WriteString("[")
	if keys := p.keys.list(); len(keys) > 0 {
		sb.WriteString("\n")
		for _, key := range keys {
			sb.WriteString("\t\t")
			sb.WriteString(key.String())
			sb.WriteString(",\n")
		}
		sb.WriteString("\t")
	}
	sb.WriteString("] coordinates {\n")
	for _, coord := range p.coords {
		sb.WriteString("\t\t")
		sb.WriteString(coord.String())
		sb.WriteString("\n")
	}
	sb.WriteString("\t};")
	return sb.String()
}
