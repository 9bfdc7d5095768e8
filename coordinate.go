package pgfplot

import "strings"

// Coordinate is an immutable 2-D or 3-D point with optional error-bar
// metadata. Coordinates are appended to plots in drawing order; the order is
// preserved exactly in the rendered markup.
type Coordinate struct {
	x, y, z    float64
	threeD     bool
	errX, errY float64
	hasErrX    bool
	hasErrY    bool
}

// XY builds a 2-D coordinate.
func XY(x, y float64) Coordinate {
	return Coordinate{x: x, y: y}
}

// XYZ builds a 3-D coordinate.
func XYZ(x, y, z float64) Coordinate {
	return Coordinate{x: x, y: y, z: z, threeD: true}
}

// WithXError returns a copy of the coordinate carrying an x error value.
// Error bars are drawn only when the owning plot also sets XErrorKey and
// XErrorDirectionKey.
func (c Coordinate) WithXError(err float64) Coordinate {
	c.errX = err
	c.hasErrX = true
	return c
}

// WithYError returns a copy of the coordinate carrying a y error value.
func (c Coordinate) WithYError(err float64) Coordinate {
	c.errY = err
	c.hasErrY = true
	return c
}

// X returns the first component.
func (c Coordinate) X() float64 { return c.x }

// Y returns the second component.
func (c Coordinate) Y() float64 { return c.y }

// Z returns the third component; zero for 2-D coordinates.
func (c Coordinate) Z() float64 { return c.z }

// ThreeD reports whether the coordinate has three components.
func (c Coordinate) ThreeD() bool { return c.threeD }

// XError returns the x error value and whether one was set.
func (c Coordinate) XError() (float64, bool) { return c.errX, c.hasErrX }

// YError returns the y error value and whether one was set.
func (c Coordinate) YError() (float64, bool) { return c.errY, c.hasErrY }

// String renders "(x,y)" or "(x,y,z)". A 2-D coordinate with error metadata
// renders "(x,y)\t+- (ex,ey)" with absent errors written as 0. Error
// metadata is not rendered for 3-D coordinates.
func (c Coordinate) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(formatFloat(c.x))
	sb.WriteString(",")
	sb.WriteString(formatFloat(c.y))
	if c.threeD {
		sb.WriteString(",")
		sb.WriteString(formatFloat(c.z))
		sb.WriteString(")")
		return sb.String()
	}
	sb.WriteString(")")
	if c.hasErrX || c.hasErrY {
		sb.WriteString("\t+- (")
		sb.WriteString(formatFloat(c.errX))
		sb.WriteString(",")
		sb.WriteString(formatFloat(c.errY))
		sb.WriteString(")")
	}
	return sb.String()
}
