package pgfplot

import "strings"

// Scale controls the scaling of one axis direction.
type Scale uint8

const (
	// ScaleNormal is linear scaling.
	ScaleNormal Scale = iota
	// ScaleLog applies the logarithm to each coordinate.
	ScaleLog
)

func (s Scale) String() string {
	switch s {
	case ScaleLog:
		return "log"
	case ScaleNormal:
		return "normal"
	}
	return "unknown"
}

// TitleKey controls the title of the axis environment. The value may contain
// LaTeX, e.g. inline math.
func TitleKey(title string) Key {
	return Key{canon: "title", text: "title={" + title + "}"}
}

// XLabelKey controls the label of the x axis.
func XLabelKey(label string) Key {
	return Key{canon: "xlabel", text: "xlabel={" + label + "}"}
}

// YLabelKey controls the label of the y axis.
func YLabelKey(label string) Key {
	return Key{canon: "ylabel", text: "ylabel={" + label + "}"}
}

// XModeKey controls the scaling of the x axis.
func XModeKey(s Scale) Key {
	return Key{canon: "xmode", text: "xmode=" + s.String()}
}

// YModeKey controls the scaling of the y axis.
func YModeKey(s Scale) Key {
	return Key{canon: "ymode", text: "ymode=" + s.String()}
}

// Axis is one axis environment inside a Picture. Plot order determines draw
// and legend order in the rendered figure.
type Axis struct {
	keys  keySet
	plots []*Plot
}

// NewAxis creates a new, empty axis environment.
func NewAxis() *Axis {
	return &Axis{}
}

// AxisFromPlot creates an axis containing a single plot.
func AxisFromPlot(p *Plot) *Axis {
	a := NewAxis()
	a.AddPlot(p)
	return a
}

// SetTitle sets the axis title.
func (a *Axis) SetTitle(title string) {
	a.AddKey(TitleKey(title))
}

// SetXLabel sets the label of the x axis.
func (a *Axis) SetXLabel(label string) {
	a.AddKey(XLabelKey(label))
}

// SetYLabel sets the label of the y axis.
func (a *Axis) SetYLabel(label string) {
	a.AddKey(YLabelKey(label))
}

// AddKey adds an option key to the axis, replacing any previous key with the
// same canonical name.
func (a *Axis) AddKey(k Key) {
	a.keys.add(k)
}

// Keys returns the axis option keys in rendering order.
func (a *Axis) Keys() []Key {
	return a.keys.list()
}

// AddPlot appends a plot at the end of the axis.
func (a *Axis) AddPlot(p *Plot) {
	a.plots = append(a.plots, p)
}

// Plots returns the plots in drawing order.
func (a *Axis) Plots() []*Plot {
	out := make([]*Plot, len(a.plots))
	copy(out, a.plots)
	return out
}

// String renders the axis environment. An axis without plots renders an
// empty, syntactically complete environment.
func (a *Axis) String() string {
	var sb strings.Builder
	sb.WriteString("\\begin{axis}")
	writeKeyBlock(&sb, a.keys.list(), "\t", "")
	sb.WriteString("\n")
	for _, plot := range a.plots {
		sb.WriteString(plot.String())
		sb.WriteString("\n")
	}
	sb.WriteString("\\end{axis}")
	return sb.String()
}
