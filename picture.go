package pgfplot

import "strings"

// Picture is the root of a figure: a tikzpicture environment holding axis
// environments. It is the unit handed to the serializer and the compilation
// pipeline.
type Picture struct {
	keys keySet
	axes []*Axis
}

// NewPicture creates a new, empty picture environment.
func NewPicture() *Picture {
	return &Picture{}
}

// PictureFromAxis creates a picture containing a single axis.
func PictureFromAxis(a *Axis) *Picture {
	p := NewPicture()
	p.AddAxis(a)
	return p
}

// AddKey adds an option key to the picture, replacing any previous key with
// the same canonical name.
func (p *Picture) AddKey(k Key) {
	p.keys.add(k)
}

// Keys returns the picture option keys in rendering order.
func (p *Picture) Keys() []Key {
	return p.keys.list()
}

// AddAxis appends an axis at the end of the picture.
func (p *Picture) AddAxis(a *Axis) {
	p.axes = append(p.axes, a)
}

// Axes returns the axes in rendering order.
func (p *Picture) Axes() []*Axis {
	out := make([]*Axis, len(p.axes))
	copy(out, p.axes)
	return out
}

// String renders the tikzpicture environment. Rendering is pure and
// deterministic: the same tree always yields byte-identical markup.
func (p *Picture) String() string {
	var sb strings.Builder
	sb.WriteString("\\begin{tikzpicture}")
	writeKeyBlock(&sb, p.keys.list(), "\t", "")
	sb.WriteString("\n")
	for _, axis := range p.axes {
		sb.WriteString(axis.String())
		sb.WriteString("\n")
	}
	sb.WriteString("\\end{tikzpicture}")
	return sb.String()
}

// StandaloneString renders a complete LaTeX document that compiles on its
// own, with the preamble required by the picture.
func (p *Picture) StandaloneString() string {
	return "\\documentclass{standalone}\n" +
		"\\usepackage{pgfplots}\n" +
		"\\begin{document}\n" +
		p.String() +
		"\n\\end{document}"
}
