// Package embedtex is the embedded compilation engine: an in-process
// renderer for the document dialect this library emits. It is not a general
// typesetting engine. The input is scanned against the serializer's output
// contract, every option is validated against the known PGFPlots vocabulary,
// and the figure is drawn straight to PDF. Unknown or malformed markup is
// reported as diagnostics, mirroring how pdflatex rejects it.
package embedtex

import (
	"pgfplot/internal/texlog"
)

// Compile processes a standalone document and returns the PDF artifact.
// Document problems (unknown options, malformed structure, log-scale
// violations) come back as diagnostics with a nil artifact; the error return
// is reserved for internal rendering failures.
func Compile(doc string) ([]byte, []texlog.Diagnostic, error) {
	p := newParser(doc)
	model := p.parseDocument()
	if diags := p.failures(); diags != nil {
		return nil, diags, nil
	}
	artifact, diags, err := render(model)
	if err != nil {
		return nil, nil, err
	}
	if len(diags) > 0 {
		return nil, diags, nil
	}
	return artifact, p.diags, nil
}

type plotKind uint8

const (
	kindLine plotKind = iota
	kindSmooth
	kindOnlyMarks
	kindXBar
	kindYBar
	kindXComb
	kindYComb
)

type errDir uint8

const (
	errNone errDir = iota
	errPlus
	errMinus
	errBoth
)

type rgb struct {
	r, g, b int
}

type document struct {
	axes []*axisModel
}

type axisModel struct {
	title  string
	xlabel string
	ylabel string
	xlog   bool
	ylog   bool
	hide   bool
	plots  []*plotModel
}

type plotModel struct {
	threeD   bool
	kind     plotKind
	barWidth float64
	barShift float64
	mark     bool
	dashed   bool
	draw     *rgb
	fill     *rgb
	errX     errDir
	errY     errDir
	coords   []coord
}

type coord struct {
	x, y, z float64
	threeD  bool
	ex, ey  float64
	hasEx   bool
	hasEy   bool
}
