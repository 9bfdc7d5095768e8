package embedtex

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/go-pdf/fpdf"

	"pgfplot/internal/texlog"
)

// Page geometry in millimeters. One page per axis environment.
const (
	pageW   = 160.0
	pageH   = 120.0
	marginL = 20.0
	marginR = 8.0
	marginT = 14.0
	marginB = 18.0
)

// ptToMM converts TeX points (bar widths, mark sizes) to millimeters.
const ptToMM = 0.3528

// Default plot color cycle, matching the common PGFPlots cycle list.
var colorCycle = []rgb{
	{0, 0, 255},
	{255, 0, 0},
	{0, 128, 0},
	{255, 128, 0},
	{128, 0, 128},
	{0, 128, 128},
}

// point is a coordinate after projection and scale transforms, still in
// data space.
type point struct {
	x, y   float64
	ex, ey float64
	hasEx  bool
	hasEy  bool
}

type bounds struct {
	minX, maxX float64
	minY, maxY float64
}

func render(doc *document) ([]byte, []texlog.Diagnostic, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	// A picture with zero axes is legal and yields a blank page.
	if len(doc.axes) == 0 {
		pdf.AddPage()
	}
	var diags []texlog.Diagnostic
	for _, axis := range doc.axes {
		pdf.AddPage()
		diags = append(diags, drawAxis(pdf, axis)...)
	}
	if len(diags) > 0 {
		return nil, diags, nil
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil, nil
}

func drawAxis(pdf *fpdf.Fpdf, axis *axisModel) []texlog.Diagnostic {
	points, diags := transformAxis(axis)
	if len(diags) > 0 {
		return diags
	}
	b := axisBounds(points)

	area := plotArea{
		b:    pad(b, 0.05),
		left: marginL,
		top:  marginT,
		wd:   pageW - marginL - marginR,
		ht:   pageH - marginT - marginB,
	}

	if !axis.hide {
		drawFrame(pdf, axis, b, area)
	}
	drawLabels(pdf, axis)

	for i, plot := range axis.plots {
		drawPlot(pdf, plot, points[i], area, colorCycle[i%len(colorCycle)])
	}
	return nil
}

// transformAxis applies 3-D projection and log scaling to every coordinate.
// Log scaling of a non-positive coordinate is a document error, the same
// class of failure pdflatex reports for it.
func transformAxis(axis *axisModel) ([][]point, []texlog.Diagnostic) {
	var diags []texlog.Diagnostic
	points := make([][]point, len(axis.plots))
	for i, plot := range axis.plots {
		points[i] = make([]point, 0, len(plot.coords))
		for _, c := range plot.coords {
			x, y := c.x, c.y
			if c.threeD {
				// Simple oblique projection; good enough to place the data.
				x += 0.45 * c.z
				y += 0.35 * c.z
			}
			pt := point{x: x, y: y, ex: c.ex, ey: c.ey, hasEx: c.hasEx, hasEy: c.hasEy}
			if axis.xlog {
				if pt.x <= 0 {
					diags = append(diags, texlog.Diagnostic{
						Severity: texlog.SevError,
						Message:  fmt.Sprintf("could not apply log scaling to x coordinate %s", strconv.FormatFloat(pt.x, 'f', -1, 64)),
					})
					continue
				}
				pt.x = math.Log10(pt.x)
				pt.hasEx = false
			}
			if axis.ylog {
				if pt.y <= 0 {
					diags = append(diags, texlog.Diagnostic{
						Severity: texlog.SevError,
						Message:  fmt.Sprintf("could not apply log scaling to y coordinate %s", strconv.FormatFloat(pt.y, 'f', -1, 64)),
					})
					continue
				}
				pt.y = math.Log10(pt.y)
				pt.hasEy = false
			}
			points[i] = append(points[i], pt)
		}
	}
	return points, diags
}

func axisBounds(points [][]point) bounds {
	b := bounds{minX: math.Inf(1), maxX: math.Inf(-1), minY: math.Inf(1), maxY: math.Inf(-1)}
	seen := false
	for _, plot := range points {
		for _, pt := range plot {
			seen = true
			lo, hi := pt.x, pt.x
			if pt.hasEx {
				lo, hi = pt.x-pt.ex, pt.x+pt.ex
			}
			b.minX = math.Min(b.minX, lo)
			b.maxX = math.Max(b.maxX, hi)
			lo, hi = pt.y, pt.y
			if pt.hasEy {
				lo, hi = pt.y-pt.ey, pt.y+pt.ey
			}
			b.minY = math.Min(b.minY, lo)
			b.maxY = math.Max(b.maxY, hi)
		}
	}
	if !seen {
		return bounds{minX: 0, maxX: 1, minY: 0, maxY: 1}
	}
	if b.minX == b.maxX {
		b.minX -= 0.5
		b.maxX += 0.5
	}
	if b.minY == b.maxY {
		b.minY -= 0.5
		b.maxY += 0.5
	}
	return b
}

func pad(b bounds, frac float64) bounds {
	dx := (b.maxX - b.minX) * frac
	dy := (b.maxY - b.minY) * frac
	return bounds{minX: b.minX - dx, maxX: b.maxX + dx, minY: b.minY - dy, maxY: b.maxY + dy}
}

// plotArea maps data space onto the page.
type plotArea struct {
	b    bounds
	left float64
	top  float64
	wd   float64
	ht   float64
}

func (a plotArea) px(x float64) float64 {
	return a.left + (x-a.b.minX)/(a.b.maxX-a.b.minX)*a.wd
}

func (a plotArea) py(y float64) float64 {
	return a.top + a.ht - (y-a.b.minY)/(a.b.maxY-a.b.minY)*a.ht
}

func drawFrame(pdf *fpdf.Fpdf, axis *axisModel, data bounds, area plotArea) {
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.25)
	pdf.Rect(area.left, area.top, area.wd, area.ht, "D")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(0, 0, 0)
	const ticks = 5
	for i := 0; i < ticks; i++ {
		frac := float64(i) / float64(ticks-1)

		xv := data.minX + frac*(data.maxX-data.minX)
		x := area.px(xv)
		pdf.Line(x, area.top+area.ht, x, area.top+area.ht-1.2)
		label := tickLabel(xv, axis.xlog)
		pdf.Text(x-pdf.GetStringWidth(label)/2, area.top+area.ht+4, label)

		yv := data.minY + frac*(data.maxY-data.minY)
		y := area.py(yv)
		pdf.Line(area.left, y, area.left+1.2, y)
		label = tickLabel(yv, axis.ylog)
		pdf.Text(area.left-pdf.GetStringWidth(label)-1.5, y+1.2, label)
	}
}

func tickLabel(v float64, log bool) string {
	if log {
		v = math.Pow(10, v)
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func drawLabels(pdf *fpdf.Fpdf, axis *axisModel) {
	pdf.SetTextColor(0, 0, 0)
	if axis.title != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(pageW/2-pdf.GetStringWidth(axis.title)/2, marginT-4, axis.title)
	}
	pdf.SetFont("Helvetica", "", 8)
	if axis.xlabel != "" {
		pdf.Text(pageW/2-pdf.GetStringWidth(axis.xlabel)/2, pageH-5, axis.xlabel)
	}
	if axis.ylabel != "" {
		x, y := 6.0, pageH/2+pdf.GetStringWidth(axis.ylabel)/2
		pdf.TransformBegin()
		pdf.TransformRotate(90, x, y)
		pdf.Text(x, y, axis.ylabel)
		pdf.TransformEnd()
	}
}

func drawPlot(pdf *fpdf.Fpdf, plot *plotModel, points []point, area plotArea, fallback rgb) {
	stroke := fallback
	if plot.draw != nil {
		stroke = *plot.draw
	}
	fill := stroke
	if plot.fill != nil {
		fill = *plot.fill
	}
	pdf.SetDrawColor(stroke.r, stroke.g, stroke.b)
	pdf.SetFillColor(fill.r, fill.g, fill.b)
	pdf.SetLineWidth(0.35)
	if plot.dashed {
		pdf.SetDashPattern([]float64{1.6, 1.2}, 0)
		defer pdf.SetDashPattern([]float64{}, 0)
	}

	switch plot.kind {
	case kindLine, kindSmooth:
		for i := 1; i < len(points); i++ {
			pdf.Line(area.px(points[i-1].x), area.py(points[i-1].y), area.px(points[i].x), area.py(points[i].y))
		}
	case kindXBar:
		w := barSize(plot.barWidth)
		shift := plot.barShift * ptToMM
		x0 := area.px(clamp(0, area.b.minX, area.b.maxX))
		for _, pt := range points {
			y := area.py(pt.y) + shift - w/2
			pdf.Rect(math.Min(x0, area.px(pt.x)), y, math.Abs(area.px(pt.x)-x0), w, "FD")
		}
	case kindYBar:
		w := barSize(plot.barWidth)
		shift := plot.barShift * ptToMM
		y0 := area.py(clamp(0, area.b.minY, area.b.maxY))
		for _, pt := range points {
			x := area.px(pt.x) + shift - w/2
			pdf.Rect(x, math.Min(y0, area.py(pt.y)), w, math.Abs(area.py(pt.y)-y0), "FD")
		}
	case kindXComb:
		x0 := area.px(clamp(0, area.b.minX, area.b.maxX))
		for _, pt := range points {
			pdf.Line(x0, area.py(pt.y), area.px(pt.x), area.py(pt.y))
		}
	case kindYComb:
		y0 := area.py(clamp(0, area.b.minY, area.b.maxY))
		for _, pt := range points {
			pdf.Line(area.px(pt.x), y0, area.px(pt.x), area.py(pt.y))
		}
	case kindOnlyMarks:
		// Marks drawn below.
	}

	drawErrorBars(pdf, plot, points, area)

	if plot.mark {
		for _, pt := range points {
			pdf.Circle(area.px(pt.x), area.py(pt.y), 0.8, "FD")
		}
	}
}

func drawErrorBars(pdf *fpdf.Fpdf, plot *plotModel, points []point, area plotArea) {
	const capLen = 0.9
	for _, pt := range points {
		x, y := area.px(pt.x), area.py(pt.y)
		if plot.errX != errNone && pt.hasEx {
			lo, hi := errBounds(pt.x, pt.ex, plot.errX)
			pdf.Line(area.px(lo), y, area.px(hi), y)
			pdf.Line(area.px(lo), y-capLen, area.px(lo), y+capLen)
			pdf.Line(area.px(hi), y-capLen, area.px(hi), y+capLen)
		}
		if plot.errY != errNone && pt.hasEy {
			lo, hi := errBounds(pt.y, pt.ey, plot.errY)
			pdf.Line(x, area.py(lo), x, area.py(hi))
			pdf.Line(x-capLen, area.py(lo), x+capLen, area.py(lo))
			pdf.Line(x-capLen, area.py(hi), x+capLen, area.py(hi))
		}
	}
}

func errBounds(v, err float64, dir errDir) (lo, hi float64) {
	switch dir {
	case errPlus:
		return v, v + err
	case errMinus:
		return v - err, v
	default:
		return v - err, v + err
	}
}

func barSize(widthPt float64) float64 {
	if widthPt <= 0 {
		widthPt = 6
	}
	return widthPt * ptToMM
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
