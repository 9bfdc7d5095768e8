package embedtex

import (
	"fmt"
	"strconv"
	"strings"

	"pgfplot/internal/texlog"
)

// parser walks the document line by line. The dialect is machine-generated,
// so structure is matched per line; option content is validated separately.
type parser struct {
	lines []string
	pos   int
	diags []texlog.Diagnostic
}

func newParser(doc string) *parser {
	return &parser{lines: strings.Split(doc, "\n")}
}

// failures returns the diagnostics when any of them is an error.
func (p *parser) failures() []texlog.Diagnostic {
	for _, d := range p.diags {
		if d.Severity == texlog.SevError {
			return p.diags
		}
	}
	return nil
}

func (p *parser) errorf(line int, format string, args ...any) {
	p.diags = append(p.diags, texlog.Diagnostic{
		Severity: texlog.SevError,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
	})
}

// peek returns the next line without consuming it. The boolean is false at
// end of input.
func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.lines) {
		return "", false
	}
	return p.lines[p.pos], true
}

func (p *parser) next() (string, bool) {
	line, ok := p.peek()
	if ok {
		p.pos++
	}
	return line, ok
}

// lineNo is the 1-based number of the line most recently consumed.
func (p *parser) lineNo() int { return p.pos }

func (p *parser) expect(literal string) bool {
	line, ok := p.next()
	if !ok {
		p.errorf(p.lineNo(), "unexpected end of document, expected %q", literal)
		return false
	}
	if line != literal {
		p.errorf(p.lineNo(), "unexpected %q, expected %q", line, literal)
		return false
	}
	return true
}

func (p *parser) parseDocument() *document {
	doc := &document{}
	if !p.expect("\\documentclass{standalone}") {
		return doc
	}
	if !p.expect("\\usepackage{pgfplots}") {
		return doc
	}
	if !p.expect("\\begin{document}") {
		return doc
	}
	p.parsePicture(doc)
	if p.failures() != nil {
		return doc
	}
	p.expect("\\end{document}")
	return doc
}

func (p *parser) parsePicture(doc *document) {
	line, ok := p.next()
	if !ok || !strings.HasPrefix(line, "\\begin{tikzpicture}") {
		p.errorf(p.lineNo(), "expected \\begin{tikzpicture}")
		return
	}
	if strings.HasSuffix(line, "[") {
		for _, opt := range p.parseOptionBlock() {
			p.applyPictureOption(opt)
		}
	}
	for {
		line, ok := p.peek()
		if !ok {
			p.errorf(p.lineNo(), "unexpected end of document inside tikzpicture")
			return
		}
		switch {
		case strings.HasPrefix(line, "\\begin{axis}"):
			doc.axes = append(doc.axes, p.parseAxis())
		case line == "\\end{tikzpicture}":
			p.pos++
			return
		default:
			p.pos++
			p.errorf(p.lineNo(), "unexpected %q inside tikzpicture", line)
			return
		}
		if p.failures() != nil {
			return
		}
	}
}

func (p *parser) parseAxis() *axisModel {
	axis := &axisModel{}
	line, _ := p.next()
	if strings.HasSuffix(line, "[") {
		for _, opt := range p.parseOptionBlock() {
			p.applyAxisOption(axis, opt)
		}
	}
	for {
		line, ok := p.peek()
		if !ok {
			p.errorf(p.lineNo(), "unexpected end of document inside axis")
			return axis
		}
		trimmed := strings.TrimLeft(line, "\t")
		switch {
		case strings.HasPrefix(trimmed, "\\addplot"):
			axis.plots = append(axis.plots, p.parsePlot())
		case line == "\\end{axis}":
			p.pos++
			return axis
		default:
			p.pos++
			p.errorf(p.lineNo(), "unexpected %q inside axis", line)
			return axis
		}
		if p.failures() != nil {
			return axis
		}
	}
}

// parseOptionBlock consumes indented "key," lines up to the closing bracket
// and returns each key with the line it came from.
func (p *parser) parseOptionBlock() []option {
	var opts []option
	for {
		line, ok := p.next()
		if !ok {
			p.errorf(p.lineNo(), "unterminated option list")
			return opts
		}
		trimmed := strings.TrimLeft(line, "\t")
		if trimmed == "]" {
			return opts
		}
		opts = append(opts, option{
			text: strings.TrimSuffix(trimmed, ","),
			line: p.lineNo(),
		})
	}
}

func (p *parser) parsePlot() *plotModel {
	plot := &plotModel{}
	line, _ := p.next()
	trimmed := strings.TrimLeft(line, "\t")
	rest := strings.TrimPrefix(trimmed, "\\addplot")
	if strings.HasPrefix(rest, "3") {
		plot.threeD = true
		rest = strings.TrimPrefix(rest, "3")
	}
	if !strings.HasPrefix(rest, "[") {
		p.errorf(p.lineNo(), "malformed plot command %q", trimmed)
		return plot
	}
	if rest != "[] coordinates {" {
		// Multi-line option list, terminated by "] coordinates {".
		for {
			line, ok := p.next()
			if !ok {
				p.errorf(p.lineNo(), "unterminated plot option list")
				return plot
			}
			optLine := strings.TrimLeft(line, "\t")
			if optLine == "] coordinates {" {
				break
			}
			p.applyPlotOption(plot, option{
				text: strings.TrimSuffix(optLine, ","),
				line: p.lineNo(),
			})
		}
	}
	for {
		line, ok := p.next()
		if !ok {
			p.errorf(p.lineNo(), "unterminated coordinate list")
			return plot
		}
		coordLine := strings.TrimLeft(line, "\t")
		if coordLine == "};" {
			return plot
		}
		c, err := parseCoordinate(coordLine, plot.threeD)
		if err != nil {
			p.errorf(p.lineNo(), "%s", err)
			return plot
		}
		plot.coords = append(plot.coords, c)
	}
}

// parseCoordinate reads "(x,y)", "(x,y,z)", or "(x,y)\t+- (ex,ey)".
func parseCoordinate(s string, threeD bool) (coord, error) {
	var c coord
	c.threeD = threeD
	point := s
	if i := strings.Index(s, "\t+- "); i >= 0 {
		point = s[:i]
		errPart := s[i+len("\t+- "):]
		ex, ey, err := parsePair(errPart)
		if err != nil {
			return c, fmt.Errorf("malformed error term %q", errPart)
		}
		c.ex, c.ey = ex, ey
		c.hasEx, c.hasEy = true, true
	}
	fields, err := parseTuple(point)
	if err != nil {
		return c, fmt.Errorf("malformed coordinate %q", point)
	}
	switch {
	case threeD && len(fields) == 3:
		c.x, c.y, c.z = fields[0], fields[1], fields[2]
	case !threeD && len(fields) == 2:
		c.x, c.y = fields[0], fields[1]
	default:
		return c, fmt.Errorf("coordinate %q has %d components", point, len(fields))
	}
	return c, nil
}

func parsePair(s string) (float64, float64, error) {
	fields, err := parseTuple(s)
	if err != nil || len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected a pair in %q", s)
	}
	return fields[0], fields[1], nil
}

func parseTuple(s string) ([]float64, error) {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("missing parentheses in %q", s)
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
