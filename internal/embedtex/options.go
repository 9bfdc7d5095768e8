package embedtex

import (
	"strconv"
	"strings"
)

// option is one key line from an option block, with its source line for
// diagnostics.
type option struct {
	text string
	line int
}

// Flag options that carry no value. A key line may hold several fragments
// (e.g. "xbar, bar width=19.5"); each fragment is validated on its own.
var flagOptions = map[string]bool{
	"sharp plot":                     true,
	"smooth":                         true,
	"const plot mark left":           true,
	"const plot mark right":          true,
	"const plot mark mid":            true,
	"jump mark left":                 true,
	"jump mark right":                true,
	"jump mark mid":                  true,
	"xbar":                           true,
	"ybar":                           true,
	"xcomb":                          true,
	"ycomb":                          true,
	"only marks":                     true,
	"error bars/x explicit":          true,
	"error bars/x explicit relative": true,
	"error bars/y explicit":          true,
	"error bars/y explicit relative": true,
	"hide axis":                      true,
	"axis on top":                    true,
	"xlabel near ticks":              true,
	"ylabel near ticks":              true,
	"scale only axis":                true,
	"grid":                           true,
	"dashed":                         true,
	"dotted":                         true,
	"solid":                          true,
	"thin":                           true,
	"thick":                          true,
	"very thick":                     true,
	"ultra thick":                    true,
	"baseline":                       true,
}

// Valued options, keyed by the name left of "=".
var valuedOptions = map[string]bool{
	"tension":          true,
	"bar width":        true,
	"bar shift":        true,
	"error bars/x dir": true,
	"error bars/y dir": true,
	"mark":             true,
	"text mark":        true,
	"mark options":     true,
	"mark size":        true,
	"title":            true,
	"xlabel":           true,
	"ylabel":           true,
	"zlabel":           true,
	"xmode":            true,
	"ymode":            true,
	"xmin":             true,
	"xmax":             true,
	"ymin":             true,
	"ymax":             true,
	"legend entries":   true,
	"legend pos":       true,
	"legend style":     true,
	"axis lines":       true,
	"width":            true,
	"height":           true,
	"scale":            true,
	"view":             true,
	"samples":          true,
	"domain":           true,
	"compat":           true,
	"grid":             true,
	"fill":             true,
	"draw":             true,
	"color":            true,
	"line width":       true,
	"draw opacity":     true,
	"fill opacity":     true,
	"opacity":          true,
	"baseline":         true,
}

// Options allowed inside mark options={...}.
var markOptions = map[string]bool{
	"fill":  true,
	"draw":  true,
	"scale": true,
}

var namedColors = map[string]rgb{
	"red":       {255, 0, 0},
	"green":     {0, 128, 0},
	"blue":      {0, 0, 255},
	"cyan":      {0, 255, 255},
	"magenta":   {255, 0, 255},
	"yellow":    {226, 195, 0},
	"black":     {0, 0, 0},
	"gray":      {128, 128, 128},
	"white":     {255, 255, 255},
	"darkgray":  {64, 64, 64},
	"lightgray": {191, 191, 191},
	"brown":     {153, 89, 38},
	"lime":      {191, 255, 0},
	"olive":     {128, 128, 0},
	"orange":    {255, 128, 0},
	"pink":      {255, 191, 191},
	"purple":    {191, 0, 64},
	"teal":      {0, 128, 128},
	"violet":    {128, 0, 128},
}

// splitFragments breaks an option line at top-level commas; commas inside
// braces belong to the value. Unbalanced braces are a structural failure.
func splitFragments(text string) ([]string, bool) {
	var frags []string
	depth := 0
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return nil, false
			}
		case ',':
			if depth == 0 {
				frags = append(frags, strings.TrimSpace(text[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, false
	}
	frags = append(frags, strings.TrimSpace(text[start:]))
	return frags, true
}

// splitValue separates "name=value" at the first top-level equals sign.
func splitValue(fragment string) (name, value string, ok bool) {
	if i := strings.Index(fragment, "="); i > 0 {
		return strings.TrimSpace(fragment[:i]), strings.TrimSpace(fragment[i+1:]), true
	}
	return "", "", false
}

// braceStripped removes one level of grouping braces.
func braceStripped(value string) string {
	if strings.HasPrefix(value, "{") && strings.HasSuffix(value, "}") {
		return value[1 : len(value)-1]
	}
	return value
}

func (p *parser) applyPictureOption(opt option) {
	p.validateOption(opt, "picture")
}

func (p *parser) applyAxisOption(axis *axisModel, opt option) {
	fragments, ok := splitFragments(opt.text)
	if !ok {
		p.errorf(opt.line, "unbalanced braces in option %q", opt.text)
		return
	}
	for _, fragment := range fragments {
		name, value, hasValue := splitValue(fragment)
		if !hasValue {
			if !flagOptions[fragment] {
				p.errorf(opt.line, "unknown option %q", fragment)
				continue
			}
			if fragment == "hide axis" {
				axis.hide = true
			}
			continue
		}
		if !valuedOptions[name] {
			p.errorf(opt.line, "unknown option %q", name)
			continue
		}
		switch name {
		case "title":
			axis.title = cleanText(value)
		case "xlabel":
			axis.xlabel = cleanText(value)
		case "ylabel":
			axis.ylabel = cleanText(value)
		case "xmode":
			axis.xlog = value == "log"
		case "ymode":
			axis.ylog = value == "log"
		}
	}
}

func (p *parser) applyPlotOption(plot *plotModel, opt option) {
	fragments, ok := splitFragments(opt.text)
	if !ok {
		p.errorf(opt.line, "unbalanced braces in option %q", opt.text)
		return
	}
	for _, fragment := range fragments {
		name, value, hasValue := splitValue(fragment)
		if !hasValue {
			if !flagOptions[fragment] {
				p.errorf(opt.line, "unknown option %q", fragment)
				continue
			}
			p.applyPlotFlag(plot, fragment)
			continue
		}
		if !valuedOptions[name] {
			p.errorf(opt.line, "unknown option %q", name)
			continue
		}
		p.applyPlotValue(plot, opt.line, name, value)
	}
}

func (p *parser) applyPlotFlag(plot *plotModel, flag string) {
	switch flag {
	case "smooth":
		plot.kind = kindSmooth
	case "only marks":
		plot.kind = kindOnlyMarks
		plot.mark = true
	case "xbar":
		plot.kind = kindXBar
	case "ybar":
		plot.kind = kindYBar
	case "xcomb":
		plot.kind = kindXComb
	case "ycomb":
		plot.kind = kindYComb
	case "dashed":
		plot.dashed = true
	case "error bars/x explicit", "error bars/x explicit relative",
		"error bars/y explicit", "error bars/y explicit relative":
		// Character only; direction keys enable drawing.
	}
}

func (p *parser) applyPlotValue(plot *plotModel, line int, name, value string) {
	switch name {
	case "bar width":
		plot.barWidth, _ = strconv.ParseFloat(value, 64)
	case "bar shift":
		plot.barShift, _ = strconv.ParseFloat(value, 64)
	case "error bars/x dir":
		plot.errX = parseErrDir(value)
	case "error bars/y dir":
		plot.errY = parseErrDir(value)
	case "mark":
		plot.mark = true
	case "mark options":
		p.validateMarkOptions(plot, line, value)
	case "fill":
		plot.fill = lookupColor(value)
	case "draw", "color":
		plot.draw = lookupColor(value)
	}
}

func (p *parser) validateMarkOptions(plot *plotModel, line int, value string) {
	inner := braceStripped(value)
	if strings.TrimSpace(inner) == "" {
		return
	}
	fragments, ok := splitFragments(inner)
	if !ok {
		p.errorf(line, "unbalanced braces in mark options %q", value)
		return
	}
	for _, fragment := range fragments {
		name, optValue, hasValue := splitValue(fragment)
		if !hasValue || !markOptions[name] {
			p.errorf(line, "unknown mark option %q", fragment)
			continue
		}
		if name == "fill" && plot.fill == nil {
			plot.fill = lookupColor(optValue)
		}
		if name == "draw" && plot.draw == nil {
			plot.draw = lookupColor(optValue)
		}
	}
}

// validateOption checks a key line without applying semantics; used for
// picture options, which do not affect layout here.
func (p *parser) validateOption(opt option, scope string) {
	fragments, ok := splitFragments(opt.text)
	if !ok {
		p.errorf(opt.line, "unbalanced braces in %s option %q", scope, opt.text)
		return
	}
	for _, fragment := range fragments {
		if flagOptions[fragment] {
			continue
		}
		name, _, hasValue := splitValue(fragment)
		if hasValue && valuedOptions[name] {
			continue
		}
		p.errorf(opt.line, "unknown option %q", fragment)
	}
}

func parseErrDir(value string) errDir {
	switch value {
	case "plus":
		return errPlus
	case "minus":
		return errMinus
	case "both":
		return errBoth
	}
	return errNone
}

// lookupColor resolves predefined color names. Expressions the renderer
// cannot interpret (mixes, xcolor arithmetic) fall back to the default
// stroke color rather than failing the document.
func lookupColor(value string) *rgb {
	value = braceStripped(value)
	if c, ok := namedColors[value]; ok {
		return &c
	}
	if i := strings.Index(value, "!"); i > 0 {
		if c, ok := namedColors[value[:i]]; ok {
			return &c
		}
	}
	return nil
}

// cleanText strips LaTeX markup that has no meaning for the embedded
// renderer's plain-text labels.
func cleanText(value string) string {
	s := braceStripped(value)
	s = strings.ReplaceAll(s, "~", " ")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "\\", "")
	s = strings.ReplaceAll(s, "{", "")
	s = strings.ReplaceAll(s, "}", "")
	return s
}
