package embedtex

import (
	"bytes"
	"strings"
	"testing"

	"pgfplot/internal/texlog"
)

const minimalDoc = "\\documentclass{standalone}\n" +
	"\\usepackage{pgfplots}\n" +
	"\\begin{document}\n" +
	"\\begin{tikzpicture}\n" +
	"\\begin{axis}\n" +
	"\t\\addplot[] coordinates {\n" +
	"\t\t(1,1)\n" +
	"\t\t(2,4)\n" +
	"\t};\n" +
	"\\end{axis}\n" +
	"\\end{tikzpicture}\n" +
	"\\end{document}"

func TestCompileMinimal(t *testing.T) {
	artifact, diags, err := Compile(minimalDoc)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("diags = %v, want none", diags)
	}
	if !bytes.HasPrefix(artifact, []byte("%PDF")) {
		t.Error("artifact does not start with %PDF")
	}
}

func TestCompileEmptyPicture(t *testing.T) {
	doc := "\\documentclass{standalone}\n" +
		"\\usepackage{pgfplots}\n" +
		"\\begin{document}\n" +
		"\\begin{tikzpicture}\n" +
		"\\end{tikzpicture}\n" +
		"\\end{document}"
	artifact, diags, err := Compile(doc)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("diags = %v, want none", diags)
	}
	if !bytes.HasPrefix(artifact, []byte("%PDF")) {
		t.Error("artifact does not start with %PDF")
	}
}

func TestCompileFullFigure(t *testing.T) {
	doc := "\\documentclass{standalone}\n" +
		"\\usepackage{pgfplots}\n" +
		"\\begin{document}\n" +
		"\\begin{tikzpicture}\n" +
		"\\begin{axis}[\n" +
		"\ttitle={Slope is $2\\pi$},\n" +
		"\txlabel={Radius~[m]},\n" +
		"\tylabel={Circumference~[m]},\n" +
		"\tlegend entries={fit,data},\n" +
		"\tlegend pos=north west,\n" +
		"]\n" +
		"\t\\addplot[\n" +
		"\t\tdashed,\n" +
		"\t] coordinates {\n" +
		"\t\t(0,0)\n" +
		"\t\t(10,62.83185307179586)\n" +
		"\t};\n" +
		"\t\\addplot[\n" +
		"\t\tonly marks,\n" +
		"\t\terror bars/x explicit,\n" +
		"\t\terror bars/x dir=both,\n" +
		"\t\terror bars/y explicit,\n" +
		"\t\terror bars/y dir=both,\n" +
		"\t\tmark size=1pt,\n" +
		"\t] coordinates {\n" +
		"\t\t(1,8)\t+- (0.2,0.9)\n" +
		"\t\t(3,16)\t+- (0.4,1.4)\n" +
		"\t};\n" +
		"\\end{axis}\n" +
		"\\end{tikzpicture}\n" +
		"\\end{document}"
	artifact, diags, err := Compile(doc)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("diags = %v, want none", diags)
	}
	if len(artifact) == 0 {
		t.Error("empty artifact")
	}
}

func TestCompileThreeD(t *testing.T) {
	doc := "\\documentclass{standalone}\n" +
		"\\usepackage{pgfplots}\n" +
		"\\begin{document}\n" +
		"\\begin{tikzpicture}\n" +
		"\\begin{axis}\n" +
		"\t\\addplot3[] coordinates {\n" +
		"\t\t(1,1,1)\n" +
		"\t\t(2,4,8)\n" +
		"\t};\n" +
		"\\end{axis}\n" +
		"\\end{tikzpicture}\n" +
		"\\end{document}"
	artifact, diags, err := Compile(doc)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("diags = %v, want none", diags)
	}
	if len(artifact) == 0 {
		t.Error("empty artifact")
	}
}

func TestCompileUnknownOption(t *testing.T) {
	doc := "\\documentclass{standalone}\n" +
		"\\usepackage{pgfplots}\n" +
		"\\begin{document}\n" +
		"\\begin{tikzpicture}\n" +
		"\\begin{axis}\n" +
		"\t\\addplot[\n" +
		"\t\tdefinitely not a real option=banana,\n" +
		"\t] coordinates {\n" +
		"\t\t(1,1)\n" +
		"\t};\n" +
		"\\end{axis}\n" +
		"\\end{tikzpicture}\n" +
		"\\end{document}"
	artifact, diags, err := Compile(doc)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if artifact != nil {
		t.Fatal("expected no artifact")
	}
	if len(diags) == 0 {
		t.Fatal("expected diagnostics")
	}
	if diags[0].Severity != texlog.SevError {
		t.Errorf("severity = %v, want error", diags[0].Severity)
	}
	if !strings.Contains(diags[0].Message, "unknown option") {
		t.Errorf("message = %q", diags[0].Message)
	}
	if diags[0].Line != 7 {
		t.Errorf("line = %d, want 7", diags[0].Line)
	}
}

func TestCompileMalformedPreamble(t *testing.T) {
	_, diags, err := Compile("\\documentclass{article}\nnope")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(diags) == 0 {
		t.Fatal("expected diagnostics")
	}
}

func TestCompileLogScaleRejectsNonPositive(t *testing.T) {
	doc := "\\documentclass{standalone}\n" +
		"\\usepackage{pgfplots}\n" +
		"\\begin{document}\n" +
		"\\begin{tikzpicture}\n" +
		"\\begin{axis}[\n" +
		"\tymode=log,\n" +
		"]\n" +
		"\t\\addplot[] coordinates {\n" +
		"\t\t(1,-5)\n" +
		"\t};\n" +
		"\\end{axis}\n" +
		"\\end{tikzpicture}\n" +
		"\\end{document}"
	artifact, diags, err := Compile(doc)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if artifact != nil {
		t.Fatal("expected no artifact")
	}
	if len(diags) == 0 {
		t.Fatal("expected diagnostics")
	}
	if !strings.Contains(diags[0].Message, "log scaling") {
		t.Errorf("message = %q", diags[0].Message)
	}
}

func TestParseCoordinate(t *testing.T) {
	c, err := parseCoordinate("(1,-1)", false)
	if err != nil {
		t.Fatalf("parseCoordinate: %v", err)
	}
	if c.x != 1 || c.y != -1 || c.hasEx || c.hasEy {
		t.Errorf("coord = %+v", c)
	}

	c, err = parseCoordinate("(1,-1)\t+- (4,3)", false)
	if err != nil {
		t.Fatalf("parseCoordinate: %v", err)
	}
	if c.ex != 4 || c.ey != 3 || !c.hasEx || !c.hasEy {
		t.Errorf("coord = %+v", c)
	}

	c, err = parseCoordinate("(1,2,3)", true)
	if err != nil {
		t.Fatalf("parseCoordinate: %v", err)
	}
	if c.z != 3 || !c.threeD {
		t.Errorf("coord = %+v", c)
	}

	if _, err := parseCoordinate("(1,2,3)", false); err == nil {
		t.Error("2-D coordinate with 3 components should fail")
	}
	if _, err := parseCoordinate("1,2", false); err == nil {
		t.Error("missing parentheses should fail")
	}
}

func TestSplitFragments(t *testing.T) {
	frags, ok := splitFragments("xbar, bar width=19.5")
	if !ok || len(frags) != 2 || frags[0] != "xbar" || frags[1] != "bar width=19.5" {
		t.Errorf("frags = %v, ok = %v", frags, ok)
	}

	frags, ok = splitFragments("fill={rgb,255:red,25;green,230}")
	if !ok || len(frags) != 1 {
		t.Errorf("braced fragment split: %v", frags)
	}

	if _, ok := splitFragments("fill={rgb,255:red"); ok {
		t.Error("unbalanced braces should fail")
	}
}

func TestLookupColor(t *testing.T) {
	if c := lookupColor("blue"); c == nil || c.b != 255 {
		t.Errorf("blue = %+v", c)
	}
	if c := lookupColor("gray!20"); c == nil {
		t.Error("gray!20 should resolve to the base color")
	}
	if c := lookupColor("rgb,255:red,25;green,230"); c != nil {
		t.Errorf("mix expressions fall back to the default: %+v", c)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"{Slope is $2\\pi$}", "Slope is 2pi"},
		{"{Radius~[m]}", "Radius [m]"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := cleanText(tt.in); got != tt.want {
			t.Errorf("cleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
