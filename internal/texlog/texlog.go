// Package texlog turns backend output into structured diagnostics. Both the
// external pdflatex engine and the embedded renderer report through the same
// Diagnostic shape, so callers never need to know which backend ran.
package texlog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Diagnostic is one message reported by an engine. Line refers to the line
// of the rendered document source, when the engine reported one; zero means
// no line information.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", d.Severity, d.Message, d.Line)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Decode converts raw log bytes to a string. TeX engines do not guarantee
// UTF-8 log files; anything that is not valid UTF-8 is decoded as Latin-1.
func Decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}

// Parse extracts diagnostics from a pdflatex log. Errors are the "! ..."
// lines, with the line number taken from the "l.<n>" context that follows;
// "LaTeX Warning:" and package warnings become warnings.
func Parse(log string) []Diagnostic {
	var diags []Diagnostic
	lines := strings.Split(log, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		switch {
		case strings.HasPrefix(line, "! "):
			d := Diagnostic{Severity: SevError, Message: strings.TrimPrefix(line, "! ")}
			d.Line = contextLine(lines[i+1:])
			diags = append(diags, d)
		case strings.HasPrefix(line, "LaTeX Warning: "):
			diags = append(diags, Diagnostic{
				Severity: SevWarning,
				Message:  strings.TrimPrefix(line, "LaTeX Warning: "),
			})
		case strings.HasPrefix(line, "Package ") && strings.Contains(line, " Warning: "):
			diags = append(diags, Diagnostic{Severity: SevWarning, Message: line})
		}
	}
	return diags
}

// contextLine scans the lines following an error for the "l.<n>" marker
// pdflatex prints with the offending source line. The scan stops at the next
// error or after a short window; the marker is always close by.
func contextLine(lines []string) int {
	for i, line := range lines {
		if i > 10 || strings.HasPrefix(line, "! ") {
			break
		}
		if !strings.HasPrefix(line, "l.") {
			continue
		}
		rest := strings.TrimPrefix(line, "l.")
		end := 0
		for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
			end++
		}
		if end == 0 {
			continue
		}
		n, err := strconv.Atoi(rest[:end])
		if err != nil {
			continue
		}
		return n
	}
	return 0
}
