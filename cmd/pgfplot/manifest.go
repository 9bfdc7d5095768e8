package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"pgfplot"
)

// figureManifest is the TOML description of one figure.
type figureManifest struct {
	Name string         `toml:"name"`
	Axis []axisManifest `toml:"axis"`
}

type axisManifest struct {
	Title  string         `toml:"title"`
	XLabel string         `toml:"xlabel"`
	YLabel string         `toml:"ylabel"`
	XMode  string         `toml:"xmode"`
	YMode  string         `toml:"ymode"`
	Keys   []string       `toml:"keys"`
	Plot   []plotManifest `toml:"plot"`
}

type plotManifest struct {
	ThreeD      bool        `toml:"three_d"`
	Keys        []string    `toml:"keys"`
	Coordinates [][]float64 `toml:"coordinates"`
	XError      []float64   `toml:"x_error"`
	YError      []float64   `toml:"y_error"`
}

// loadFigure parses a manifest file and builds the figure it describes.
func loadFigure(path string) (pgfplot.Figure, error) {
	var m figureManifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return pgfplot.Figure{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("name") || strings.TrimSpace(m.Name) == "" {
		m.Name = defaultFigureName(path)
	}
	if len(m.Axis) == 0 {
		return pgfplot.Figure{}, fmt.Errorf("%s: missing [[axis]]", path)
	}

	picture := pgfplot.NewPicture()
	for i, am := range m.Axis {
		axis, err := buildAxis(am)
		if err != nil {
			return pgfplot.Figure{}, fmt.Errorf("%s: axis %d: %w", path, i+1, err)
		}
		picture.AddAxis(axis)
	}
	return pgfplot.Figure{Name: m.Name, Picture: picture}, nil
}

func buildAxis(m axisManifest) (*pgfplot.Axis, error) {
	axis := pgfplot.NewAxis()
	if m.Title != "" {
		axis.SetTitle(m.Title)
	}
	if m.XLabel != "" {
		axis.SetXLabel(m.XLabel)
	}
	if m.YLabel != "" {
		axis.SetYLabel(m.YLabel)
	}
	if m.XMode != "" {
		scale, err := parseScale(m.XMode)
		if err != nil {
			return nil, fmt.Errorf("xmode: %w", err)
		}
		axis.AddKey(pgfplot.XModeKey(scale))
	}
	if m.YMode != "" {
		scale, err := parseScale(m.YMode)
		if err != nil {
			return nil, fmt.Errorf("ymode: %w", err)
		}
		axis.AddKey(pgfplot.YModeKey(scale))
	}
	for _, raw := range m.Keys {
		axis.AddKey(rawKey(raw))
	}
	for j, pm := range m.Plot {
		plot, err := buildPlot(pm)
		if err != nil {
			return nil, fmt.Errorf("plot %d: %w", j+1, err)
		}
		axis.AddPlot(plot)
	}
	return axis, nil
}

func buildPlot(m plotManifest) (*pgfplot.Plot, error) {
	var plot *pgfplot.Plot
	if m.ThreeD {
		plot = pgfplot.NewPlot3D()
	} else {
		plot = pgfplot.NewPlot2D()
	}
	for _, raw := range m.Keys {
		plot.AddKey(rawKey(raw))
	}
	if len(m.XError) > 0 && len(m.XError) != len(m.Coordinates) {
		return nil, fmt.Errorf("x_error has %d values for %d coordinates", len(m.XError), len(m.Coordinates))
	}
	if len(m.YError) > 0 && len(m.YError) != len(m.Coordinates) {
		return nil, fmt.Errorf("y_error has %d values for %d coordinates", len(m.YError), len(m.Coordinates))
	}
	for i, fields := range m.Coordinates {
		var c pgfplot.Coordinate
		switch {
		case m.ThreeD && len(fields) == 3:
			c = pgfplot.XYZ(fields[0], fields[1], fields[2])
		case !m.ThreeD && len(fields) == 2:
			c = pgfplot.XY(fields[0], fields[1])
		case !m.ThreeD && len(fields) == 4:
			// Inline error form: x, y, xerr, yerr.
			c = pgfplot.XY(fields[0], fields[1]).WithXError(fields[2]).WithYError(fields[3])
		default:
			return nil, fmt.Errorf("coordinate %d has %d components", i+1, len(fields))
		}
		if len(m.XError) > 0 {
			c = c.WithXError(m.XError[i])
		}
		if len(m.YError) > 0 {
			c = c.WithYError(m.YError[i])
		}
		plot.AppendCoordinate(c)
	}
	return plot, nil
}

// rawKey turns a manifest key string into an option key, splitting at the
// first equals sign.
func rawKey(raw string) pgfplot.Key {
	if i := strings.Index(raw, "="); i > 0 {
		return pgfplot.CustomKey(strings.TrimSpace(raw[:i]), strings.TrimSpace(raw[i+1:]))
	}
	return pgfplot.CustomKey(strings.TrimSpace(raw), "")
}

func parseScale(s string) (pgfplot.Scale, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "normal", "linear":
		return pgfplot.ScaleNormal, nil
	case "log":
		return pgfplot.ScaleLog, nil
	}
	return pgfplot.ScaleNormal, fmt.Errorf("invalid scale %q (expected normal|log)", s)
}

// defaultFigureName derives a figure name from the manifest path.
func defaultFigureName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
