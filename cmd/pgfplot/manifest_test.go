package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "figure.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadFigure(t *testing.T) {
	path := writeManifest(t, `
name = "growth"

[[axis]]
title = "Growth"
xlabel = "$t$"
ylabel = "$n$"
ymode = "log"
keys = ["legend pos=north west"]

[[axis.plot]]
keys = ["smooth", "tension=0.55"]
coordinates = [[0.0, 1.0], [1.0, 2.0], [2.0, 4.0]]
y_error = [0.1, 0.2, 0.4]
`)
	fig, err := loadFigure(path)
	if err != nil {
		t.Fatalf("loadFigure: %v", err)
	}
	if fig.Name != "growth" {
		t.Errorf("Name = %q, want %q", fig.Name, "growth")
	}

	rendered := fig.Picture.String()
	for _, want := range []string{
		"title={Growth}",
		"xlabel={$t$}",
		"ylabel={$n$}",
		"ymode=log",
		"legend pos=north west",
		"smooth",
		"tension=0.55",
		"(1,2)\t+- (0,0.2)",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered markup missing %q:\n%s", want, rendered)
		}
	}
}

func TestLoadFigureThreeD(t *testing.T) {
	path := writeManifest(t, `
name = "helix"

[[axis]]

[[axis.plot]]
three_d = true
coordinates = [[1.0, 0.0, 0.0], [0.0, 1.0, 1.0]]
`)
	fig, err := loadFigure(path)
	if err != nil {
		t.Fatalf("loadFigure: %v", err)
	}
	if !strings.Contains(fig.Picture.String(), "\\addplot3[] coordinates {") {
		t.Errorf("rendered markup missing \\addplot3:\n%s", fig.Picture.String())
	}
}

func TestLoadFigureDefaultName(t *testing.T) {
	path := writeManifest(t, "[[axis]]\n")
	fig, err := loadFigure(path)
	if err != nil {
		t.Fatalf("loadFigure: %v", err)
	}
	if fig.Name != "figure" {
		t.Errorf("Name = %q, want %q", fig.Name, "figure")
	}
}

func TestLoadFigureErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     string
	}{
		{
			"missing axis",
			"name = \"x\"\n",
			"missing [[axis]]",
		},
		{
			"bad scale",
			"name = \"x\"\n[[axis]]\nxmode = \"cubic\"\n",
			"invalid scale",
		},
		{
			"bad coordinate arity",
			"name = \"x\"\n[[axis]]\n[[axis.plot]]\ncoordinates = [[1.0, 2.0, 3.0]]\n",
			"components",
		},
		{
			"mismatched errors",
			"name = \"x\"\n[[axis]]\n[[axis.plot]]\ncoordinates = [[1.0, 2.0]]\ny_error = [0.1, 0.2]\n",
			"y_error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.manifest)
			_, err := loadFigure(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestRawKey(t *testing.T) {
	if got := rawKey("smooth").String(); got != "smooth" {
		t.Errorf("rawKey = %q", got)
	}
	if got := rawKey("tension=0.55").String(); got != "tension=0.55" {
		t.Errorf("rawKey = %q", got)
	}
	if got := rawKey(" legend pos = north west ").String(); got != "legend pos=north west" {
		t.Errorf("rawKey = %q", got)
	}
}

func TestDefaultFigureName(t *testing.T) {
	if got := defaultFigureName("figs/growth.toml"); got != "growth" {
		t.Errorf("defaultFigureName = %q", got)
	}
}
