package pgfplot

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"pgfplot/internal/figcache"
)

func testPicture() *Picture {
	plot := NewPlot2D()
	plot.AddKey(TypeKey(SharpPlot))
	for i := -5; i <= 5; i++ {
		x := float64(i)
		plot.AppendCoordinate(XY(x, x*x))
	}
	axis := AxisFromPlot(plot)
	axis.SetTitle("Quadratic")
	axis.SetXLabel("$x$")
	axis.SetYLabel("$y$")
	return PictureFromAxis(axis)
}

func TestCompileEmbedded(t *testing.T) {
	result, err := testPicture().Compile(context.Background(), EngineEmbedded, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !result.Succeeded() {
		t.Fatalf("compilation failed: %s", result.Log)
	}
	if !bytes.HasPrefix(result.Artifact, []byte("%PDF")) {
		t.Errorf("artifact does not start with %%PDF: %q", result.Artifact[:8])
	}
	if result.WorkDir != "" {
		t.Errorf("working directory should have been removed, got %q", result.WorkDir)
	}
	if result.FromCache {
		t.Error("result should not come from the cache")
	}
}

func TestCompileEmbeddedRejectsUnknownOptions(t *testing.T) {
	plot := NewPlot2D()
	plot.AddKey(CustomKey("definitely not a real option", "banana"))
	plot.AppendCoordinate(XY(1, 1))
	picture := PictureFromAxis(AxisFromPlot(plot))

	result, err := picture.Compile(context.Background(), EngineEmbedded, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if result.Succeeded() {
		t.Fatal("compilation should have failed")
	}
	d, ok := result.FirstError()
	if !ok {
		t.Fatal("expected an error diagnostic")
	}
	if !strings.Contains(d.Message, "unknown option") {
		t.Errorf("diagnostic = %q, want unknown option", d.Message)
	}
}

func TestCompileExternalMissingProgram(t *testing.T) {
	opts := Options{Program: "pgfplot-test-no-such-binary"}
	result, err := testPicture().Compile(context.Background(), EnginePDFLaTeX, opts)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if result.Succeeded() {
		t.Fatal("compilation should have failed")
	}
	if result.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", result.ExitCode)
	}
	d, ok := result.FirstError()
	if !ok {
		t.Fatal("expected an error diagnostic")
	}
	if !strings.Contains(d.Message, "not found") {
		t.Errorf("diagnostic = %q, want not found", d.Message)
	}
	if result.WorkDir != "" {
		t.Errorf("working directory should have been removed, got %q", result.WorkDir)
	}
}

func TestCompileKeepOnFailure(t *testing.T) {
	opts := Options{Program: "pgfplot-test-no-such-binary", KeepOnFailure: true, JobName: "kept"}
	result, err := testPicture().Compile(context.Background(), EnginePDFLaTeX, opts)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if result.WorkDir == "" {
		t.Fatal("working directory should have been kept")
	}
	t.Cleanup(func() { _ = os.RemoveAll(result.WorkDir) })

	src := filepath.Join(result.WorkDir, "kept.tex")
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source file missing: %v", err)
	}
}

func TestCompileOutputDir(t *testing.T) {
	outDir := t.TempDir()
	opts := Options{OutputDir: outDir, JobName: "quad"}
	result, err := testPicture().Compile(context.Background(), EngineEmbedded, opts)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !result.Succeeded() {
		t.Fatalf("compilation failed: %s", result.Log)
	}
	want := filepath.Join(outDir, "quad.pdf")
	if result.ArtifactPath != want {
		t.Errorf("ArtifactPath = %q, want %q", result.ArtifactPath, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if !bytes.Equal(data, result.Artifact) {
		t.Error("persisted artifact differs from result")
	}
}

func TestCompileCache(t *testing.T) {
	cache, err := figcache.OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	opts := Options{Cache: cache}

	first, err := testPicture().Compile(context.Background(), EngineEmbedded, opts)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if first.FromCache {
		t.Fatal("first compilation should not hit the cache")
	}

	second, err := testPicture().Compile(context.Background(), EngineEmbedded, opts)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !second.FromCache {
		t.Fatal("second compilation should hit the cache")
	}
	if !bytes.Equal(first.Artifact, second.Artifact) {
		t.Error("cached artifact differs")
	}
}

func TestCompileAllOrder(t *testing.T) {
	figures := []Figure{
		{Name: "alpha", Picture: testPicture()},
		{Name: "beta", Picture: testPicture()},
		{Name: "gamma", Picture: testPicture()},
	}
	results, err := CompileAll(context.Background(), EngineEmbedded, figures, Options{})
	if err != nil {
		t.Fatalf("CompileAll: %v", err)
	}
	if len(results) != len(figures) {
		t.Fatalf("len = %d, want %d", len(results), len(figures))
	}
	for i, res := range results {
		if res == nil || !res.Succeeded() {
			t.Fatalf("figure %d failed", i)
		}
		if res.JobName != figures[i].Name {
			t.Errorf("result %d JobName = %q, want %q", i, res.JobName, figures[i].Name)
		}
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func TestCompileProgressEvents(t *testing.T) {
	sink := &recordingSink{}
	opts := Options{Progress: sink, JobName: "traced"}
	result, err := testPicture().Compile(context.Background(), EngineEmbedded, opts)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !result.Succeeded() {
		t.Fatalf("compilation failed: %s", result.Log)
	}

	seen := map[Stage]bool{}
	for _, evt := range sink.events {
		if evt.Figure != "traced" {
			t.Errorf("event figure = %q, want traced", evt.Figure)
		}
		if evt.Status == StatusDone {
			seen[evt.Stage] = true
		}
	}
	for _, stage := range []Stage{StageRender, StagePrepare, StageCompile, StageCollect} {
		if !seen[stage] {
			t.Errorf("no done event for stage %s", stage)
		}
	}
}

func TestParseEngine(t *testing.T) {
	if _, err := ParseEngine("pdflatex"); err != nil {
		t.Errorf("pdflatex: %v", err)
	}
	if _, err := ParseEngine("embedded"); err != nil {
		t.Errorf("embedded: %v", err)
	}
	if _, err := ParseEngine("tectonic"); err == nil {
		t.Error("tectonic should be rejected")
	}
}

func TestCompilePDFLaTeX(t *testing.T) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		t.Skip("pdflatex not installed")
	}
	result, err := testPicture().Compile(context.Background(), EnginePDFLaTeX, Options{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !result.Succeeded() {
		t.Fatalf("compilation failed: %s", result.Log)
	}
	if !bytes.HasPrefix(result.Artifact, []byte("%PDF")) {
		t.Error("artifact does not start with %PDF")
	}
}
