package pgfplot

import (
	"fmt"
	"time"

	"pgfplot/internal/figcache"
	"pgfplot/internal/texlog"
)

// Engine selects the backend that turns rendered markup into a PDF.
type Engine string

const (
	// EnginePDFLaTeX invokes an external pdflatex process.
	EnginePDFLaTeX Engine = "pdflatex"
	// EngineEmbedded renders in-process with no external program.
	EngineEmbedded Engine = "embedded"
)

// ParseEngine converts a user-supplied engine name.
func ParseEngine(s string) (Engine, error) {
	switch Engine(s) {
	case EnginePDFLaTeX, EngineEmbedded:
		return Engine(s), nil
	}
	return "", fmt.Errorf("unsupported engine: %s (supported: pdflatex, embedded)", s)
}

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageRender is the document rendering stage.
	StageRender Stage = "render"
	// StagePrepare is the working-directory setup stage.
	StagePrepare Stage = "prepare"
	// StageCompile is the engine invocation stage.
	StageCompile Stage = "compile"
	// StageCollect is the artifact collection stage.
	StageCollect Stage = "collect"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the figure is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is in progress.
	StatusWorking Status = "working"
	// StatusDone indicates the stage finished.
	StatusDone Status = "done"
	// StatusError indicates the stage failed.
	StatusError Status = "error"
)

// Event reports progress for a figure (or for the overall pipeline when
// Figure is empty).
type Event struct {
	Figure  string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emitStage(sink ProgressSink, figure string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Figure: figure, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// Options configures one compilation call.
type Options struct {
	// Program is the external engine binary, resolved via the environment's
	// standard lookup. Defaults to "pdflatex". Ignored by EngineEmbedded.
	Program string
	// JobName is the base name of the source and artifact files. Defaults
	// to "figure".
	JobName string
	// OutputDir, when set, receives a copy of the primary artifact as
	// <JobName>.pdf after a successful compilation.
	OutputDir string
	// KeepFiles retains the scoped working directory (source, logs,
	// auxiliary files) for post-mortem debugging.
	KeepFiles bool
	// KeepOnFailure retains the working directory only when compilation
	// fails. Independent of KeepFiles.
	KeepOnFailure bool
	// Cache, when set, is consulted before invoking an engine and updated
	// after a successful compilation.
	Cache *figcache.Cache
	// Jobs bounds the number of concurrent compilations in CompileAll.
	// Zero or negative means no bound.
	Jobs int
	// Progress receives pipeline events. Optional.
	Progress ProgressSink
	// Figure names this compilation in progress events. Defaults to JobName.
	Figure string
}

func (o Options) withDefaults() Options {
	if o.Program == "" {
		o.Program = string(EnginePDFLaTeX)
	}
	if o.JobName == "" {
		o.JobName = "figure"
	}
	if o.Figure == "" {
		o.Figure = o.JobName
	}
	return o
}

// CompilationResult is the outcome of one compilation attempt. On success
// Artifact holds the primary output; on failure Artifact is nil and Log and
// Diagnostics carry the backend's report. The shape is identical for both
// engines.
type CompilationResult struct {
	Engine  Engine
	JobName string
	// Artifact is the primary output, nil when compilation failed.
	Artifact []byte
	// ArtifactPath is where the primary output was persisted, when
	// OutputDir was set or the working directory was kept.
	ArtifactPath string
	// WorkDir is the retained working directory; empty when it was removed.
	WorkDir string
	// Log is the backend's raw diagnostic output.
	Log string
	// Diagnostics are the structured messages extracted from Log.
	Diagnostics []texlog.Diagnostic
	// ExitCode is the external program's exit status; zero for the
	// embedded engine and -1 when the program could not be resolved.
	ExitCode int
	// FromCache reports that the artifact was served from the cache
	// without invoking an engine.
	FromCache bool
}

// Succeeded reports whether the call produced a usable artifact.
func (r *CompilationResult) Succeeded() bool {
	return r != nil && len(r.Artifact) > 0
}

// FirstError returns the first error-severity diagnostic, if any.
func (r *CompilationResult) FirstError() (texlog.Diagnostic, bool) {
	if r == nil {
		return texlog.Diagnostic{}, false
	}
	for _, d := range r.Diagnostics {
		if d.Severity == texlog.SevError {
			return d, true
		}
	}
	return texlog.Diagnostic{}, false
}
