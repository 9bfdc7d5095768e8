package pgfplot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"pgfplot/internal/embedtex"
	"pgfplot/internal/figcache"
	"pgfplot/internal/texlog"
)

// Compile renders the picture as a standalone document and compiles it with
// the selected engine. The returned error covers environment problems
// (working directory, file I/O); document and backend problems are reported
// inside the result.
func (p *Picture) Compile(ctx context.Context, engine Engine, opts Options) (*CompilationResult, error) {
	opts = opts.withDefaults()
	start := time.Now()
	emitStage(opts.Progress, opts.Figure, StageRender, StatusWorking, nil, 0)
	doc := p.StandaloneString()
	emitStage(opts.Progress, opts.Figure, StageRender, StatusDone, nil, time.Since(start))
	return CompileDocument(ctx, engine, doc, opts)
}

// CompileDocument compiles an already rendered document. Each call owns a
// uniquely named working directory which is removed on every exit path
// unless the caller asked for files to be kept.
func CompileDocument(ctx context.Context, engine Engine, doc string, opts Options) (result *CompilationResult, err error) {
	opts = opts.withDefaults()
	result = &CompilationResult{Engine: engine, JobName: opts.JobName}

	if opts.Cache != nil {
		key := figcache.KeyFor(string(engine), doc)
		artifact, ok, cacheErr := opts.Cache.Get(key)
		if cacheErr != nil {
			return result, fmt.Errorf("failed to read artifact cache: %w", cacheErr)
		}
		if ok {
			result.Artifact = artifact
			result.FromCache = true
			if err := persistArtifact(result, opts); err != nil {
				return result, err
			}
			emitStage(opts.Progress, opts.Figure, StageCollect, StatusDone, nil, 0)
			return result, nil
		}
	}

	prepareStart := time.Now()
	emitStage(opts.Progress, opts.Figure, StagePrepare, StatusWorking, nil, 0)
	workDir, err := os.MkdirTemp("", "pgfplot-")
	if err != nil {
		emitStage(opts.Progress, opts.Figure, StagePrepare, StatusError, err, 0)
		return result, fmt.Errorf("failed to create working directory: %w", err)
	}
	keep := false
	defer func() {
		if keep {
			result.WorkDir = workDir
			return
		}
		if removeErr := os.RemoveAll(workDir); removeErr != nil && err == nil {
			err = fmt.Errorf("failed to clean working directory: %w", removeErr)
		}
	}()

	srcName := opts.JobName + ".tex"
	if writeErr := os.WriteFile(filepath.Join(workDir, srcName), []byte(doc), 0o600); writeErr != nil {
		emitStage(opts.Progress, opts.Figure, StagePrepare, StatusError, writeErr, 0)
		return result, fmt.Errorf("failed to write document source: %w", writeErr)
	}
	emitStage(opts.Progress, opts.Figure, StagePrepare, StatusDone, nil, time.Since(prepareStart))

	compileStart := time.Now()
	emitStage(opts.Progress, opts.Figure, StageCompile, StatusWorking, nil, 0)
	switch engine {
	case EnginePDFLaTeX:
		err = runExternal(ctx, workDir, srcName, opts, result)
	case EngineEmbedded:
		err = runEmbedded(workDir, doc, opts, result)
	default:
		err = fmt.Errorf("unsupported engine: %s", engine)
	}
	if err != nil {
		emitStage(opts.Progress, opts.Figure, StageCompile, StatusError, err, 0)
		return result, err
	}
	if !result.Succeeded() {
		emitStage(opts.Progress, opts.Figure, StageCompile, StatusError, errors.New("compilation failed"), time.Since(compileStart))
		keep = opts.KeepFiles || opts.KeepOnFailure
		return result, nil
	}
	emitStage(opts.Progress, opts.Figure, StageCompile, StatusDone, nil, time.Since(compileStart))

	if err := persistArtifact(result, opts); err != nil {
		return result, err
	}
	if opts.Cache != nil {
		key := figcache.KeyFor(string(engine), doc)
		if cacheErr := opts.Cache.Put(key, string(engine), opts.JobName, result.Artifact); cacheErr != nil {
			return result, fmt.Errorf("failed to update artifact cache: %w", cacheErr)
		}
	}
	keep = opts.KeepFiles
	if keep && result.ArtifactPath == "" {
		result.ArtifactPath = filepath.Join(workDir, opts.JobName+".pdf")
	}
	emitStage(opts.Progress, opts.Figure, StageCollect, StatusDone, nil, 0)
	return result, nil
}

// runExternal resolves and invokes the external program inside the working
// directory and classifies the outcome by its exit status. Resolution and
// processing failures land in the result; only environment problems return
// an error.
func runExternal(ctx context.Context, workDir, srcName string, opts Options, result *CompilationResult) error {
	program, lookErr := exec.LookPath(opts.Program)
	if lookErr != nil {
		result.ExitCode = -1
		result.Log = lookErr.Error()
		result.Diagnostics = []texlog.Diagnostic{{
			Severity: texlog.SevError,
			Message:  fmt.Sprintf("program %q not found or not executable", opts.Program),
		}}
		return nil
	}

	cmd := exec.CommandContext(ctx, program,
		"-interaction=batchmode",
		"-halt-on-error",
		"-jobname="+opts.JobName,
		srcName,
	)
	cmd.Dir = workDir
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	runErr := cmd.Run()

	// batchmode writes the full report to <job>.log; terminal output is a
	// fallback when the log is missing.
	logBytes, readErr := os.ReadFile(filepath.Join(workDir, opts.JobName+".log"))
	if readErr != nil {
		logBytes = output.Bytes()
	}
	result.Log = texlog.Decode(logBytes)
	result.Diagnostics = texlog.Parse(result.Log)

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return nil
		}
		return fmt.Errorf("failed to run %s: %w", opts.Program, runErr)
	}

	artifact, readErr := os.ReadFile(filepath.Join(workDir, opts.JobName+".pdf"))
	if readErr != nil {
		return fmt.Errorf("failed to read artifact: %w", readErr)
	}
	result.Artifact = artifact
	return nil
}

// runEmbedded invokes the in-process renderer. The artifact is also written
// into the working directory so both engines leave the same layout behind.
func runEmbedded(workDir, doc string, opts Options, result *CompilationResult) error {
	artifact, diags, err := embedtex.Compile(doc)
	result.Diagnostics = diags
	result.Log = diagnosticsLog(diags)
	if err != nil {
		return fmt.Errorf("embedded engine: %w", err)
	}
	if artifact == nil {
		return nil
	}
	if writeErr := os.WriteFile(filepath.Join(workDir, opts.JobName+".pdf"), artifact, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write artifact: %w", writeErr)
	}
	result.Artifact = artifact
	return nil
}

func diagnosticsLog(diags []texlog.Diagnostic) string {
	var sb bytes.Buffer
	for _, d := range diags {
		sb.WriteString(d.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// persistArtifact copies the primary output into OutputDir, when requested.
func persistArtifact(result *CompilationResult, opts Options) error {
	if opts.OutputDir == "" || !result.Succeeded() {
		return nil
	}
	if err := os.MkdirAll(opts.OutputDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(opts.OutputDir, opts.JobName+".pdf")
	if err := os.WriteFile(path, result.Artifact, 0o600); err != nil {
		return fmt.Errorf("failed to write artifact %q: %w", path, err)
	}
	result.ArtifactPath = path
	return nil
}

// Figure pairs a picture with the name used for its artifacts and progress
// events.
type Figure struct {
	Name    string
	Picture *Picture
}

// CompileAll compiles figures concurrently. Each compilation owns its own
// working directory, so calls are independent and need no locking. Results
// are returned in input order; the first environment error cancels the rest.
func CompileAll(ctx context.Context, engine Engine, figures []Figure, opts Options) ([]*CompilationResult, error) {
	opts = opts.withDefaults()
	if opts.Progress != nil {
		for i, fig := range figures {
			emitStage(opts.Progress, figureName(fig, opts, i), StageRender, StatusQueued, nil, 0)
		}
	}

	results := make([]*CompilationResult, len(figures))
	g, ctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for i, fig := range figures {
		g.Go(func() error {
			figOpts := opts
			figOpts.JobName = figureName(fig, opts, i)
			figOpts.Figure = figOpts.JobName
			res, err := fig.Picture.Compile(ctx, engine, figOpts)
			results[i] = res
			return err
		})
	}
	err := g.Wait()
	return results, err
}

func figureName(fig Figure, opts Options, index int) string {
	if fig.Name != "" {
		return fig.Name
	}
	return opts.JobName + "-" + strconv.Itoa(index+1)
}

// ShowPDF compiles the picture and opens the artifact with the environment's
// default viewer. The artifact is persisted to a temporary file when no
// OutputDir was configured.
func (p *Picture) ShowPDF(ctx context.Context, engine Engine, opts Options) error {
	result, err := p.Compile(ctx, engine, opts)
	if err != nil {
		return err
	}
	if !result.Succeeded() {
		if d, ok := result.FirstError(); ok {
			return fmt.Errorf("compilation failed: %s", d)
		}
		return errors.New("compilation failed")
	}

	path := result.ArtifactPath
	if path == "" {
		f, err := os.CreateTemp("", "pgfplot-*.pdf")
		if err != nil {
			return fmt.Errorf("failed to persist artifact: %w", err)
		}
		if _, err := f.Write(result.Artifact); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to persist artifact: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to persist artifact: %w", err)
		}
		path = f.Name()
	}
	return openViewer(path)
}

// openViewer hands the file to the platform's default-application mechanism.
func openViewer(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open viewer: %w", err)
	}
	return nil
}
