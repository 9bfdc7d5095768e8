package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pgfplot"
	"pgfplot/internal/figcache"
)

// cacheAppName scopes the on-disk artifact cache.
const cacheAppName = "pgfplot"

// compileSettings carries the flags shared by every compiling command.
type compileSettings struct {
	engine        string
	program       string
	outputDir     string
	keepTmp       bool
	keepOnFailure bool
	noCache       bool
	jobs          int
	ui            string
}

func (s *compileSettings) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.engine, "engine", "pdflatex", "compilation engine (pdflatex|embedded)")
	cmd.Flags().StringVar(&s.program, "program", "pdflatex", "external engine binary")
	cmd.Flags().StringVarP(&s.outputDir, "output-dir", "o", "", "directory for compiled artifacts")
	cmd.Flags().BoolVar(&s.keepTmp, "keep-tmp", false, "keep the working directory of every compilation")
	cmd.Flags().BoolVar(&s.keepOnFailure, "keep-on-failure", false, "keep the working directory when compilation fails")
	cmd.Flags().BoolVar(&s.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().IntVarP(&s.jobs, "jobs", "j", 0, "maximum concurrent compilations (0 = unbounded)")
	cmd.Flags().StringVar(&s.ui, "ui", "auto", "interactive progress (auto|on|off)")
}

func (s *compileSettings) build() (pgfplot.Engine, pgfplot.Options, error) {
	engine, err := pgfplot.ParseEngine(s.engine)
	if err != nil {
		return "", pgfplot.Options{}, err
	}
	opts := pgfplot.Options{
		Program:       s.program,
		OutputDir:     s.outputDir,
		KeepFiles:     s.keepTmp,
		KeepOnFailure: s.keepOnFailure,
		Jobs:          s.jobs,
	}
	if !s.noCache {
		cache, err := figcache.Open(cacheAppName)
		if err != nil {
			return "", pgfplot.Options{}, fmt.Errorf("failed to open artifact cache: %w", err)
		}
		opts.Cache = cache
	}
	return engine, opts, nil
}

var compileSet compileSettings

var compileCmd = &cobra.Command{
	Use:   "compile <manifest>...",
	Short: "Compile figure manifests to PDF",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCompileCmd,
}

func init() {
	compileSet.register(compileCmd)
}

func runCompileCmd(cmd *cobra.Command, args []string) error {
	engine, opts, err := compileSet.build()
	if err != nil {
		return err
	}
	mode, err := readUIMode(compileSet.ui)
	if err != nil {
		return err
	}

	figures := make([]pgfplot.Figure, 0, len(args))
	for _, path := range args {
		fig, err := loadFigure(path)
		if err != nil {
			return err
		}
		figures = append(figures, fig)
	}

	ctx := cmd.Context()
	var results []*pgfplot.CompilationResult
	if shouldUseTUI(mode) {
		results, err = runCompileAllWithUI(ctx, "compiling figures", engine, figures, opts)
	} else {
		results, err = pgfplot.CompileAll(ctx, engine, figures, opts)
	}
	if err != nil {
		return err
	}
	return reportResults(figures, results)
}

// reportResults prints one line per figure and fails when any compilation
// did not produce an artifact.
func reportResults(figures []pgfplot.Figure, results []*pgfplot.CompilationResult) error {
	okColor := color.New(color.FgGreen)
	failColor := color.New(color.FgRed)
	failed := 0

	for i, res := range results {
		name := figures[i].Name
		if res == nil {
			failed++
			failColor.Fprintf(os.Stderr, "  %s: no result\n", name)
			continue
		}
		if res.Succeeded() {
			where := res.ArtifactPath
			if where == "" {
				where = fmt.Sprintf("%d bytes", len(res.Artifact))
			}
			note := ""
			if res.FromCache {
				note = " (cached)"
			}
			okColor.Fprintf(os.Stdout, "  %s: %s%s\n", name, where, note)
			continue
		}
		failed++
		if d, ok := res.FirstError(); ok {
			failColor.Fprintf(os.Stderr, "  %s: %s\n", name, d)
		} else {
			failColor.Fprintf(os.Stderr, "  %s: compilation failed (exit code %d)\n", name, res.ExitCode)
		}
		if res.WorkDir != "" {
			fmt.Fprintf(os.Stderr, "    working directory kept at %s\n", res.WorkDir)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d figures failed", failed, len(results))
	}
	return nil
}
