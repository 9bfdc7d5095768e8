package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pgfplot"
	"pgfplot/internal/ui"
)

type compileOutcome struct {
	results []*pgfplot.CompilationResult
	err     error
}

func runCompileAllWithUI(ctx context.Context, title string, engine pgfplot.Engine, figures []pgfplot.Figure, opts pgfplot.Options) ([]*pgfplot.CompilationResult, error) {
	events := make(chan pgfplot.Event, 256)
	outcomeCh := make(chan compileOutcome, 1)

	go func() {
		uiOpts := opts
		uiOpts.Progress = pgfplot.ChannelSink{Ch: events}
		results, err := pgfplot.CompileAll(ctx, engine, figures, uiOpts)
		outcomeCh <- compileOutcome{results: results, err: err}
		close(events)
	}()

	names := make([]string, 0, len(figures))
	for _, fig := range figures {
		names = append(names, fig.Name)
	}
	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
