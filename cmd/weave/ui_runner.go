package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"weave/internal/pipeline"
	"weave/internal/ui"
)

type renderOutcome struct {
	result *pipeline.RenderResult
	err    error
}

func runRenderWithUI(ctx context.Context, title string, files []string, req *pipeline.RenderRequest) (*pipeline.RenderResult, error) {
	if req == nil {
		return nil, fmt.Errorf("missing render request")
	}
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan renderOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := pipeline.Render(ctx, &reqCopy)
		outcomeCh <- renderOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
