package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"ion/internal/diag"
	"ion/internal/driver"
	"ion/internal/ui"
)

type replayOutcome struct {
	results []driver.FileResult
	err     error
}

// syncBuffer собирает вывод предупреждений, пока терминалом владеет TUI.
// Воркеры пишут конкурентно.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.WriteTo(w)
}

func runReplayDirWithUI(ctx context.Context, title, dir string, opts driver.Options, jobs int) ([]driver.FileResult, error) {
	files, err := driver.ListRecordings(dir)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.Event, 256)
	warnings := make(chan diag.WarningEvent, 256)
	outcomeCh := make(chan replayOutcome, 1)

	var warnOut syncBuffer
	optsCopy := opts
	optsCopy.Out = &warnOut
	optsCopy.Progress = driver.ChannelSink{Ch: events}
	optsCopy.Session = diag.Multi(opts.Session, diag.NewChannelSession(warnings))

	go func() {
		results, err := driver.ReplayDir(ctx, dir, optsCopy, jobs)
		outcomeCh <- replayOutcome{results: results, err: err}
		close(events)
		close(warnings)
	}()

	model := ui.NewReplayModel(title, files, events, warnings)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh

	// Отложенные предупреждения уходят на stderr после закрытия TUI
	if _, flushErr := warnOut.WriteTo(os.Stderr); flushErr != nil {
		return outcome.results, flushErr
	}
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
