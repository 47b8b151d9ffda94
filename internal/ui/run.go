package ui

import (
	"context"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// Run starts the Bubble Tea program for m. Width/height of 0 let the
// terminal size drive layout; a partial size is completed from the
// terminal, falling back to 80x24. Extra ProgramOptions (e.g., custom IO)
// are passed through to tea.NewProgram.
func Run(ctx context.Context, m *Model, width, height int, opts ...tea.ProgramOption) error {
	if width > 0 || height > 0 {
		runW, runH := width, height
		if runW <= 0 || runH <= 0 {
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				if runW <= 0 {
					runW = w
				}
				if runH <= 0 {
					runH = h
				}
			}
		}
		if runW <= 0 {
			runW = 80
		}
		if runH <= 0 {
			runH = 24
		}
		m.width, m.height = runW, runH
		opts = append(opts, tea.WithWindowSize(runW, runH))
	}
	opts = append(opts, tea.WithContext(ctx))

	prog := tea.NewProgram(m, opts...)
	_, err := prog.Run()
	m.log.V(1).Info("board closed", "error", err)
	return err
}
