package tui

import (
	"context"

	"todos-cli/internal/organizer"
	"todos-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Options struct {
	// Organizer must already be loaded and attached to its bus.
	Organizer *organizer.Organizer
	// Store receives a full save after every state change.
	Store  store.Store
	Logger *log.Logger

	ShowCompleted bool
}

func Run(ctx context.Context, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()

	m := newAppModel(ctx, opts)
	defer m.detach()

	res, err := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	).Run()
	if final, ok := res.(appModel); ok {
		// Best-effort: remember where the user was for next launch.
		if serr := final.store.SaveTUIState(final.tuiState()); serr != nil {
			final.logger.Warn("save tui state", "err", serr)
		}
	}
	return err
}
