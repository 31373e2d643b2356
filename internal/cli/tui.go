package cli

import (
	"todos-cli/internal/tui"

	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, app *App) error {
	s, err := openSession(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	return tui.Run(cmd.Context(), tui.Options{
		Organizer:     s.org,
		Store:         s.store,
		Logger:        s.logger,
		ShowCompleted: s.cfg.TUI.ShowCompleted,
	})
}
