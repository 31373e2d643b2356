package cli

import (
	"errors"
	"strings"

	"todos-cli/internal/model"
	"todos-cli/internal/publish"
	"todos-cli/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		toDir     string
		category  string
		width     int
		all       bool
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export categories as Markdown (derived, not a backup)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			toDir = strings.TrimSpace(toDir)
			if toDir == "" {
				return writeErr(cmd, errors.New("missing --to"))
			}
			cats := s.org.Categories()
			if strings.TrimSpace(category) != "" {
				c, err := resolveCategory(s.org, category)
				if err != nil {
					return writeErr(cmd, err)
				}
				cats = []model.CategoryLike{c}
			}
			res, err := publish.WriteCategories(cats, toDir, publish.WriteOptions{
				RenderOptions: publish.RenderOptions{Width: width, IncludeHidden: all},
				Overwrite:     overwrite,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	cmd.Flags().StringVar(&category, "category", "", "Only export this category")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for descriptions")
	cmd.Flags().BoolVar(&all, "all", false, "Include todos hidden by filters")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	return cmd
}

func newBackupCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write the workspace state to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			to = strings.TrimSpace(to)
			if to == "" {
				return writeErr(cmd, errors.New("missing --to"))
			}
			st := s.org.Export()
			if err := store.WriteBackup(to, st); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":       to,
				"categories": len(st.Categories),
				"todos":      len(st.Todos),
			}})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Backup file path")
	return cmd
}

func newRestoreCmd(app *App) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace the workspace state with a backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			from = strings.TrimSpace(from)
			if from == "" {
				return writeErr(cmd, errors.New("missing --from"))
			}
			st, err := store.ReadBackup(from)
			if err != nil {
				return writeErr(cmd, err)
			}
			s.org.Import(st)
			if err := s.save(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"categories": len(s.org.Categories()),
				"todos":      len(s.org.Todos()),
			}})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Backup file path")
	return cmd
}

func newWorkspacesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"workspace"},
		Short:   "Workspace commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List workspaces under the config dir",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := store.ListWorkspaces()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": names})
		},
	})
	return cmd
}
