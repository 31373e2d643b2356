package cli

import (
	"strings"

	"todos-cli/internal/bus"
	"todos-cli/internal/model"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Category commands",
	}
	cmd.AddCommand(newCategoriesListCmd(app))
	cmd.AddCommand(newCategoriesCreateCmd(app))
	cmd.AddCommand(newCategoriesRenameCmd(app))
	cmd.AddCommand(newCategoriesDeleteCmd(app))
	cmd.AddCommand(newCategoriesSortCmd(app))
	cmd.AddCommand(newCategoriesFilterCmd(app))
	return cmd
}

func newCategoriesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List system and user categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			return writeOut(cmd, app, map[string]any{"data": viewCategories(s.org.Categories())})
		},
	}
}

func newCategoriesCreateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user category",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			ch, err := s.request(bus.CreateCategoryRequest, bus.CreateCategory{Name: name})
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.save(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			c, ok := s.org.Category(ch.CategoryID)
			if !ok {
				return writeErr(cmd, errNotFound("category", ch.CategoryID))
			}
			return writeOut(cmd, app, map[string]any{"data": viewCategory(c)})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Category name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCategoriesRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <category>",
		Short: "Rename a user category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			c, err := resolveCategory(s.org, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := s.request(bus.RenameCategoryRequest, bus.RenameCategory{CategoryID: c.ID(), NewName: name}); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.save(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": viewCategory(c)})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New category name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCategoriesDeleteCmd(app *App) *cobra.Command {
	var deleteTodos bool

	cmd := &cobra.Command{
		Use:   "delete <category>",
		Short: "Delete a user category",
		Long: strings.TrimSpace(`
Delete a user category. Its todos stay in the system categories unless
--delete-todos is given, in which case they are deleted too.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			c, err := resolveCategory(s.org, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			removed := 0
			if deleteTodos {
				removed = len(c.Todos())
			}
			if _, err := s.request(bus.DeleteCategoryRequest, bus.DeleteCategory{CategoryID: c.ID(), DeleteTodos: deleteTodos}); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.save(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"id":           c.ID(),
				"deleted":      true,
				"deletedTodos": removed,
			}})
		},
	}

	cmd.Flags().BoolVar(&deleteTodos, "delete-todos", false, "Also delete the todos in the category")
	return cmd
}

func newCategoriesSortCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sort <category> <method>",
		Short: "Set the sorting method of a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.ParseSortMethod(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return setCategoryMethod(cmd, app, args[0], func(id string) (bus.Topic, any) {
				return bus.SortCategoryRequest, bus.SortCategory{CategoryID: id, Method: m}
			})
		},
	}
}

func newCategoriesFilterCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "filter <category> <method>",
		Short: "Set the filter method of a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.ParseFilterMethod(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return setCategoryMethod(cmd, app, args[0], func(id string) (bus.Topic, any) {
				return bus.FilterCategoryRequest, bus.FilterCategory{CategoryID: id, Method: m}
			})
		},
	}
}

func setCategoryMethod(cmd *cobra.Command, app *App, ref string, req func(id string) (bus.Topic, any)) error {
	s, err := openSession(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	c, err := resolveCategory(s.org, ref)
	if err != nil {
		return writeErr(cmd, err)
	}
	topic, payload := req(c.ID())
	if _, err := s.request(topic, payload); err != nil {
		return writeErr(cmd, err)
	}
	if err := s.save(cmd.Context()); err != nil {
		return writeErr(cmd, err)
	}
	view := viewCategory(c)
	return writeOut(cmd, app, map[string]any{"data": map[string]any{
		"category": view,
		"todos":    nonNilTodos(c.VisibleTodos()),
	}})
}
