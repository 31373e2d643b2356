package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"todos-cli/internal/bus"
	"todos-cli/internal/model"
	"todos-cli/internal/organizer"
	"todos-cli/internal/publish"
	"todos-cli/internal/tui"

	"github.com/spf13/cobra"
)

var errSystemCategory = errors.New("todos can only be filed under a user category")

// userCategoryID resolves ref to a user category id; "" and "none" mean no category.
func userCategoryID(org *organizer.Organizer, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.EqualFold(ref, "none") {
		return "", nil
	}
	c, err := resolveCategory(org, ref)
	if err != nil {
		return "", err
	}
	if !c.IsEditable() {
		return "", fmt.Errorf("%w: %s", errSystemCategory, c.Name())
	}
	return c.ID(), nil
}

func newAddCmd(app *App) *cobra.Command {
	var (
		in       bus.TodoInput
		due      string
		category string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a todo",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			if in.DueDate, err = model.ParseDue(due, time.Now()); err != nil {
				return writeErr(cmd, err)
			}
			if in.CategoryID, err = userCategoryID(s.org, category); err != nil {
				return writeErr(cmd, err)
			}
			ch, err := s.request(bus.CreateTodoRequest, bus.CreateTodo{Input: in})
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.save(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			t, ok := s.org.Todo(ch.TodoID)
			if !ok {
				return writeErr(cmd, errNotFound("todo", ch.TodoID))
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Todo title")
	cmd.Flags().StringVar(&in.Description, "description", "", "Description (markdown)")
	cmd.Flags().Var(priorityFlag{&in.Priority}, "priority", "Priority (0-3, 1 is highest)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, today, tomorrow, weekday, +Nd)")
	cmd.Flags().StringVar(&category, "category", "", "User category id or name")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var (
		category string
		sortBy   model.SortMethod
		filterBy model.FilterMethod
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the todos of a category",
		Long: strings.TrimSpace(`
List the todos of a category (default: All todos) in its current order.
--sort and --filter apply to this listing only; use "categories sort" and
"categories filter" to change the stored methods.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			c, err := resolveCategory(s.org, category)
			if err != nil {
				return writeErr(cmd, err)
			}
			if sortBy != "" {
				if err := c.SetSortingMethod(sortBy); err != nil {
					return writeErr(cmd, err)
				}
			}
			if filterBy != "" {
				if err := c.SetFilterMethod(filterBy); err != nil {
					return writeErr(cmd, err)
				}
			}
			c.Refresh()

			todos := c.VisibleTodos()
			if all {
				todos = c.Todos()
			}
			return writeOut(cmd, app, map[string]any{
				"data": nonNilTodos(todos),
				"meta": viewCategory(c),
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", model.CategoryAllID, "Category id or name")
	cmd.Flags().Var(sortFlag{&sortBy}, "sort", sortUsage())
	cmd.Flags().Var(filterFlag{&filterBy}, "filter", filterUsage())
	cmd.Flags().BoolVar(&all, "all", false, "Include todos hidden by the filter")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var (
		render bool
		width  int
	)

	cmd := &cobra.Command{
		Use:   "show <todo>",
		Short: "Show a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			t, err := resolveTodo(s.org, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if render {
				md := publish.RenderTodoMarkdown(t, publish.RenderOptions{Width: width})
				_, err := fmt.Fprintln(cmd.OutOrStdout(), tui.RenderMarkdown(md, width))
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "Render as styled markdown instead of data")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for --render")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var (
		title, description, due, category string
		priority                          model.Priority
	)

	cmd := &cobra.Command{
		Use:   "edit <todo>",
		Short: "Edit a todo (only the given flags change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			t, err := resolveTodo(s.org, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			in := bus.TodoInput{
				Title:       t.Title,
				Description: t.Description,
				Priority:    t.Priority,
				DueDate:     t.DueDate,
				CategoryID:  t.CategoryID,
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = title
			}
			if flags.Changed("description") {
				in.Description = description
			}
			if flags.Changed("priority") {
				in.Priority = priority
			}
			if flags.Changed("due") {
				if in.DueDate, err = model.ParseDue(due, time.Now()); err != nil {
					return writeErr(cmd, err)
				}
			}
			if flags.Changed("category") {
				if in.CategoryID, err = userCategoryID(s.org, category); err != nil {
					return writeErr(cmd, err)
				}
			}

			if _, err := s.request(bus.EditTodoRequest, bus.EditTodo{TodoID: t.ID(), Input: in}); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.save(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description (markdown)")
	cmd.Flags().Var(priorityFlag{&priority}, "priority", "New priority (0-3)")
	cmd.Flags().StringVar(&due, "due", "", "New due date (\"none\" clears it)")
	cmd.Flags().StringVar(&category, "category", "", "New user category (\"none\" clears it)")
	return cmd
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <todo>",
		Short: "Toggle the completed status of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			t, err := resolveTodo(s.org, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := s.request(bus.ToggleTodoRequest, bus.ToggleTodo{TodoID: t.ID()}); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.save(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <todo>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			t, err := resolveTodo(s.org, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := s.request(bus.DeleteTodoRequest, bus.DeleteTodo{TodoID: t.ID()}); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.save(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": t.ID(), "deleted": true}})
		},
	}
}

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find todos by title or description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			return writeOut(cmd, app, map[string]any{"data": nonNilTodos(s.org.Search(strings.Join(args, " ")))})
		},
	}
}
