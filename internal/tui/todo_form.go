package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"todos-cli/internal/bus"
	"todos-cli/internal/model"
	"todos-cli/internal/organizer"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldPriority
	fieldDue
	fieldCategory
	formFieldCount
)

var formLabels = [formFieldCount]string{
	fieldTitle:       "Title",
	fieldDescription: "Description",
	fieldPriority:    "Priority (1-3, empty for none)",
	fieldDue:         "Due (YYYY-MM-DD, today, friday, +3d)",
	fieldCategory:    "Category",
}

// todoForm backs the new/edit todo modals.
type todoForm struct {
	title       textinput.Model
	description textarea.Model
	priority    textinput.Model
	due         textinput.Model
	category    textinput.Model

	focus formField
	err   string
}

func newTodoForm() todoForm {
	line := func(placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholder
		in.CharLimit = limit
		return in
	}
	f := todoForm{
		title:    line("Title", 200),
		priority: line("none", 4),
		due:      line("none", 32),
		category: line("none", 80),
	}
	f.description = textarea.New()
	f.description.Placeholder = "Write…"
	f.description.CharLimit = 0
	f.description.ShowLineNumbers = false
	f.description.SetHeight(5)
	return f
}

func (f *todoForm) reset() {
	f.title.SetValue("")
	f.description.SetValue("")
	f.priority.SetValue("")
	f.due.SetValue("")
	f.category.SetValue("")
	f.err = ""
	f.setFocus(fieldTitle)
}

func (f *todoForm) fill(t *model.Todo) {
	f.reset()
	f.title.SetValue(t.Title)
	f.description.SetValue(t.Description)
	if t.Priority != model.PriorityNone {
		f.priority.SetValue(strconv.Itoa(int(t.Priority)))
	}
	f.due.SetValue(t.DueDate)
	f.category.SetValue(t.CategoryName)
	f.title.CursorEnd()
}

func (f *todoForm) setFocus(field formField) tea.Cmd {
	f.focus = field
	f.title.Blur()
	f.description.Blur()
	f.priority.Blur()
	f.due.Blur()
	f.category.Blur()
	switch field {
	case fieldTitle:
		return f.title.Focus()
	case fieldDescription:
		return f.description.Focus()
	case fieldPriority:
		return f.priority.Focus()
	case fieldDue:
		return f.due.Focus()
	case fieldCategory:
		return f.category.Focus()
	}
	return nil
}

func (f *todoForm) next() tea.Cmd { return f.setFocus((f.focus + 1) % formFieldCount) }
func (f *todoForm) prev() tea.Cmd { return f.setFocus((f.focus + formFieldCount - 1) % formFieldCount) }

func (f *todoForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldPriority:
		f.priority, cmd = f.priority.Update(msg)
	case fieldDue:
		f.due, cmd = f.due.Update(msg)
	case fieldCategory:
		f.category, cmd = f.category.Update(msg)
	}
	return cmd
}

// input converts the form into a request payload. The category is looked up
// by name among user categories.
func (f todoForm) input(o *organizer.Organizer, now time.Time) (bus.TodoInput, error) {
	in := bus.TodoInput{
		Title:       strings.TrimSpace(f.title.Value()),
		Description: strings.TrimSpace(f.description.Value()),
	}
	var err error
	if in.Priority, err = model.ParsePriority(f.priority.Value()); err != nil {
		return in, err
	}
	if in.DueDate, err = model.ParseDue(f.due.Value(), now); err != nil {
		return in, err
	}
	name := strings.TrimSpace(f.category.Value())
	if name == "" || strings.EqualFold(name, "none") {
		return in, nil
	}
	for _, c := range o.UserCategories() {
		if strings.EqualFold(c.Name(), name) {
			in.CategoryID = c.ID()
			return in, nil
		}
	}
	return in, fmt.Errorf("%w: %q", organizer.ErrCategoryNotFound, name)
}

func (f todoForm) view(width int, title string) string {
	bodyW := modalBodyWidth(width)
	label := func(field formField) string {
		st := styleMuted()
		if f.focus == field {
			st = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
		}
		return st.Render(formLabels[field])
	}

	f.title.Width = bodyW - 3
	f.priority.Width = bodyW - 3
	f.due.Width = bodyW - 3
	f.category.Width = bodyW - 3
	f.description.SetWidth(bodyW)

	lines := []string{
		label(fieldTitle),
		renderInputLine(bodyW, f.title.View()),
		"",
		label(fieldDescription),
		f.description.View(),
		"",
		label(fieldPriority),
		renderInputLine(bodyW, f.priority.View()),
		label(fieldDue),
		renderInputLine(bodyW, f.due.View()),
		label(fieldCategory),
		renderInputLine(bodyW, f.category.View()),
		"",
	}
	if f.err != "" {
		lines = append(lines, styleError().Render(f.err), "")
	}
	lines = append(lines, styleMuted().Render("tab: next field   ctrl+s: save   esc/ctrl+g: cancel"))
	return renderModalBox(width, title, strings.Join(lines, "\n"))
}
