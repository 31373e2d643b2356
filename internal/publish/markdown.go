package publish

import (
	"bytes"
	"fmt"
	"strings"

	"todos-cli/internal/model"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

const defaultWidth = 80

type RenderOptions struct {
	// Width wraps descriptions; 0 means 80.
	Width int
	// IncludeHidden also lists todos the category filter hides.
	IncludeHidden bool
}

func (o RenderOptions) width() int {
	if o.Width <= 0 {
		return defaultWidth
	}
	return o.Width
}

// RenderTodoMarkdown renders one todo as a standalone document.
func RenderTodoMarkdown(t *model.Todo, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + strings.TrimSpace(t.Title))
	writeLn("")
	writeLn("- ID: " + t.ID())
	writeLn("- Status: " + statusLabel(t))
	if t.Priority != model.PriorityNone {
		writeLn(fmt.Sprintf("- Priority: %d", t.Priority))
	}
	if t.DueDate != "" {
		due := t.DueDate
		if t.MiniDueDate != "" {
			due += " (" + t.MiniDueDate + ")"
		}
		writeLn("- Due: " + due)
	}
	if t.CategoryName != "" {
		writeLn("- Category: " + t.CategoryName)
	}
	writeLn("- Created: " + t.CreationDate().UTC().Format("2006-01-02 15:04"))

	if d := strings.TrimSpace(t.Description); d != "" {
		writeLn("")
		writeLn("## Description")
		writeLn("")
		writeLn(ReflowParagraphs(d, opt.width()))
	}
	return buf.String()
}

// RenderCategoryMarkdown renders a category as a task list in its current order.
func RenderCategoryMarkdown(c model.CategoryLike, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + c.Name())
	writeLn("")
	writeLn(fmt.Sprintf("Sorted by %s, filter: %s.", c.SortingMethod().Label(), c.FilterMethod().Label()))
	writeLn("")

	c.Refresh()
	todos := c.VisibleTodos()
	if opt.IncludeHidden {
		todos = c.Todos()
	}
	if len(todos) == 0 {
		writeLn("_No todos._")
		return buf.String()
	}
	for _, t := range todos {
		writeLn(todoLine(t))
		if d := strings.TrimSpace(t.Description); d != "" {
			body := ReflowParagraphs(d, opt.width()-6)
			writeLn(indent.String(body, 6))
		}
	}
	return buf.String()
}

func todoLine(t *model.Todo) string {
	box := "[ ]"
	if t.CompletedStatus {
		box = "[x]"
	}
	var meta []string
	if t.Priority != model.PriorityNone {
		meta = append(meta, fmt.Sprintf("P%d", t.Priority))
	}
	if t.MiniDueDate != "" {
		meta = append(meta, "due "+t.MiniDueDate)
	}
	if t.OverdueStatus {
		meta = append(meta, "overdue")
	}
	line := "- " + box + " " + strings.TrimSpace(t.Title)
	if len(meta) > 0 {
		line += " (" + strings.Join(meta, ", ") + ")"
	}
	return line
}

func statusLabel(t *model.Todo) string {
	switch {
	case t.CompletedStatus:
		return "done"
	case t.OverdueStatus:
		return "overdue"
	default:
		return "open"
	}
}

// ReflowParagraphs wraps each blank-line separated paragraph to width.
func ReflowParagraphs(value string, width int) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	var out []string
	for _, p := range strings.Split(value, "\n\n") {
		p = strings.Join(strings.Fields(p), " ")
		if p == "" {
			continue
		}
		out = append(out, wordwrap.String(p, width))
	}
	return strings.Join(out, "\n\n")
}
