package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// categoryDelegate renders one sidebar row: name on the left, todo count on the right.
// The selection is only highlighted strongly while the sidebar has focus.
type categoryDelegate struct {
	active *bool
}

func (d categoryDelegate) Height() int                             { return 1 }
func (d categoryDelegate) Spacing() int                            { return 0 }
func (d categoryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d categoryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(categoryItem)
	contentW := m.Width()
	if !ok || contentW < 4 {
		return
	}

	count := fmt.Sprintf("%d", it.count)
	name := " " + it.cat.Name()
	if !it.cat.IsEditable() {
		name = " " + styleChrome().Render(it.cat.Name())
	}
	nameW := contentW - xansi.StringWidth(count) - 2
	line := fitLine(name, nameW) + " " + count + " "

	style := lipgloss.NewStyle()
	if index == m.Index() {
		style = style.Foreground(colorSelectedFg).Background(colorSelectedBg)
		if d.active != nil && *d.active {
			style = style.Bold(true)
		}
	}
	fmt.Fprint(w, style.Render(line))
}

// todoDelegate renders a todo as a single line:
// "[x] title        category  P1  friday"
type todoDelegate struct {
	active *bool
}

func (d todoDelegate) Height() int                             { return 1 }
func (d todoDelegate) Spacing() int                            { return 0 }
func (d todoDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d todoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	contentW := m.Width()
	if !ok || contentW < 8 {
		return
	}
	t := it.todo

	box := "[ ]"
	if t.CompletedStatus {
		box = "[x]"
	}

	var meta []string
	if it.showCategory && t.CategoryName != "" {
		meta = append(meta, styleChrome().Render(t.CategoryName))
	}
	if t.Priority != 0 {
		meta = append(meta, lipgloss.NewStyle().Foreground(priorityColor(int(t.Priority))).Render(fmt.Sprintf("P%d", t.Priority)))
	}
	if t.MiniDueDate != "" {
		due := styleMuted().Render(t.MiniDueDate)
		if t.OverdueStatus {
			due = lipgloss.NewStyle().Foreground(colorOverdue).Render(t.MiniDueDate)
		}
		meta = append(meta, due)
	}
	right := strings.Join(meta, "  ")
	if right != "" {
		right += " "
	}

	title := t.Title
	if t.HasAdditionalInfo() && t.Description != "" {
		title += " " + styleMuted().Render("…")
	}
	titleStyle := lipgloss.NewStyle()
	if t.CompletedStatus {
		titleStyle = faintIfDark(titleStyle.Strikethrough(true).Foreground(colorMuted))
	}

	leftW := contentW - xansi.StringWidth(right)
	left := fitLine(" "+box+" "+titleStyle.Render(title), leftW)
	line := left + right

	if index == m.Index() {
		bg := lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
		if d.active != nil && *d.active {
			bg = bg.Bold(true)
		}
		line = bg.Render(xansi.Strip(line))
	}
	fmt.Fprint(w, line)
}
