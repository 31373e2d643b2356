package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"todos-cli/internal/bus"
	"todos-cli/internal/publish"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if box := m.modalView(); box != "" {
		return placeModal(m.width, m.height, box)
	}

	header := m.headerView()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		normalizePane(m.sidebarView(), sidebarW, m.bodyHeight()),
		strings.Repeat(" ", paneGapW),
		normalizePane(m.contentView(), m.contentWidth(), m.bodyHeight()),
	)
	footer := fitLine(m.footerView(), m.width)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m appModel) headerView() string {
	title := styleHeading().Render(" Todos")
	ws := styleChrome().Render(filepath.Base(m.store.Dir) + " ")
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(ws)
	if gap < 1 {
		gap = 1
	}
	return fitLine(title+strings.Repeat(" ", gap)+ws, m.width) + "\n"
}

func (m appModel) sidebarView() string {
	v := m.categoriesList.View()
	if m.rename == nil || m.rename.location != bus.RenameInSidebar {
		return v
	}
	// Swap the category's row for the input, at the row the zone was computed for.
	lines := strings.Split(v, "\n")
	row := m.rename.zone.y - headerLines
	if row >= 0 && row < len(lines) {
		lines[row] = m.rename.View(sidebarW)
	}
	return strings.Join(lines, "\n")
}

func (m appModel) contentView() string {
	todosW := m.todosWidth()
	cat := m.currentCategory()

	var title, meta string
	switch {
	case m.rename != nil && m.rename.location == bus.RenameInContentHeader:
		title = m.rename.View(todosW)
		meta = styleMuted().Render("enter: apply   esc: cancel")
	case m.searchQuery != "":
		title = styleHeading().Render(fmt.Sprintf("Search: %s", m.searchQuery))
		meta = styleMuted().Render("esc: back to " + cat.Name())
	default:
		title = styleHeading().Render(cat.Name())
		meta = styleMuted().Render(categoryMeta(cat.SortingMethod().Label(), cat.FilterMethod().Label(), len(cat.FilteredOutTodos())))
	}

	list := m.todosList.View()
	if len(m.todosList.Items()) == 0 {
		list = styleMuted().Render("No todos here. Press n to add one.")
	}
	col := strings.Join([]string{title, meta, "", list}, "\n")
	col = normalizePane(col, todosW, m.bodyHeight())

	if !m.detailsVisible() {
		return col
	}
	detailsW := m.detailsWidth()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		col,
		strings.Repeat(" ", paneGapW),
		normalizePane(m.detailsView(detailsW), detailsW, m.bodyHeight()),
	)
}

func categoryMeta(sortLabel, filterLabel string, hidden int) string {
	s := "Sorted by " + strings.ToLower(sortLabel) + " · " + filterLabel
	if hidden > 0 {
		s += fmt.Sprintf(" · %d hidden", hidden)
	}
	return s
}

func (m appModel) detailsView(width int) string {
	t := m.selectedTodo()
	if t == nil {
		return styleMuted().Render("No todo selected.")
	}
	md := publish.RenderTodoMarkdown(t, publish.RenderOptions{Width: width})
	return renderMarkdownNoMargin(md, width)
}

func (m appModel) footerView() string {
	if m.minibufferText != "" {
		if m.minibufferErr {
			return " " + styleError().Render(m.minibufferText)
		}
		return " " + m.minibufferText
	}
	if m.pane == paneCategories {
		return " " + styleMuted().Render(m.keys.categoriesHelp())
	}
	return " " + styleMuted().Render(m.keys.todosHelp())
}

func (m appModel) modalView() string {
	switch m.modal {
	case modalNewTodo:
		return m.form.view(m.width, "New todo")
	case modalEditTodo:
		return m.form.view(m.width, "Edit todo")
	case modalNewCategory, modalSearch:
		title := "New category"
		if m.modal == modalSearch {
			title = "Search"
		}
		bodyW := modalBodyWidth(m.width)
		m.input.Width = bodyW - 3
		lines := []string{renderInputLine(bodyW, m.input.View()), ""}
		if m.modalErr != "" {
			lines = append(lines, styleError().Render(m.modalErr), "")
		}
		lines = append(lines, styleMuted().Render("enter: save   esc/ctrl+g: cancel"))
		return renderModalBox(m.width, title, strings.Join(lines, "\n"))
	case modalConfirmDeleteTodo:
		name := m.modalForID
		if t, ok := m.org.Todo(m.modalForID); ok {
			name = t.Title
		}
		return renderConfirmModal(m.width, "Delete todo", fmt.Sprintf("Delete %q?", name), "Delete", "Cancel", m.confirmFocus)
	case modalConfirmDeleteCategory:
		name := m.modalForID
		n := 0
		if c, ok := m.org.Category(m.modalForID); ok {
			name = c.Name()
			n = len(c.Todos())
		}
		box := "[ ]"
		if m.deleteTodos {
			box = "[x]"
		}
		body := strings.Join([]string{
			fmt.Sprintf("Delete category %q?", name),
			"",
			fmt.Sprintf("%s also delete its %d todo(s)   (t: toggle)", box, n),
		}, "\n")
		return renderConfirmModal(m.width, "Delete category", body, "Delete", "Cancel", m.confirmFocus)
	}
	return ""
}
