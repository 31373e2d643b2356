package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

const (
	headerLines   = 2 // title bar + blank line
	footerLines   = 1
	sidebarW      = 28
	paneGapW      = 2
	contentHeadH  = 3 // category title, sort/filter line, blank line
	minDetailsW   = 90
	detailsRatio  = 2 // details take 1/detailsRatio of the content width
	maxModalW     = 72
	modalMinWidth = 30
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and height
// lines tall. This makes split-pane rendering stable when using lipgloss.JoinHorizontal.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")

	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i := range lines {
		lines[i] = fitLine(lines[i], width)
	}

	return strings.Join(lines, "\n")
}

// fitLine pads or cuts ln to exactly width columns, marking cuts with an ellipsis.
func fitLine(ln string, width int) string {
	// Bound StringWidth work on huge lines; they are wider than any pane anyway.
	if width > 0 && len(ln) > 8192 {
		ln = xansi.Cut(ln, 0, width)
	}
	w := xansi.StringWidth(ln)
	if w > width {
		switch {
		case width <= 0:
			ln = ""
		case width == 1:
			ln = xansi.Cut(ln, 0, 1)
		default:
			ln = xansi.Cut(ln, 0, width-1) + "…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// rect is a screen region in cells, used for mouse hit testing.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return r.w > 0 && r.h > 0 && x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// bodyHeight is the number of rows between the header and the footer.
func (m appModel) bodyHeight() int {
	h := m.height - headerLines - footerLines
	if h < 1 {
		h = 1
	}
	return h
}

func (m appModel) contentX() int { return sidebarW + paneGapW }

// contentWidth is the width of the category content column (todos + details).
func (m appModel) contentWidth() int {
	w := m.width - m.contentX()
	if w < 20 {
		w = 20
	}
	return w
}

func (m appModel) detailsVisible() bool {
	return m.showDetails && m.contentWidth() >= minDetailsW
}

// todosWidth is the width of the todo list column.
func (m appModel) todosWidth() int {
	w := m.contentWidth()
	if m.detailsVisible() {
		w = w - w/detailsRatio - paneGapW
	}
	return w
}

func (m appModel) detailsWidth() int {
	return m.contentWidth() - m.todosWidth() - paneGapW
}

func (m appModel) todosListHeight() int {
	h := m.bodyHeight() - contentHeadH
	if h < 1 {
		h = 1
	}
	return h
}
