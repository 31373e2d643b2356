package tui

import (
	"strings"

	"todos-cli/internal/bus"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type renameOutcome int

const (
	renamePending renameOutcome = iota
	renameApplied
	renameDiscarded
)

// renameInput is the in-place editor that replaces a category label in the
// sidebar or the content header. While it is open it holds a focus trap and
// four listeners; every way of closing it goes through teardown, which
// releases them exactly once.
type renameInput struct {
	bus        *bus.Bus
	categoryID string
	location   bus.RenameLocation
	original   string

	input textinput.Model
	// zone is where the input is drawn; presses outside it count as outside clicks.
	zone rect

	events  *dispatcher
	trap    *focusTrap
	handles []*listener

	done    bool
	outcome renameOutcome
	// err is the organizer's answer to the rename request.
	err error
}

func newRenameInput(b *bus.Bus, req bus.RenderRenameInput, name string) *renameInput {
	r := &renameInput{
		bus:        b,
		categoryID: req.CategoryID,
		location:   req.Location,
		original:   name,
		events:     newDispatcher(),
	}
	r.input = textinput.New()
	r.input.Prompt = ""
	r.input.CharLimit = 80
	r.input.SetValue(name)

	r.trap = newFocusTrap(func() { r.input.Focus() }, func() { r.input.Blur() })
	r.handles = []*listener{
		r.events.listen(targetInput, eventFocus, r.onInputFocus),
		r.events.listen(targetInput, eventMouseDown, func(ev *uiEvent) { ev.stopPropagation() }),
		r.events.listen(targetDocument, eventMouseDown, r.onDocumentMouseDown),
		r.events.listen(targetDocument, eventKeyDown, r.onDocumentKeyDown),
	}
	_ = r.trap.activate()
	r.events.dispatch(targetInput, &uiEvent{kind: eventFocus})
	return r
}

func (r *renameInput) onInputFocus(*uiEvent) {
	r.input.CursorEnd()
}

func (r *renameInput) onDocumentMouseDown(*uiEvent) {
	r.commitOrDiscard()
}

func (r *renameInput) onDocumentKeyDown(ev *uiEvent) {
	switch ev.key.String() {
	case "enter":
		ev.handled = true
		r.commitOrDiscard()
	case "esc", "ctrl+g":
		ev.handled = true
		r.discard()
	}
}

// Update routes terminal input through the widget's listeners. Keys not
// claimed by a listener edit the value.
func (r *renameInput) Update(msg tea.Msg) tea.Cmd {
	if r.done {
		return nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Keys originate at the focused input and bubble to the document.
		ev := &uiEvent{kind: eventKeyDown, key: msg}
		r.events.dispatch(targetInput, ev)
		if ev.handled || r.done {
			return nil
		}
		var cmd tea.Cmd
		r.input, cmd = r.input.Update(msg)
		return cmd

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		ev := &uiEvent{kind: eventMouseDown, mouse: msg}
		if r.zone.contains(msg.X, msg.Y) {
			r.events.dispatch(targetInput, ev)
			if !r.done {
				r.events.dispatch(targetInput, &uiEvent{kind: eventFocus})
			}
			return nil
		}
		r.events.dispatch(targetDocument, ev)

	case tea.BlurMsg:
		// The terminal lost focus.
		r.discard()
	}
	return nil
}

func (r *renameInput) commitOrDiscard() {
	if strings.TrimSpace(r.input.Value()) == "" {
		r.discard()
		return
	}
	r.apply()
}

// apply tears the widget down and then asks the organizer to rename.
func (r *renameInput) apply() {
	name := strings.TrimSpace(r.input.Value())
	if !r.teardown() {
		return
	}
	r.outcome = renameApplied
	r.err = r.bus.Publish(bus.RenameCategoryRequest, bus.RenameCategory{CategoryID: r.categoryID, NewName: name})
}

func (r *renameInput) discard() {
	if r.teardown() {
		r.outcome = renameDiscarded
	}
}

// remove closes the widget from outside, e.g. when its category is deleted.
func (r *renameInput) remove() { r.discard() }

// teardown releases the focus trap and all listeners. It returns false when
// the widget was already torn down.
func (r *renameInput) teardown() bool {
	if r.done {
		return false
	}
	r.done = true
	r.trap.deactivate()
	for _, l := range r.handles {
		l.remove()
	}
	r.handles = nil
	return true
}

func (r *renameInput) Done() bool { return r.done }

// View renders the input as one line of exactly width columns.
func (r *renameInput) View(width int) string {
	r.input.Width = max(width-3, 1)
	return renderInputLine(width, r.input.View())
}
