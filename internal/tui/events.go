package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// eventTarget is where a listener is registered. Events dispatched to
// targetInput bubble up to targetDocument unless a listener stops them.
type eventTarget int

const (
	targetInput eventTarget = iota
	targetDocument
)

type eventKind int

const (
	eventFocus eventKind = iota
	eventMouseDown
	eventKeyDown
)

type uiEvent struct {
	kind  eventKind
	key   tea.KeyMsg
	mouse tea.MouseMsg

	stopped bool
	// handled marks a key as consumed so it is not forwarded to the input.
	handled bool
}

func (e *uiEvent) stopPropagation() { e.stopped = true }

type listener struct {
	d      *dispatcher
	target eventTarget
	kind   eventKind
	fn     func(*uiEvent)
	gone   bool
}

// dispatcher routes terminal input to registered listeners. It stands in for
// element and document event targets so widgets can hold scoped handles that
// they release on teardown.
type dispatcher struct {
	listeners []*listener
	removed   int
}

func newDispatcher() *dispatcher { return &dispatcher{} }

func (d *dispatcher) listen(target eventTarget, kind eventKind, fn func(*uiEvent)) *listener {
	l := &listener{d: d, target: target, kind: kind, fn: fn}
	d.listeners = append(d.listeners, l)
	return l
}

// remove unregisters the listener. Removing twice is a no-op.
func (l *listener) remove() {
	if l == nil || l.gone {
		return
	}
	l.gone = true
	d := l.d
	for i, it := range d.listeners {
		if it == l {
			d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
			break
		}
	}
	d.removed++
}

// len is the number of live listeners.
func (d *dispatcher) len() int { return len(d.listeners) }

// dispatch delivers ev to target's listeners, then bubbles from the input to
// the document. Listeners removed during dispatch are skipped.
func (d *dispatcher) dispatch(target eventTarget, ev *uiEvent) {
	path := []eventTarget{target}
	if target == targetInput {
		path = append(path, targetDocument)
	}
	for _, t := range path {
		for _, l := range append([]*listener(nil), d.listeners...) {
			if l.gone || l.target != t || l.kind != ev.kind {
				continue
			}
			l.fn(ev)
		}
		if ev.stopped {
			return
		}
	}
}

var errTrapActive = errors.New("focus trap already active")

// focusTrap keeps keyboard focus on one input while active.
type focusTrap struct {
	focus func()
	blur  func()

	active      bool
	activations int
	releases    int
}

func newFocusTrap(focus, blur func()) *focusTrap {
	return &focusTrap{focus: focus, blur: blur}
}

func (t *focusTrap) activate() error {
	if t.active {
		return errTrapActive
	}
	t.active = true
	t.activations++
	if t.focus != nil {
		t.focus()
	}
	return nil
}

// deactivate releases focus. Calling it on an inactive trap is a no-op.
func (t *focusTrap) deactivate() {
	if !t.active {
		return
	}
	t.active = false
	t.releases++
	if t.blur != nil {
		t.blur()
	}
}
