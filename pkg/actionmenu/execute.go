package actionmenu

import (
	"errors"
	"fmt"
	"runtime/debug"

	tea "charm.land/bubbletea/v2"
)

// ActionDoneMsg reports that an invoked action returned or panicked. It is
// produced by the command returned from Select and must be routed back to
// Update. Err carries the action's error, if any.
type ActionDoneMsg struct {
	InstanceID string
	Seq        uint64
	Index      int
	Option     *Option
	Err        error
}

// ActionErrorMsg hands a failed action's error to the host. The menu has
// already released its lock and closed when this is delivered.
type ActionErrorMsg struct {
	InstanceID string
	Index      int
	Option     *Option
	Err        error
}

// ActionPanicError wraps a panic raised by an action.
type ActionPanicError struct {
	Label string
	Value any
	Stack []byte
}

func (e *ActionPanicError) Error() string {
	return fmt.Sprintf("action %q panicked: %v", e.Label, e.Value)
}

// Unwrap exposes the panic value when it is an error.
func (e *ActionPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Select selects option index as a pointer click or keyboard activation
// would. It is a no-op while closed, while another action is executing, for
// a disabled option, or for an index out of range. Otherwise the menu locks,
// listeners receive EventSelect, and the returned command runs the action.
func (m *Model) Select(index int) tea.Cmd {
	if !m.mounted || !m.open {
		return nil
	}
	if index < 0 || index >= len(m.options) {
		m.log.V(1).Info("select ignored", "index", index, "reason", "out of range")
		return nil
	}
	opt := &m.options[index]
	if opt.Disabled {
		m.log.V(1).Info("select ignored", "index", index, "reason", "disabled")
		return nil
	}
	if m.executing {
		m.log.V(1).Info("select ignored", "index", index, "reason", "executing")
		return nil
	}

	m.executing = true
	m.seq++
	m.typeBuf = ""
	m.log.V(1).Info("option selected", "index", index, "label", opt.Label)
	m.emit(Event{Type: EventSelect, Option: opt, Index: index})
	if !m.mounted {
		// a select listener tore the instance down
		return nil
	}
	return tea.Batch(m.runAction(opt, index, m.seq), m.spinner.Tick)
}

// runAction captures everything the action needs so the command never
// touches the model from its goroutine.
func (m *Model) runAction(opt *Option, index int, seq uint64) tea.Cmd {
	ctx, item, id := m.ctx, m.item, m.id
	action := opt.Action
	return func() (msg tea.Msg) {
		done := ActionDoneMsg{InstanceID: id, Seq: seq, Index: index, Option: opt}
		defer func() {
			if r := recover(); r != nil {
				done.Err = &ActionPanicError{Label: opt.Label, Value: r, Stack: debug.Stack()}
			}
			msg = done
		}()
		done.Err = action(ctx, item)
		return done
	}
}

// finish releases the lock and closes the menu. Completions for another
// instance, a superseded run, or a torn-down instance are dropped.
func (m *Model) finish(msg ActionDoneMsg) tea.Cmd {
	if msg.InstanceID != m.id || !m.executing || msg.Seq != m.seq {
		return nil
	}
	m.executing = false
	m.closeMenu()
	if msg.Err == nil {
		return nil
	}

	var panicErr *ActionPanicError
	if errors.As(msg.Err, &panicErr) {
		m.log.Error(msg.Err, "action panicked", "index", msg.Index, "stack", string(panicErr.Stack))
	} else {
		m.log.Error(msg.Err, "action failed", "index", msg.Index)
	}
	errMsg := ActionErrorMsg{InstanceID: m.id, Index: msg.Index, Option: msg.Option, Err: msg.Err}
	if m.onError != nil {
		m.onError(errMsg)
	}
	return func() tea.Msg { return errMsg }
}
