package actionmenu

import (
	"context"
	"testing"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"
)

var (
	keyDown  = tea.KeyPressMsg{Code: tea.KeyDown}
	keyUp    = tea.KeyPressMsg{Code: tea.KeyUp}
	keyEnter = tea.KeyPressMsg{Code: tea.KeyEnter}
	keySpace = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	keyEsc   = tea.KeyPressMsg{Code: tea.KeyEsc}
)

func textKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func noopAction(context.Context, any) error { return nil }

type testItem struct {
	ID   int
	Name string
}

func testConfig(options []Option) Config {
	return Config{
		Item:        &testItem{ID: 1, Name: "Test Item"},
		Icon:        "fa-solid fa-ellipsis-vertical",
		TooltipText: "More actions",
		Options:     options,
		NoColor:     true,
	}
}

func newTestMenu(t *testing.T, options []Option, mutate ...func(*Config)) *Model {
	t.Helper()
	cfg := testConfig(options)
	for _, fn := range mutate {
		fn(&cfg)
	}
	m, err := New(cfg)
	require.NoError(t, err)
	m.Focus()
	return m
}

// eventLog records notifications in order.
type eventLog struct {
	events []Event
}

func (l *eventLog) listen(ev Event) { l.events = append(l.events, ev) }

func (l *eventLog) count(typ EventType) int {
	n := 0
	for _, ev := range l.events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func subscribe(m *Model) *eventLog {
	l := &eventLog{}
	m.Subscribe(l.listen)
	return l
}

func press(m *Model, msgs ...tea.KeyPressMsg) tea.Cmd {
	var last tea.Cmd
	for _, msg := range msgs {
		_, last = m.Update(msg)
	}
	return last
}

// drain runs cmd and every command it produces, feeding messages back into
// m. Spinner ticks are dropped so tests never sleep. It returns the
// non-tick messages in delivery order.
func drain(m *Model, cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg:
		default:
			out = append(out, msg)
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
	return out
}

// actionCmd returns the part of a Select command that runs the action.
// Select batches the action first and the spinner tick second.
func actionCmd(t *testing.T, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "select should return a batch")
	require.NotEmpty(t, batch)
	return batch[0]
}
