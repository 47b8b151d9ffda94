package actionmenu

// EventType identifies an outbound notification.
type EventType int

const (
	// EventOpen fires on the CLOSED to OPEN transition.
	EventOpen EventType = iota + 1
	// EventClose fires on any OPEN to CLOSED transition.
	EventClose
	// EventSelect fires right before an option's action is invoked.
	EventSelect
)

func (t EventType) String() string {
	switch t {
	case EventOpen:
		return "open"
	case EventClose:
		return "close"
	case EventSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Event is delivered synchronously to subscribers. Option and Index are set
// for EventSelect only; Option points into the caller's option slice.
type Event struct {
	Type       EventType
	InstanceID string
	Option     *Option
	Index      int
}

// Listener receives events.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers fn and returns a function that removes it. Listeners
// run in registration order on the event loop and must not block.
func (m *Model) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	m.nextSubID++
	id := m.nextSubID
	m.subs = append(m.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

func (m *Model) emit(ev Event) {
	ev.InstanceID = m.id
	if ev.Type != EventSelect {
		ev.Index = -1
	}
	for _, s := range m.subs {
		s.fn(ev)
	}
}
