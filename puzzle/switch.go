// Package puzzle implements the switch network that drives interactive
// puzzles: bullet switches, elemental generators, pressure plates, relays and
// the gates that open doors and fountains once their switches are satisfied.
//
// Every node is advanced by a Network once per simulation tick. A node only
// ever reads the published activation of other switches, which is the value
// they held at the start of the tick, so evaluation order inside a tick does
// not matter.
package puzzle

// Switch is the capability shared by every activatable node.
type Switch interface {
	IsActivated() bool
	// OnActivatedChanged registers fn to be called on every activation edge.
	// The returned cancel func detaches it.
	OnActivatedChanged(fn func(bool)) (cancel func())
}

// Node is anything the Network advances each tick.
type Node interface {
	// Tick computes the next state from published inputs. It must not
	// publish.
	Tick(dt float64)
	// Publish makes the state computed by Tick visible to other nodes and
	// notifies listeners of edges.
	Publish()
}

type listener struct {
	id int
	fn func(bool)
}

// signal holds a published activation flag, the pending value computed during
// a tick, and the observers notified when the published value flips.
type signal struct {
	published bool
	pending   bool

	nextID    int
	listeners []listener
}

func (s *signal) IsActivated() bool {
	return s.published
}

func (s *signal) OnActivatedChanged(fn func(bool)) func() {
	if fn == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// current is the value the owning switch reasons about while ticking.
func (s *signal) current() bool {
	return s.pending
}

func (s *signal) set(v bool) {
	s.pending = v
}

// reset forces both values without notifying, used for initial state.
func (s *signal) reset(v bool) {
	s.pending = v
	s.published = v
}

func (s *signal) publish() {
	if s.pending == s.published {
		return
	}
	s.published = s.pending
	// listeners may cancel themselves while being notified
	snapshot := append([]listener(nil), s.listeners...)
	for _, l := range snapshot {
		l.fn(s.published)
	}
}

// Prerequisites is an ordered list of switches that must all be activated.
// A nil entry is never met.
type Prerequisites []Switch

func (p Prerequisites) Met() bool {
	for _, sw := range p {
		if sw == nil || !sw.IsActivated() {
			return false
		}
	}
	return true
}
