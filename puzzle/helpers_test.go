package puzzle

import "testing"

// stubSwitch is a switch whose state is set directly by tests.
type stubSwitch struct {
	signal
}

func newStub(active bool) *stubSwitch {
	s := &stubSwitch{}
	s.reset(active)
	return s
}

func (s *stubSwitch) Set(v bool) {
	s.set(v)
	s.publish()
}

type stubDoor struct {
	opens, closes int
}

func (d *stubDoor) Open() { d.opens++ }
func (d *stubDoor) Close() { d.closes++ }

type stubFountain struct {
	activations, deactivations int
}

func (f *stubFountain) Activate() { f.activations++ }
func (f *stubFountain) Deactivate() { f.deactivations++ }

type stubBody struct {
	constraints Constraints
	gravity     float64
	parent      ParentID
	stops       int
}

func (b *stubBody) Constraints() Constraints { return b.constraints }
func (b *stubBody) SetConstraints(c Constraints) { b.constraints = c }
func (b *stubBody) GravityScale() float64 { return b.gravity }
func (b *stubBody) SetGravityScale(g float64) { b.gravity = g }
func (b *stubBody) Parent() ParentID { return b.parent }
func (b *stubBody) SetParent(p ParentID) { b.parent = p }
func (b *stubBody) Stop() { b.stops++ }

type stubStatus struct {
	frozen  bool
	applied float64
}

func (s *stubStatus) IsFrozen() bool { return s.frozen }
func (s *stubStatus) ApplyFreeze(seconds float64) {
	s.frozen = true
	s.applied = seconds
}
func (s *stubStatus) ClearFreeze() { s.frozen = false }

// edgeRecorder collects every published edge of a switch.
type edgeRecorder struct {
	edges []bool
}

func record(t *testing.T, sw Switch) *edgeRecorder {
	t.Helper()
	r := &edgeRecorder{}
	sw.OnActivatedChanged(func(v bool) { r.edges = append(r.edges, v) })
	return r
}

func (r *edgeRecorder) count() int {
	return len(r.edges)
}
