package puzzle

// PlateRegistry is the set of live plates a boop push or pull is broadcast
// to. The initiating hit does not know which plate, if any, can respond, so
// every plate filters the request against its own candidate pool.
type PlateRegistry struct {
	plates []*PressurePlate
}

func NewPlateRegistry() *PlateRegistry {
	return &PlateRegistry{}
}

func (r *PlateRegistry) Register(p *PressurePlate) {
	if r == nil || p == nil || p.registry == r {
		return
	}
	if p.registry != nil {
		p.registry.Unregister(p)
	}
	p.registry = r
	r.plates = append(r.plates, p)
}

func (r *PlateRegistry) Unregister(p *PressurePlate) {
	if r == nil || p == nil || p.registry != r {
		return
	}
	p.registry = nil
	for i, existing := range r.plates {
		if existing == p {
			r.plates = append(r.plates[:i:i], r.plates[i+1:]...)
			return
		}
	}
}

func (r *PlateRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.plates)
}

// BroadcastPush offers the collider to the registered plates in order. The
// first plate that captures it ends the broadcast. A body already held by a
// plate is not offered again, so it is never held by two plates.
func (r *PlateRegistry) BroadcastPush(id ColliderID) bool {
	if r.holder(id) != nil {
		return false
	}
	captured := false
	r.each(func(p *PressurePlate) bool {
		if captured {
			return false
		}
		captured = p.BoopPush(id)
		return captured
	})
	return captured
}

// BroadcastPull asks every plate to release the collider and returns how
// many did.
func (r *PlateRegistry) BroadcastPull(id ColliderID) int {
	return r.each(func(p *PressurePlate) bool { return p.BoopPull(id) })
}

func (r *PlateRegistry) holder(id ColliderID) *PressurePlate {
	if r == nil {
		return nil
	}
	for _, p := range r.plates {
		if p.Holds(id) {
			return p
		}
	}
	return nil
}

// each iterates over a snapshot so plates may unregister during fn.
func (r *PlateRegistry) each(fn func(p *PressurePlate) bool) int {
	if r == nil {
		return 0
	}
	snapshot := append([]*PressurePlate(nil), r.plates...)
	n := 0
	for _, p := range snapshot {
		if p.registry != r {
			continue
		}
		if fn(p) {
			n++
		}
	}
	return n
}
