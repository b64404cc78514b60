package puzzle

import (
	"github.com/zyedidia/generic/mapset"
)

// AreaKind names the detection sub-area of a plate that reported an overlap.
type AreaKind int

const (
	// AreaOccupancy feeds the occupant counter that charges the plate.
	AreaOccupancy AreaKind = iota
	// AreaEnemy feeds the pool of enemies eligible for capture.
	AreaEnemy
)

func (k AreaKind) String() string {
	if k == AreaEnemy {
		return "enemy"
	}
	return "occupancy"
}

// PressurePlate charges while occupied and decays otherwise. General plates
// are occupied by qualifying bodies in the occupancy area; enemy specific
// plates are occupied only while they hold a captured enemy.
type PressurePlate struct {
	signal

	cfg           PlateConfig
	prerequisites Prerequisites
	state         *ChargeState
	enabled       bool
	anchor        ParentID

	occupants  mapset.Set[ColliderID]
	candidates mapset.Set[ColliderID]
	colliders  map[ColliderID]*Collider
	captured   *CapturedBody

	registry *PlateRegistry
}

func NewPressurePlate(cfg PlateConfig, prerequisites ...Switch) *PressurePlate {
	cfg = cfg.Normalize()
	return &PressurePlate{
		cfg:           cfg,
		prerequisites: prerequisites,
		state:         NewChargeState(cfg.Thresholds, 0, false),
		enabled:       true,
		occupants:     mapset.New[ColliderID](),
		candidates:    mapset.New[ColliderID](),
		colliders:     make(map[ColliderID]*Collider),
	}
}

func (p *PressurePlate) Config() PlateConfig {
	return p.cfg
}

func (p *PressurePlate) SetPrerequisites(prereqs ...Switch) {
	p.prerequisites = prereqs
}

// SetAnchor sets the parent captured bodies are attached to when
// ReparentToAnchor is configured.
func (p *PressurePlate) SetAnchor(anchor ParentID) {
	p.anchor = anchor
}

func (p *PressurePlate) ChargePercent() float64 {
	return p.state.Charge()
}

func (p *PressurePlate) Enabled() bool {
	return p.enabled
}

// Captured returns the body currently held, or nil.
func (p *PressurePlate) Captured() *CapturedBody {
	return p.captured
}

// OccupantCount is the number of qualifying bodies in the occupancy area.
func (p *PressurePlate) OccupantCount() int {
	return p.occupants.Size()
}

// IsCandidate reports whether id is inside the enemy detection area.
func (p *PressurePlate) IsCandidate(id ColliderID) bool {
	return p.candidates.Has(id)
}

func (p *PressurePlate) HandleAreaTriggerEnter(area AreaKind, c *Collider) {
	if !p.enabled || c == nil {
		return
	}

	switch area {
	case AreaOccupancy:
		if !p.qualifiesOccupant(c.Tag) {
			return
		}
		p.occupants.Put(c.ID)
	case AreaEnemy:
		if p.cfg.Kind != PlateEnemySpecific || c.Tag != p.cfg.EnemyTag {
			return
		}
		p.candidates.Put(c.ID)
	default:
		return
	}
	p.colliders[c.ID] = c
}

func (p *PressurePlate) HandleAreaTriggerExit(area AreaKind, c *Collider) {
	if c == nil {
		return
	}

	switch area {
	case AreaOccupancy:
		p.occupants.Remove(c.ID)
	case AreaEnemy:
		p.candidates.Remove(c.ID)
		if p.captured != nil && p.captured.Collider.ID == c.ID {
			p.releaseCapture("exit")
		}
	}
	p.forget(c.ID)
}

// Holds reports whether id is the body this plate has captured.
func (p *PressurePlate) Holds(id ColliderID) bool {
	return p.captured != nil && p.captured.Collider.ID == id
}

// BoopPush captures the collider if it is a candidate of this plate and
// nothing is captured yet.
func (p *PressurePlate) BoopPush(id ColliderID) bool {
	if !p.enabled || p.cfg.Kind != PlateEnemySpecific || p.captured != nil {
		return false
	}
	if !p.candidates.Has(id) {
		return false
	}
	c := p.colliders[id]
	if c == nil {
		return false
	}
	p.captured = captureBody(c, p.anchor, p.cfg.ReparentToAnchor, p.cfg.FreezeDuration)
	return true
}

// BoopPull releases the captured body if it is id.
func (p *PressurePlate) BoopPull(id ColliderID) bool {
	if p.captured == nil || p.captured.Collider.ID != id {
		return false
	}
	p.releaseCapture("pull")
	return true
}

// SetEnabled toggles the plate. Disabling releases any capture, forgets all
// overlaps and drains the charge.
func (p *PressurePlate) SetEnabled(enabled bool) {
	if p.enabled == enabled {
		return
	}
	p.enabled = enabled
	if enabled {
		return
	}

	p.releaseCapture("disable")
	p.occupants = mapset.New[ColliderID]()
	p.candidates = mapset.New[ColliderID]()
	p.colliders = make(map[ColliderID]*Collider)
	p.state.ForceReset()
	p.set(false)
	p.Publish()
}

// Destroy releases any capture before leaving the registry, then detaches
// every listener.
func (p *PressurePlate) Destroy() {
	p.releaseCapture("destroy")
	if p.registry != nil {
		p.registry.Unregister(p)
	}
	p.listeners = nil
}

func (p *PressurePlate) Tick(dt float64) {
	if !p.enabled {
		return
	}

	if p.cfg.Sequential && !p.prerequisites.Met() {
		p.state.ForceReset()
		p.set(false)
		return
	}

	if p.occupied() {
		if p.cfg.RiseTime <= 0 {
			p.state.SetCharge(MaxCharge)
		} else {
			p.state.Add(MaxCharge / p.cfg.RiseTime * dt)
		}
	} else if p.cfg.DecayPerSecond > 0 {
		p.state.Add(-p.cfg.DecayPerSecond * dt)
	}

	p.set(p.state.Evaluate(true))
}

func (p *PressurePlate) Publish() {
	p.publish()
}

func (p *PressurePlate) occupied() bool {
	if p.cfg.Kind == PlateEnemySpecific {
		return p.captured != nil
	}
	if p.cfg.RequiredMass <= 0 {
		return p.occupants.Size() > 0
	}

	total := 0.0
	p.occupants.Each(func(id ColliderID) {
		if c := p.colliders[id]; c != nil {
			total += c.Mass
		}
	})
	return total >= p.cfg.RequiredMass
}

func (p *PressurePlate) qualifiesOccupant(tag string) bool {
	if p.cfg.AcceptPlayer && tag == p.cfg.PlayerTag {
		return true
	}
	return p.cfg.AcceptEnemy && tag == p.cfg.EnemyTag
}

func (p *PressurePlate) forget(id ColliderID) {
	if p.occupants.Has(id) || p.candidates.Has(id) {
		return
	}
	if p.captured != nil && p.captured.Collider.ID == id {
		return
	}
	delete(p.colliders, id)
}

func (p *PressurePlate) releaseCapture(reason string) {
	if p.captured == nil {
		return
	}
	cb := p.captured
	p.captured = nil
	cb.release(reason)
	p.forget(cb.Collider.ID)
}
