package system

import (
	"math"

	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
	"github.com/milk9111/switchboard/puzzle"
)

// ColliderFor describes e to the puzzle package: its tag, its effective mass
// and, when present, its physics body and freeze status.
func ColliderFor(w *ecs.World, e ecs.Entity) *puzzle.Collider {
	c := &puzzle.Collider{ID: puzzle.ColliderID(e)}
	if !w.IsAlive(e) {
		return c
	}
	if tag, ok := ecs.Get(w, e, component.TagComponent.Kind()); ok {
		c.Tag = tag.Name
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		c.Mass = effectiveMass(w, e, body)
		if !body.Static {
			c.Body = &entityBody{w: w, e: e}
		}
	}
	if ecs.Has(w, e, component.StatusComponent.Kind()) {
		c.Status = &entityStatus{w: w, e: e}
	}
	return c
}

func effectiveMass(w *ecs.World, e ecs.Entity, body *component.PhysicsBody) float64 {
	mass := body.Mass
	if mass <= 0 {
		mass = 1
	}
	if st, ok := ecs.Get(w, e, component.StatusComponent.Kind()); ok && st.Frozen && st.MassMultiplier > 0 {
		mass *= st.MassMultiplier
	}
	return mass
}

// entityBody implements puzzle.Body on top of the physics components of an
// entity.
type entityBody struct {
	w *ecs.World
	e ecs.Entity
}

func (b *entityBody) comp() *component.PhysicsBody {
	body, ok := ecs.Get(b.w, b.e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return nil
	}
	return body
}

func (b *entityBody) Constraints() puzzle.Constraints {
	body := b.comp()
	if body == nil {
		return puzzle.Constraints{}
	}
	return puzzle.Constraints{FreezeX: body.FreezeX, FreezeY: body.FreezeY, FreezeRotation: body.FreezeRotation}
}

func (b *entityBody) SetConstraints(c puzzle.Constraints) {
	body := b.comp()
	if body == nil {
		return
	}
	body.FreezeX = c.FreezeX
	body.FreezeY = c.FreezeY
	body.FreezeRotation = c.FreezeRotation
}

func (b *entityBody) GravityScale() float64 {
	if gs, ok := ecs.Get(b.w, b.e, component.GravityScaleComponent.Kind()); ok {
		return gs.Scale
	}
	return 1
}

func (b *entityBody) SetGravityScale(scale float64) {
	_ = ecs.Add(b.w, b.e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: scale})
}

func (b *entityBody) Parent() puzzle.ParentID {
	if p, ok := ecs.Get(b.w, b.e, component.ParentComponent.Kind()); ok {
		return puzzle.ParentID(p.Entity)
	}
	return 0
}

func (b *entityBody) SetParent(id puzzle.ParentID) {
	if id == 0 {
		ecs.Remove(b.w, b.e, component.ParentComponent.Kind())
		return
	}
	parent := component.Parent{Entity: uint64(id)}
	self, okSelf := ecs.Get(b.w, b.e, component.TransformComponent.Kind())
	anchor, okAnchor := ecs.Get(b.w, ecs.Entity(id), component.TransformComponent.Kind())
	if okSelf && okAnchor {
		parent.OffsetX = self.X - anchor.X
		parent.OffsetY = self.Y - anchor.Y
	}
	_ = ecs.Add(b.w, b.e, component.ParentComponent.Kind(), &parent)
}

func (b *entityBody) Stop() {
	body := b.comp()
	if body == nil || body.Body == nil {
		return
	}
	body.Body.SetVelocity(0, 0)
	body.Body.SetAngularVelocity(0)
}

// entityStatus implements puzzle.Status with the Status component.
type entityStatus struct {
	w *ecs.World
	e ecs.Entity
}

func (s *entityStatus) IsFrozen() bool {
	st, ok := ecs.Get(s.w, s.e, component.StatusComponent.Kind())
	return ok && st.Frozen
}

func (s *entityStatus) ApplyFreeze(seconds float64) {
	st, ok := ecs.Get(s.w, s.e, component.StatusComponent.Kind())
	if !ok {
		return
	}
	st.Frozen = true
	st.FreezeRemaining = seconds
	if math.IsInf(seconds, 1) {
		st.FreezeRemaining = -1
	}
}

func (s *entityStatus) ClearFreeze() {
	st, ok := ecs.Get(s.w, s.e, component.StatusComponent.Kind())
	if !ok {
		return
	}
	st.Frozen = false
	st.FreezeRemaining = 0
}
