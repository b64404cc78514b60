package system

import (
	"github.com/milk9111/switchboard/common"
	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
)

// StatusSystem counts freezes down and keeps the physics mass of frozen
// bodies scaled by their multiplier.
type StatusSystem struct {
	dt float64
}

func NewStatusSystem(dt float64) *StatusSystem {
	if dt <= 0 {
		dt = common.FixedStep
	}
	return &StatusSystem{dt: dt}
}

func (s *StatusSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.StatusComponent.Kind(), func(e ecs.Entity, st *component.Status) {
		if st.Frozen && st.FreezeRemaining > 0 {
			st.FreezeRemaining -= s.dt
			if st.FreezeRemaining <= 0 {
				st.Frozen = false
				st.FreezeRemaining = 0
			}
		}

		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok || body.Body == nil || body.Static {
			return
		}
		mass := effectiveMass(w, e, body)
		if body.Body.Mass() != mass {
			body.Body.SetMass(mass)
		}
	})
}
