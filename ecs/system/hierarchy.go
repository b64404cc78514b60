package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
)

// HierarchySystem keeps parented entities at their offset from the parent.
// A parented physics body is moved with it and held still. Entities whose
// parent is gone are detached.
type HierarchySystem struct{}

func NewHierarchySystem() *HierarchySystem { return &HierarchySystem{} }

func (s *HierarchySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.ParentComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, parent *component.Parent, transform *component.Transform) {
		anchor, ok := ecs.Get(w, ecs.Entity(parent.Entity), component.TransformComponent.Kind())
		if !ok {
			ecs.Remove(w, e, component.ParentComponent.Kind())
			return
		}
		transform.X = anchor.X + parent.OffsetX
		transform.Y = anchor.Y + parent.OffsetY

		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil && !body.Static {
			body.Body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
			body.Body.SetVelocity(0, 0)
		}
	})
}
