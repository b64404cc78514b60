package system

import (
	"log"
	"strings"

	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
	"github.com/milk9111/switchboard/puzzle"
)

// ContactSystem routes ContactEvent entities to the switch owning the
// trigger volume and destroys them. Projectiles are spent on the first switch
// they reach.
type ContactSystem struct{}

func NewContactSystem() *ContactSystem { return &ContactSystem{} }

func (s *ContactSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.ContactEventComponent.Kind(), func(e ecs.Entity, evt *component.ContactEvent) {
		s.route(w, *evt)
		ecs.DestroyEntity(w, e)
	})
}

func (s *ContactSystem) route(w *ecs.World, evt component.ContactEvent) {
	trigger := ecs.Entity(evt.Trigger)
	other := ecs.Entity(evt.Other)
	if !w.IsAlive(trigger) {
		return
	}

	switch evt.Area {
	case component.TriggerSwitch:
		sw, ok := ecs.Get(w, trigger, component.BulletSwitchComponent.Kind())
		if !ok || !evt.Enter || !w.IsAlive(other) {
			return
		}
		if tag, ok := ecs.Get(w, other, component.TagComponent.Kind()); ok {
			sw.Switch.OnTriggerContact(tag.Name)
		}
		spendProjectile(w, other)

	case component.TriggerGenerator:
		gen, ok := ecs.Get(w, trigger, component.GeneratorComponent.Kind())
		if !ok || !evt.Enter || !w.IsAlive(other) {
			return
		}
		proj, ok := ecs.Get(w, other, component.ProjectileComponent.Kind())
		if !ok {
			return
		}
		if !gen.Generator.OnProjectileHit(toProjectile(*proj)) {
			log.Printf("Contact: generator=%s rejected element=%s", nameOf(w, trigger), proj.Element)
		}
		spendProjectile(w, other)

	case component.TriggerOccupancy, component.TriggerEnemy:
		plate, ok := ecs.Get(w, trigger, component.PressurePlateComponent.Kind())
		if !ok {
			return
		}
		area := puzzle.AreaOccupancy
		if evt.Area == component.TriggerEnemy {
			area = puzzle.AreaEnemy
		}
		collider := ColliderFor(w, other)
		if evt.Enter {
			plate.Plate.HandleAreaTriggerEnter(area, collider)
		} else {
			plate.Plate.HandleAreaTriggerExit(area, collider)
		}
	}
}

func toProjectile(p component.Projectile) puzzle.Projectile {
	out := puzzle.Projectile{Element: puzzle.Element(strings.ToLower(p.Element))}
	if p.HasPayload {
		out.Payload = &puzzle.ChargePayload{Percent: p.ChargePercent, Sign: p.Sign}
	}
	return out
}

func spendProjectile(w *ecs.World, e ecs.Entity) {
	if ecs.Has(w, e, component.ProjectileComponent.Kind()) {
		ecs.DestroyEntity(w, e)
	}
}

func nameOf(w *ecs.World, e ecs.Entity) string {
	if n, ok := ecs.Get(w, e, component.NameComponent.Kind()); ok && n.Value != "" {
		return n.Value
	}
	return e.String()
}
