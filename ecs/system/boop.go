package system

import (
	"log"

	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
	"github.com/milk9111/switchboard/puzzle"
)

// BoopSystem consumes BoopRequest entities. Boops on a bullet switch go to
// the switch; boops on anything else are broadcast to every pressure plate.
type BoopSystem struct{}

func NewBoopSystem() *BoopSystem { return &BoopSystem{} }

func (s *BoopSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	res, hasNetwork := networkOf(w)
	ecs.ForEach(w, component.BoopRequestComponent.Kind(), func(e ecs.Entity, req *component.BoopRequest) {
		target := ecs.Entity(req.Target)
		ecs.DestroyEntity(w, e)
		if !w.IsAlive(target) {
			return
		}

		if sw, ok := ecs.Get(w, target, component.BulletSwitchComponent.Kind()); ok {
			if !req.Pull {
				sw.Switch.Boop()
			}
			return
		}
		if !hasNetwork {
			return
		}

		plates := res.Network.Plates()
		id := puzzle.ColliderID(target)
		if req.Pull {
			if n := plates.BroadcastPull(id); n > 0 {
				log.Printf("Boop: pulled target=%s from %d plate(s)", nameOf(w, target), n)
				w.Events().Push(ecs.Event{Type: ecs.EventReleased, Data: target})
			}
			return
		}
		if plates.BroadcastPush(id) {
			log.Printf("Boop: pushed target=%s onto a plate", nameOf(w, target))
			w.Events().Push(ecs.Event{Type: ecs.EventCaptured, Data: target})
		}
	})
}

func networkOf(w *ecs.World) (*component.PuzzleNetwork, bool) {
	e, ok := ecs.First(w, component.PuzzleNetworkComponent.Kind())
	if !ok {
		return nil, false
	}
	res, ok := ecs.Get(w, e, component.PuzzleNetworkComponent.Kind())
	if !ok || res.Network == nil {
		return nil, false
	}
	return res, true
}
