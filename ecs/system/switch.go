package system

import (
	"log"

	"github.com/milk9111/switchboard/common"
	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
	"github.com/milk9111/switchboard/puzzle"
)

// SwitchSystem steps the puzzle network once per frame. It attaches an edge
// listener to every switch entity the first time it sees it, drops the node
// from the network once the entity is gone, and reports switch and gate edges
// on the event queue.
type SwitchSystem struct {
	tracked map[ecs.Entity]trackedNode
	gates   map[ecs.Entity]bool
}

type trackedNode struct {
	node   puzzle.Node
	cancel func()
}

func NewSwitchSystem() *SwitchSystem {
	return &SwitchSystem{
		tracked: make(map[ecs.Entity]trackedNode),
		gates:   make(map[ecs.Entity]bool),
	}
}

func (s *SwitchSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	res, ok := networkOf(w)
	if !ok {
		return
	}

	s.detachDead(w, res.Network)
	s.attach(w)

	dt := res.Step
	if dt <= 0 {
		dt = common.FixedStep
	}
	res.Network.Step(dt)

	ecs.ForEach(w, component.GateComponent.Kind(), func(e ecs.Entity, g *component.Gate) {
		open := g.Gate.IsOpen()
		last, seen := s.gates[e]
		s.gates[e] = open
		if last == open {
			return
		}
		if !seen {
			log.Printf("Switch: gate=%s restored open=%v", nameOf(w, e), open)
			return
		}
		log.Printf("Switch: gate=%s open=%v", nameOf(w, e), open)
		w.Events().Push(ecs.Event{Type: ecs.EventGateChanged, Data: ecs.SwitchChanged{Entity: e, Name: nameOf(w, e), Activated: open}})
	})
}

func (s *SwitchSystem) attach(w *ecs.World) {
	visit := func(e ecs.Entity, sw interface {
		puzzle.Switch
		puzzle.Node
	}) {
		if _, ok := s.tracked[e]; ok {
			return
		}
		name := nameOf(w, e)
		cancel := sw.OnActivatedChanged(func(active bool) {
			log.Printf("Switch: name=%s activated=%v", name, active)
			w.Events().Push(ecs.Event{Type: ecs.EventSwitchChanged, Data: ecs.SwitchChanged{Entity: e, Name: name, Activated: active}})
		})
		s.tracked[e] = trackedNode{node: sw, cancel: cancel}
		_ = ecs.Add(w, e, component.SwitchRuntimeComponent.Kind(), &component.SwitchRuntime{Cancel: cancel})
	}

	ecs.ForEach(w, component.BulletSwitchComponent.Kind(), func(e ecs.Entity, c *component.BulletSwitch) { visit(e, c.Switch) })
	ecs.ForEach(w, component.GeneratorComponent.Kind(), func(e ecs.Entity, c *component.Generator) { visit(e, c.Generator) })
	ecs.ForEach(w, component.PressurePlateComponent.Kind(), func(e ecs.Entity, c *component.PressurePlate) { visit(e, c.Plate) })
	ecs.ForEach(w, component.RelayComponent.Kind(), func(e ecs.Entity, c *component.Relay) { visit(e, c.Relay) })
	ecs.ForEach(w, component.GateComponent.Kind(), func(e ecs.Entity, c *component.Gate) {
		if _, ok := s.tracked[e]; !ok {
			s.tracked[e] = trackedNode{node: c.Gate}
		}
	})
}

// detachDead cancels listeners of destroyed entities and drops their nodes
// from the network. Removing a plate releases any body it holds.
func (s *SwitchSystem) detachDead(w *ecs.World, network *puzzle.Network) {
	for e, t := range s.tracked {
		if w.IsAlive(e) {
			continue
		}
		if t.cancel != nil {
			t.cancel()
		}
		network.Remove(t.node)
		delete(s.tracked, e)
		delete(s.gates, e)
	}
}
