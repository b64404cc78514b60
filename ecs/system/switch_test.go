package system

import (
	"testing"

	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
	"github.com/milk9111/switchboard/puzzle"
)

func TestSwitchSystemReportsEdges(t *testing.T) {
	w, net := newNetworkWorld(t)
	a := puzzle.NewBulletSwitch(puzzle.DefaultBulletSwitchConfig(), net.Clock())
	b := puzzle.NewBulletSwitch(puzzle.DefaultBulletSwitchConfig(), net.Clock())
	gate := puzzle.NewSwitchGate(puzzle.DefaultGateConfig(), a, b)
	door := &component.Door{OpenY: -4, OpenSpeed: 1, CloseSpeed: 1}
	gate.AddDoor(door)
	net.Add(a)
	net.Add(b)
	net.Add(gate)

	ea := spawn(t, w, "a", 0, 0)
	_ = ecs.Add(w, ea, component.BulletSwitchComponent.Kind(), &component.BulletSwitch{Switch: a})
	eb := spawn(t, w, "b", 0, 0)
	_ = ecs.Add(w, eb, component.BulletSwitchComponent.Kind(), &component.BulletSwitch{Switch: b})
	eg := spawn(t, w, "gate", 0, 0)
	_ = ecs.Add(w, eg, component.GateComponent.Kind(), &component.Gate{Gate: gate})

	sys := NewSwitchSystem()
	sys.Update(w)
	if !ecs.Has(w, ea, component.SwitchRuntimeComponent.Kind()) {
		t.Fatalf("expected listener attached")
	}

	a.ActivateExtern()
	b.ActivateExtern()
	sys.Update(w)

	events := w.Events().Drain()
	if countEvents(events, ecs.EventSwitchChanged) != 2 || countEvents(events, ecs.EventGateChanged) != 1 {
		t.Fatalf("expected two switch edges and one gate edge, got %+v", events)
	}
	if !door.IsOpen {
		t.Fatalf("expected gate to open the door")
	}
	for _, evt := range events {
		if evt.Type != ecs.EventGateChanged {
			continue
		}
		changed := evt.Data.(ecs.SwitchChanged)
		if changed.Name != "gate" || !changed.Activated {
			t.Fatalf("unexpected gate event %+v", changed)
		}
	}
}

func TestSwitchSystemDropsDestroyedNodes(t *testing.T) {
	w, net := newNetworkWorld(t)
	cfg := puzzle.DefaultPlateConfig()
	cfg.Kind = puzzle.PlateEnemySpecific
	plate := puzzle.NewPressurePlate(cfg)
	net.Add(plate)
	owner := spawn(t, w, "plate", 0, 0)
	_ = ecs.Add(w, owner, component.PressurePlateComponent.Kind(), &component.PressurePlate{Plate: plate})

	enemy := spawn(t, w, "enemy", 0, 0)
	_ = ecs.Add(w, enemy, component.TagComponent.Kind(), &component.Tag{Name: "Enemy"})
	_ = ecs.Add(w, enemy, component.StatusComponent.Kind(), &component.Status{})
	plate.HandleAreaTriggerEnter(puzzle.AreaEnemy, ColliderFor(w, enemy))
	if !plate.BoopPush(puzzle.ColliderID(enemy)) {
		t.Fatalf("expected capture")
	}

	sys := NewSwitchSystem()
	sys.Update(w)

	ecs.DestroyEntity(w, owner)
	sys.Update(w)

	if net.Len() != 0 || net.Plates().Len() != 0 {
		t.Fatalf("expected plate removed from network and registry")
	}
	if st, _ := ecs.Get(w, enemy, component.StatusComponent.Kind()); st.Frozen {
		t.Fatalf("expected capture released when the plate is destroyed")
	}
}
