package entity

import (
	"testing"

	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
	"github.com/milk9111/switchboard/levels"
)

func testLevel() *levels.Level {
	return &levels.Level{
		Name:      "test",
		Width:     4,
		Height:    2,
		TileSize:  1,
		Layers:    [][]int{{0, 0, 0, 0, 1, 1, 1, 1}},
		LayerMeta: []levels.LayerMeta{{Physics: true}},
		Entities: []levels.Entity{
			{Type: "bullet_switch", Name: "a", X: 1, Y: 0},
			{Type: "bullet_switch", Name: "b", X: 2, Y: 0},
			{Type: "switch_gate", Name: "gate", Links: levels.Links{Switches: []string{"a", "b"}, Doors: []string{"door"}}},
			{Type: "switch_gate", Name: "ghost_gate", Links: levels.Links{Switches: []string{"a", "ghost"}, Doors: []string{"ghost_door"}}},
			{Type: "door", Name: "door", X: 3, Y: 0},
			{Type: "door", Name: "ghost_door", X: 3, Y: 1},
		},
	}
}

func TestLoadLevelToWorldWiresByName(t *testing.T) {
	w := ecs.NewWorld()
	if err := LoadLevelToWorld(w, testLevel()); err != nil {
		t.Fatalf("load level: %v", err)
	}
	res := EnsureNetwork(w)

	for _, name := range []string{"a", "b", "gate", "ghost_gate", "door", "ghost_door"} {
		if _, ok := res.Names[name]; !ok {
			t.Fatalf("expected %q registered", name)
		}
	}

	a, _ := ecs.Get(w, ecs.Entity(res.Names["a"]), component.BulletSwitchComponent.Kind())
	b, _ := ecs.Get(w, ecs.Entity(res.Names["b"]), component.BulletSwitchComponent.Kind())
	a.Switch.ActivateExtern()
	b.Switch.ActivateExtern()
	res.Network.Step(0.1)
	res.Network.Step(0.1)

	door, _ := ecs.Get(w, ecs.Entity(res.Names["door"]), component.DoorComponent.Kind())
	if !door.IsOpen {
		t.Fatalf("expected linked door to open")
	}
	ghost, _ := ecs.Get(w, ecs.Entity(res.Names["ghost_door"]), component.DoorComponent.Kind())
	if ghost.IsOpen {
		t.Fatalf("a gate linked to an unknown switch must stay closed")
	}

	tr, _ := ecs.Get(w, ecs.Entity(res.Names["door"]), component.TransformComponent.Kind())
	if tr.X != 3 || tr.Y != 0 {
		t.Fatalf("expected door placed at (3, 0), got (%v, %v)", tr.X, tr.Y)
	}
}

func TestLoadLevelToWorldMergesTiles(t *testing.T) {
	w := ecs.NewWorld()
	lvl := testLevel()
	lvl.Entities = nil
	if err := LoadLevelToWorld(w, lvl); err != nil {
		t.Fatalf("load level: %v", err)
	}

	var colliders []*component.PhysicsBody
	var positions []*component.Transform
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, tr *component.Transform) {
		colliders = append(colliders, body)
		positions = append(positions, tr)
	})
	if len(colliders) != 1 {
		t.Fatalf("expected the floor row merged into one collider, got %d", len(colliders))
	}
	if !colliders[0].Static || colliders[0].Width != 4 || colliders[0].Height != 1 {
		t.Fatalf("unexpected collider %+v", colliders[0])
	}
	if positions[0].X != 2 || positions[0].Y != 1.5 {
		t.Fatalf("expected collider centered at (2, 1.5), got (%v, %v)", positions[0].X, positions[0].Y)
	}
}

func TestLoadLevelToWorldErrors(t *testing.T) {
	if err := LoadLevelToWorld(nil, testLevel()); err == nil {
		t.Fatalf("expected error for nil world")
	}
	lvl := testLevel()
	lvl.Entities = append(lvl.Entities, levels.Entity{Type: "catapult", Name: "c"})
	if err := LoadLevelToWorld(ecs.NewWorld(), lvl); err == nil {
		t.Fatalf("expected error for unknown prefab type")
	}
}

func TestSwitchOf(t *testing.T) {
	w := ecs.NewWorld()
	cases := []struct {
		prefab string
		want   bool
	}{
		{"bullet_switch.yaml", true},
		{"elemental_generator.yaml", true},
		{"pressure_plate.yaml", true},
		{"relay_switch.yaml", true},
		{"switch_gate.yaml", false},
		{"door.yaml", false},
	}
	for _, c := range cases {
		e, err := BuildEntity(w, c.prefab)
		if err != nil {
			t.Fatalf("build %s: %v", c.prefab, err)
		}
		if got := SwitchOf(w, e) != nil; got != c.want {
			t.Fatalf("%s: expected switch=%v, got %v", c.prefab, c.want, got)
		}
	}
}

func TestLoadBundledLevels(t *testing.T) {
	names, err := levels.Names()
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := levels.LoadLevelFromFS(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if err := LoadLevelToWorld(ecs.NewWorld(), lvl); err != nil {
				t.Fatalf("build: %v", err)
			}
		})
	}
}
