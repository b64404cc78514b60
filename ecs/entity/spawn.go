package entity

import (
	"fmt"

	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
)

// SpawnKind names the actors that can be placed while a level runs.
type SpawnKind string

const (
	SpawnPlayer SpawnKind = "player"
	SpawnEnemy  SpawnKind = "enemy"
	SpawnAnchor SpawnKind = "anchor"
)

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return spawnAt(w, "player", x, y)
}

func NewEnemyAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return spawnAt(w, "enemy", x, y)
}

// NewAnchorAt places a capture parent for enemy plates.
func NewAnchorAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return spawnAt(w, "anchor", x, y)
}

// Spawn places an actor of the given kind. A non-empty name is registered so
// scripts and later links can find it.
func Spawn(w *ecs.World, kind SpawnKind, name string, x, y float64) (ecs.Entity, error) {
	var (
		e   ecs.Entity
		err error
	)
	switch kind {
	case SpawnPlayer:
		e, err = NewPlayerAt(w, x, y)
	case SpawnEnemy:
		e, err = NewEnemyAt(w, x, y)
	case SpawnAnchor:
		e, err = NewAnchorAt(w, x, y)
	default:
		return 0, fmt.Errorf("spawn: unknown kind %q", kind)
	}
	if err != nil {
		return 0, err
	}
	if name != "" {
		RegisterName(w, e, name)
	}
	return e, nil
}

// RegisterName makes e reachable by name through the puzzle network resource.
// It reports whether the name was already taken; the last registration wins.
func RegisterName(w *ecs.World, e ecs.Entity, name string) bool {
	res := EnsureNetwork(w)
	_, taken := res.Names[name]
	res.Names[name] = uint64(e)
	_ = ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name})
	return taken
}

func spawnAt(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("%s: world is nil", prefab)
	}
	e, err := BuildEntity(w, prefab+".yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, y, 0); err != nil {
		return 0, fmt.Errorf("%s: override transform: %w", prefab, err)
	}
	return e, nil
}
