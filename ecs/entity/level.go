package entity

import (
	"fmt"
	"log"
	"strings"

	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
	"github.com/milk9111/switchboard/levels"
	"github.com/milk9111/switchboard/puzzle"
)

// LoadLevelToWorld builds a level into the world: static colliders for its
// physics layers, one entity per level entity, then the switch wiring. Names
// are registered on the puzzle network resource.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) error {
	if world == nil || lvl == nil {
		return fmt.Errorf("load level: world and level are required")
	}

	res := EnsureNetwork(world)

	tileSize := lvl.TileSize
	if tileSize <= 0 {
		tileSize = 1
	}
	for layerIdx, layer := range lvl.Layers {
		if layerIdx >= len(lvl.LayerMeta) || !lvl.LayerMeta[layerIdx].Physics {
			continue
		}
		if err := addMergedTileColliders(world, layer, lvl.Width, lvl.Height, tileSize); err != nil {
			return err
		}
	}

	built := make([]builtEntity, 0, len(lvl.Entities))
	for _, ent := range lvl.Entities {
		kind := strings.ToLower(ent.Type)
		e, err := BuildEntityWith(world, kind+".yaml", ent.Props)
		if err != nil {
			return fmt.Errorf("load level %s: entity %q: %w", lvl.Name, ent.Name, err)
		}
		if err := SetEntityTransform(world, e, ent.X, ent.Y, 0); err != nil {
			return err
		}
		if ent.Name != "" && RegisterName(world, e, ent.Name) {
			log.Printf("Level: level=%s duplicate name=%s, last one wins", lvl.Name, ent.Name)
		}
		built = append(built, builtEntity{entity: e, spec: ent})
	}

	l := linker{w: world, names: res.Names, level: lvl.Name}
	for _, b := range built {
		l.link(b)
	}
	return nil
}

type builtEntity struct {
	entity ecs.Entity
	spec   levels.Entity
}

type linker struct {
	w     *ecs.World
	names map[string]uint64
	level string
}

func (l *linker) link(b builtEntity) {
	e, links := b.entity, b.spec.Links

	if c, ok := ecs.Get(l.w, e, component.BulletSwitchComponent.Kind()); ok {
		c.Switch.SetPrerequisites(l.switches(b, links.Prerequisites)...)
	}
	if c, ok := ecs.Get(l.w, e, component.GeneratorComponent.Kind()); ok {
		c.Generator.SetPrerequisites(l.switches(b, links.Prerequisites)...)
	}
	if c, ok := ecs.Get(l.w, e, component.PressurePlateComponent.Kind()); ok {
		c.Plate.SetPrerequisites(l.switches(b, links.Prerequisites)...)
		if links.Anchor != "" {
			if anchor, ok := l.entity(b, links.Anchor); ok {
				c.Plate.SetAnchor(puzzle.ParentID(anchor))
			}
		}
	}
	if c, ok := ecs.Get(l.w, e, component.RelayComponent.Kind()); ok {
		c.Relay.SetInputs(l.switches(b, links.Inputs)...)
	}
	if c, ok := ecs.Get(l.w, e, component.GateComponent.Kind()); ok {
		l.linkGate(b, c.Gate)
	}
}

func (l *linker) linkGate(b builtEntity, gate *puzzle.SwitchGate) {
	links := b.spec.Links
	if gate.Config().Mode == puzzle.GateSequential {
		groups := make([][]puzzle.Switch, 0, len(links.Groups))
		for _, names := range links.Groups {
			groups = append(groups, l.switches(b, names))
		}
		gate.SetGroups(groups...)
	} else {
		gate.SetSwitches(l.switches(b, links.Switches)...)
	}

	for _, name := range links.Doors {
		target, ok := l.entity(b, name)
		if !ok {
			continue
		}
		door, ok := ecs.Get(l.w, target, component.DoorComponent.Kind())
		if !ok {
			log.Printf("Level: level=%s gate=%s link=%s is not a door", l.level, b.spec.Name, name)
			continue
		}
		gate.AddDoor(door)
	}
	for _, name := range links.Fountains {
		target, ok := l.entity(b, name)
		if !ok {
			continue
		}
		fountain, ok := ecs.Get(l.w, target, component.FountainComponent.Kind())
		if !ok {
			log.Printf("Level: level=%s gate=%s link=%s is not a fountain", l.level, b.spec.Name, name)
			continue
		}
		gate.AddFountain(fountain)
	}
}

// switches resolves names to switches. An unknown name resolves to a nil
// entry, which is never activated.
func (l *linker) switches(b builtEntity, names []string) []puzzle.Switch {
	if len(names) == 0 {
		return nil
	}
	out := make([]puzzle.Switch, 0, len(names))
	for _, name := range names {
		target, ok := l.entity(b, name)
		if !ok {
			out = append(out, nil)
			continue
		}
		sw := SwitchOf(l.w, target)
		if sw == nil {
			log.Printf("Level: level=%s entity=%s link=%s is not a switch", l.level, b.spec.Name, name)
		}
		out = append(out, sw)
	}
	return out
}

func (l *linker) entity(b builtEntity, name string) (ecs.Entity, bool) {
	id, ok := l.names[name]
	if !ok {
		log.Printf("Level: level=%s entity=%s unknown link=%s", l.level, b.spec.Name, name)
		return 0, false
	}
	return ecs.Entity(id), true
}

// SwitchOf returns the switch held by e, or nil.
func SwitchOf(w *ecs.World, e ecs.Entity) puzzle.Switch {
	if c, ok := ecs.Get(w, e, component.BulletSwitchComponent.Kind()); ok {
		return c.Switch
	}
	if c, ok := ecs.Get(w, e, component.GeneratorComponent.Kind()); ok {
		return c.Generator
	}
	if c, ok := ecs.Get(w, e, component.PressurePlateComponent.Kind()); ok {
		return c.Plate
	}
	if c, ok := ecs.Get(w, e, component.RelayComponent.Kind()); ok {
		return c.Relay
	}
	return nil
}

func addMergedTileColliders(world *ecs.World, layer []int, width, height int, tileSize float64) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := index(x, y)
			if idx < 0 || idx >= len(layer) {
				continue
			}
			if visited[idx] || layer[idx] <= 0 {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width; x2++ {
				idx2 := index(x2, y)
				if idx2 >= len(layer) || visited[idx2] || layer[idx2] <= 0 {
					break
				}
				maxW++
			}
			if maxW == 0 {
				continue
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					idx2 := index(x2, y2)
					if idx2 >= len(layer) || visited[idx2] || layer[idx2] <= 0 {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}

			w, h := float64(maxW)*tileSize, float64(maxH)*tileSize
			e := ecs.CreateEntity(world)
			if err := ecs.Add(world, e, component.TransformComponent.Kind(), &component.Transform{
				X: float64(x)*tileSize + w/2,
				Y: float64(y)*tileSize + h/2,
			}); err != nil {
				return err
			}
			if err := ecs.Add(world, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Width:    w,
				Height:   h,
				Friction: 0.9,
				Static:   true,
			}); err != nil {
				return err
			}
		}
	}

	return nil
}
