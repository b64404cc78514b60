package entity

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
	"github.com/milk9111/switchboard/prefabs"
	"github.com/milk9111/switchboard/puzzle"
)

type buildContext struct {
	PrefabPath string
	Network    *component.PuzzleNetwork
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":      addTransform,
	"tag":            addTag,
	"physics_body":   addPhysicsBody,
	"gravity_scale":  addGravityScale,
	"status":         addStatus,
	"trigger_volume": addTriggerVolume,
	"projectile":     addProjectile,
	"ttl":            addTTL,
	"bullet_switch":  addBulletSwitch,
	"generator":      addGenerator,
	"pressure_plate": addPressurePlate,
	"relay":          addRelay,
	"gate":           addGate,
	"door":           addDoor,
	"fountain":       addFountain,
	"persistent":     addPersistent,
}

var componentBuildOrder = []string{
	"transform",
	"tag",
	"physics_body",
	"gravity_scale",
	"status",
	"trigger_volume",
	"projectile",
	"ttl",
	"bullet_switch",
	"generator",
	"pressure_plate",
	"relay",
	"gate",
	"door",
	"fountain",
	"persistent",
}

// BuildEntity creates an entity from a prefab file.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntityWith(w, prefabPath, nil)
}

// BuildEntityWith creates an entity from a prefab file with per-component
// overrides merged over the prefab. Switch components join the world's
// puzzle network, which is created if the world has none yet.
func BuildEntityWith(w *ecs.World, prefabPath string, overrides map[string]any) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	components := prefabs.MergeComponents(spec.Components, overrides)

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Network: EnsureNetwork(w)}

	if spec.Name != "" {
		_ = ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name})
	}

	remaining := make(map[string]any, len(components))
	for k, v := range components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

// EnsureNetwork returns the world's puzzle network resource, creating it on
// first use.
func EnsureNetwork(w *ecs.World) *component.PuzzleNetwork {
	if e, ok := ecs.First(w, component.PuzzleNetworkComponent.Kind()); ok {
		if res, ok := ecs.Get(w, e, component.PuzzleNetworkComponent.Kind()); ok && res.Network != nil {
			return res
		}
	}
	res := &component.PuzzleNetwork{
		Network: puzzle.NewNetwork(),
		Names:   make(map[string]uint64),
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.PuzzleNetworkComponent.Kind(), res)
	return res
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Rotation: spec.Rotation,
	})
}

func addTag(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TagComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode tag spec: %w", err)
	}
	return ecs.Add(w, e, component.TagComponent.Kind(), &component.Tag{Name: spec.Name})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Width <= 0 {
		spec.Width = 1
	}
	if spec.Height <= 0 {
		spec.Height = 1
	}
	if spec.Mass <= 0 {
		spec.Mass = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:          spec.Width,
		Height:         spec.Height,
		Mass:           spec.Mass,
		Friction:       spec.Friction,
		Static:         spec.Static,
		FreezeRotation: spec.FreezeRotation,
	})
}

func addGravityScale(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.GravityScaleComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity scale spec: %w", err)
	}
	return ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: spec.Scale})
}

func addStatus(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.StatusComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode status spec: %w", err)
	}
	if spec.MassMultiplier <= 0 {
		spec.MassMultiplier = 1
	}
	return ecs.Add(w, e, component.StatusComponent.Kind(), &component.Status{MassMultiplier: spec.MassMultiplier})
}

func addTriggerVolume(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TriggerVolumeComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode trigger volume spec: %w", err)
	}
	area := component.TriggerArea(strings.ToLower(spec.Area))
	switch area {
	case component.TriggerSwitch, component.TriggerGenerator, component.TriggerOccupancy, component.TriggerEnemy:
	default:
		return fmt.Errorf("unknown trigger area %q", spec.Area)
	}
	return ecs.Add(w, e, component.TriggerVolumeComponent.Kind(), &component.TriggerVolume{
		Area:    area,
		Width:   spec.Width,
		Height:  spec.Height,
		OffsetX: spec.OffsetX,
		OffsetY: spec.OffsetY,
	})
}

func addProjectile(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ProjectileComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode projectile spec: %w", err)
	}
	proj := &component.Projectile{Element: spec.Element, Sign: spec.Sign}
	if spec.ChargePercent != nil {
		proj.HasPayload = true
		proj.ChargePercent = *spec.ChargePercent
	}
	return ecs.Add(w, e, component.ProjectileComponent.Kind(), proj)
}

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TTLComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	if spec.Frames <= 0 {
		return nil
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: spec.Frames})
}

func addBulletSwitch(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	cfg, err := prefabs.OverlayComponentSpec(puzzle.DefaultBulletSwitchConfig(), raw)
	if err != nil {
		return fmt.Errorf("decode bullet switch spec: %w", err)
	}
	sw := puzzle.NewBulletSwitch(cfg, ctx.Network.Network.Clock())
	ctx.Network.Network.Add(sw)
	return ecs.Add(w, e, component.BulletSwitchComponent.Kind(), &component.BulletSwitch{Switch: sw})
}

func addGenerator(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	cfg, err := prefabs.OverlayComponentSpec(puzzle.DefaultGeneratorConfig(), raw)
	if err != nil {
		return fmt.Errorf("decode generator spec: %w", err)
	}
	if _, err := puzzle.ParseAccept(string(cfg.Accept)); err != nil {
		log.Printf("Entity: prefab=%s %v, using ice", ctx.PrefabPath, err)
	}
	gen := puzzle.NewElementalGenerator(cfg, ctx.Network.Network.Clock())
	ctx.Network.Network.Add(gen)
	return ecs.Add(w, e, component.GeneratorComponent.Kind(), &component.Generator{Generator: gen})
}

func addPressurePlate(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	cfg, err := prefabs.OverlayComponentSpec(puzzle.DefaultPlateConfig(), raw)
	if err != nil {
		return fmt.Errorf("decode pressure plate spec: %w", err)
	}
	plate := puzzle.NewPressurePlate(cfg)
	plate.SetAnchor(puzzle.ParentID(e))
	ctx.Network.Network.Add(plate)
	return ecs.Add(w, e, component.PressurePlateComponent.Kind(), &component.PressurePlate{Plate: plate})
}

func addRelay(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	cfg, err := prefabs.OverlayComponentSpec(puzzle.DefaultRelayConfig(), raw)
	if err != nil {
		return fmt.Errorf("decode relay spec: %w", err)
	}
	relay := puzzle.NewRelaySwitch(cfg)
	ctx.Network.Network.Add(relay)
	return ecs.Add(w, e, component.RelayComponent.Kind(), &component.Relay{Relay: relay})
}

func addGate(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	cfg, err := prefabs.OverlayComponentSpec(puzzle.DefaultGateConfig(), raw)
	if err != nil {
		return fmt.Errorf("decode gate spec: %w", err)
	}
	var gate *puzzle.SwitchGate
	if cfg.Mode == puzzle.GateSequential {
		gate = puzzle.NewSequentialGate(cfg)
	} else {
		gate = puzzle.NewSwitchGate(cfg)
	}
	ctx.Network.Network.Add(gate)
	return ecs.Add(w, e, component.GateComponent.Kind(), &component.Gate{Gate: gate})
}

func addDoor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.DoorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode door spec: %w", err)
	}
	return ecs.Add(w, e, component.DoorComponent.Kind(), &component.Door{
		OpenX:      spec.OpenX,
		OpenY:      spec.OpenY,
		OpenSpeed:  spec.OpenSpeed,
		CloseSpeed: spec.CloseSpeed,
	})
}

func addFountain(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.FountainComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode fountain spec: %w", err)
	}
	if spec.MaxHeight < spec.MinHeight {
		spec.MaxHeight = spec.MinHeight
	}
	return ecs.Add(w, e, component.FountainComponent.Kind(), &component.Fountain{
		MinHeight: spec.MinHeight,
		MaxHeight: spec.MaxHeight,
		RiseSpeed: spec.RiseSpeed,
		FallSpeed: spec.FallSpeed,
		Height:    spec.MinHeight,
	})
}

func addPersistent(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PersistentComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode persistent spec: %w", err)
	}
	if spec.ID == "" {
		return fmt.Errorf("persistent component needs an id")
	}
	return ecs.Add(w, e, component.PersistentComponent.Kind(), &component.Persistent{ID: spec.ID})
}
