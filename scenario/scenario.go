// Package scenario drives a simulated level from a tengo script. Scripts get
// an engine map of host functions to fire projectiles, boop enemies, advance
// time and check switch, gate and actuator state.
package scenario

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
	"github.com/milk9111/switchboard/ecs/entity"
	"github.com/milk9111/switchboard/prefabs"
	"github.com/milk9111/switchboard/puzzle"
	"github.com/milk9111/switchboard/sim"
)

// maxFramesPerCall bounds a single step or seconds call.
const maxFramesPerCall = 100000

// Result summarizes a script run.
type Result struct {
	Frames   int
	Checks   int
	Failures []string
	// Edges counts switch and gate edges by entity name.
	Edges map[string]int
}

func (r *Result) Passed() bool {
	return r != nil && len(r.Failures) == 0
}

type Runner struct {
	sim    *sim.Sim
	result *Result
}

func NewRunner(s *sim.Sim) *Runner {
	return &Runner{sim: s}
}

// RunScript runs a script from prefabs/scripts.
func (r *Runner) RunScript(ctx context.Context, name string) (*Result, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", name, err)
	}
	return r.Run(ctx, src)
}

// Run compiles and runs src. Failed expectations are reported in the result;
// script and host errors are returned.
func (r *Runner) Run(ctx context.Context, src []byte) (*Result, error) {
	if r.sim == nil {
		return nil, fmt.Errorf("scenario: sim is nil")
	}
	r.result = &Result{Edges: make(map[string]int)}
	start := r.sim.Frames()

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("engine", r.engine()); err != nil {
		return nil, err
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scenario: compile: %w", err)
	}
	err = compiled.RunContext(ctx)
	r.result.Frames = r.sim.Frames() - start
	if err != nil {
		return r.result, fmt.Errorf("scenario: run: %w", err)
	}
	return r.result, nil
}

func (r *Runner) engine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	fn := func(name string, f tengo.CallableFunc) {
		values[name] = &tengo.UserFunction{Name: name, Value: f}
	}

	fn("step", func(args ...tengo.Object) (tengo.Object, error) {
		n := 1
		if len(args) > 0 {
			v, ok := tengo.ToInt(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "frames", Expected: "int", Found: args[0].TypeName()}
			}
			n = v
		}
		return tengo.UndefinedValue, r.advance(n)
	})

	fn("seconds", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		secs, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "seconds", Expected: "float", Found: args[0].TypeName()}
		}
		return tengo.UndefinedValue, r.advance(int(math.Ceil(secs/r.sim.StepSeconds() - 1e-9)))
	})

	fn("shoot", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 && len(args) != 4 {
			return nil, tengo.ErrWrongNumArguments
		}
		target, err := r.entityArg(args[0])
		if err != nil {
			return nil, err
		}
		element := strings.ToLower(objectAsString(args[1]))
		var payload *puzzle.ChargePayload
		if len(args) == 4 {
			percent, _ := tengo.ToFloat64(args[2])
			sign, _ := tengo.ToInt(args[3])
			payload = &puzzle.ChargePayload{Percent: percent, Sign: sign}
		}
		x, y := r.aimPoint(target)
		if _, err := entity.NewProjectileAt(r.sim.World, puzzle.Element(element), x, y, payload); err != nil {
			return nil, err
		}
		return tengo.UndefinedValue, nil
	})

	boop := func(pull bool) tengo.CallableFunc {
		return func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			target, err := r.entityArg(args[0])
			if err != nil {
				return nil, err
			}
			e := ecs.CreateEntity(r.sim.World)
			_ = ecs.Add(r.sim.World, e, component.BoopRequestComponent.Kind(), &component.BoopRequest{Target: uint64(target), Pull: pull})
			return tengo.UndefinedValue, nil
		}
	}
	fn("boop", boop(false))
	fn("pull", boop(true))

	fn("move", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		target, err := r.entityArg(args[0])
		if err != nil {
			return nil, err
		}
		x, _ := tengo.ToFloat64(args[1])
		y, _ := tengo.ToFloat64(args[2])
		r.teleport(target, x, y)
		return tengo.UndefinedValue, nil
	})

	fn("spawn", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 4 {
			return nil, tengo.ErrWrongNumArguments
		}
		kind := entity.SpawnKind(strings.ToLower(objectAsString(args[0])))
		name := objectAsString(args[1])
		x, _ := tengo.ToFloat64(args[2])
		y, _ := tengo.ToFloat64(args[3])
		if _, err := entity.Spawn(r.sim.World, kind, name, x, y); err != nil {
			return nil, fmt.Errorf("scenario: %w", err)
		}
		return tengo.UndefinedValue, nil
	})

	fn("active", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		target, err := r.entityArg(args[0])
		if err != nil {
			return nil, err
		}
		sw := entity.SwitchOf(r.sim.World, target)
		if sw == nil {
			return nil, fmt.Errorf("scenario: %s is not a switch", objectAsString(args[0]))
		}
		return boolObject(sw.IsActivated()), nil
	})

	fn("open", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		target, err := r.entityArg(args[0])
		if err != nil {
			return nil, err
		}
		if g, ok := ecs.Get(r.sim.World, target, component.GateComponent.Kind()); ok {
			return boolObject(g.Gate.IsOpen()), nil
		}
		if d, ok := ecs.Get(r.sim.World, target, component.DoorComponent.Kind()); ok {
			return boolObject(d.IsOpen), nil
		}
		return nil, fmt.Errorf("scenario: %s is neither a gate nor a door", objectAsString(args[0]))
	})

	fn("charge", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		target, err := r.entityArg(args[0])
		if err != nil {
			return nil, err
		}
		w := r.sim.World
		if c, ok := ecs.Get(w, target, component.GeneratorComponent.Kind()); ok {
			return &tengo.Float{Value: c.Generator.ChargePercent()}, nil
		}
		if c, ok := ecs.Get(w, target, component.PressurePlateComponent.Kind()); ok {
			return &tengo.Float{Value: c.Plate.ChargePercent()}, nil
		}
		if c, ok := ecs.Get(w, target, component.RelayComponent.Kind()); ok {
			return &tengo.Float{Value: c.Relay.Fill() * puzzle.MaxCharge}, nil
		}
		return nil, fmt.Errorf("scenario: %s has no charge", objectAsString(args[0]))
	})

	fn("position", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		target, err := r.entityArg(args[0])
		if err != nil {
			return nil, err
		}
		t, ok := ecs.Get(r.sim.World, target, component.TransformComponent.Kind())
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.ImmutableArray{Value: []tengo.Object{&tengo.Float{Value: t.X}, &tengo.Float{Value: t.Y}}}, nil
	})

	fn("fountain", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		target, err := r.entityArg(args[0])
		if err != nil {
			return nil, err
		}
		f, ok := ecs.Get(r.sim.World, target, component.FountainComponent.Kind())
		if !ok {
			return nil, fmt.Errorf("scenario: %s is not a fountain", objectAsString(args[0]))
		}
		return &tengo.Float{Value: f.Height}, nil
	})

	fn("frozen", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		target, err := r.entityArg(args[0])
		if err != nil {
			return nil, err
		}
		st, ok := ecs.Get(r.sim.World, target, component.StatusComponent.Kind())
		return boolObject(ok && st.Frozen), nil
	})

	fn("edges", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		return &tengo.Int{Value: int64(r.result.Edges[objectAsString(args[0])])}, nil
	})

	fn("expect", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		r.result.Checks++
		if !args[0].IsFalsy() {
			return tengo.TrueValue, nil
		}
		msg := "expectation failed"
		if len(args) > 1 {
			msg = objectAsString(args[1])
		}
		msg = fmt.Sprintf("frame %d: %s", r.sim.Frames(), msg)
		r.result.Failures = append(r.result.Failures, msg)
		log.Printf("Scenario: FAIL %s", msg)
		return tengo.FalseValue, nil
	})

	fn("log", func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("Scenario: %s", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	})

	fn("reload", func(args ...tengo.Object) (tengo.Object, error) {
		return tengo.UndefinedValue, r.sim.Reload()
	})

	return &tengo.ImmutableMap{Value: values}
}

func (r *Runner) advance(n int) error {
	if n < 0 || n > maxFramesPerCall {
		return fmt.Errorf("scenario: frame count %d out of range", n)
	}
	for i := 0; i < n; i++ {
		if err := r.sim.Step(); err != nil {
			return err
		}
		for _, evt := range r.sim.Events() {
			if changed, ok := evt.Data.(ecs.SwitchChanged); ok {
				r.result.Edges[changed.Name]++
			}
		}
	}
	return nil
}

func (r *Runner) entityArg(obj tengo.Object) (ecs.Entity, error) {
	name := objectAsString(obj)
	e, ok := r.sim.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("scenario: unknown entity %q", name)
	}
	return e, nil
}

// aimPoint is the center of the target's trigger volume, or its position.
func (r *Runner) aimPoint(e ecs.Entity) (float64, float64) {
	w := r.sim.World
	var x, y float64
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		x, y = t.X, t.Y
	}
	if vol, ok := ecs.Get(w, e, component.TriggerVolumeComponent.Kind()); ok {
		x += vol.OffsetX
		y += vol.OffsetY
	}
	return x, y
}

func (r *Runner) teleport(e ecs.Entity, x, y float64) {
	w := r.sim.World
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X, t.Y = x, y
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil && !body.Static {
		body.Body.SetPosition(cp.Vector{X: x, Y: y})
		body.Body.SetVelocity(0, 0)
	}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
