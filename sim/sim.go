// Package sim runs a puzzle level headlessly: it owns the ECS world built
// from a level and the fixed order of systems stepping it.
package sim

import (
	"fmt"
	"log"

	"github.com/milk9111/switchboard/common"
	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
	"github.com/milk9111/switchboard/ecs/entity"
	"github.com/milk9111/switchboard/ecs/system"
	"github.com/milk9111/switchboard/levels"
)

type Options struct {
	// Level is the level name under levels/, with or without .json.
	Level string
	// Store keeps gate progress between runs. Nil disables persistence.
	Store system.SaveStore
	// Step is the fixed frame time in seconds.
	Step float64
}

// Sim steps one level. Reload rebuilds the world from the level file while
// keeping the frame counter and the save store.
type Sim struct {
	World *ecs.World
	Level *levels.Level

	opts        Options
	frames      int
	physics     *system.PhysicsSystem
	persistence *system.PersistenceSystem
	scheduler   *ecs.Scheduler
}

func New(opts Options) (*Sim, error) {
	if opts.Level == "" {
		return nil, fmt.Errorf("sim: level is empty")
	}
	if opts.Step <= 0 {
		opts.Step = common.FixedStep
	}
	s := &Sim{
		opts:    opts,
		physics: system.NewPhysicsSystem(opts.Step),
	}
	if opts.Store != nil {
		s.persistence = system.NewPersistenceSystem(opts.Store, "")
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rebuilds the world from the level file.
func (s *Sim) Reload() error {
	lvl, err := levels.LoadLevel(s.opts.Level)
	if err != nil {
		return fmt.Errorf("sim: load level %q: %w", s.opts.Level, err)
	}

	w := ecs.NewWorld()
	res := entity.EnsureNetwork(w)
	res.Step = s.opts.Step
	if err := entity.LoadLevelToWorld(w, lvl); err != nil {
		return fmt.Errorf("sim: build level %q: %w", lvl.Name, err)
	}

	s.physics.Reset()
	s.persistence.Reset(lvl.Name)

	s.World = w
	s.Level = lvl
	s.scheduler = ecs.NewScheduler(
		system.NewBoopSystem(),
		s.physics,
		system.NewContactSystem(),
		system.NewSwitchSystem(),
		system.NewStatusSystem(s.opts.Step),
		system.NewHierarchySystem(),
		system.NewDoorSystem(s.opts.Step),
		system.NewFountainSystem(s.opts.Step),
		system.NewTTLSystem(),
	)
	if s.persistence != nil {
		s.scheduler.Add(s.persistence)
	}
	log.Printf("Sim: loaded level=%s entities=%d", lvl.Name, len(lvl.Entities))
	return nil
}

// Step advances one frame. A pending ReloadRequest rebuilds the level once
// the frame is done.
func (s *Sim) Step() error {
	s.scheduler.Update(s.World)
	s.frames++

	if e, ok := ecs.First(s.World, component.ReloadRequestComponent.Kind()); ok {
		req, _ := ecs.Get(s.World, e, component.ReloadRequestComponent.Kind())
		log.Printf("Sim: reload requested path=%s", req.Path)
		return s.Reload()
	}
	return nil
}

// Run advances n frames, stopping at the first reload error.
func (s *Sim) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RequestReload queues a level rebuild for the end of the next frame.
func (s *Sim) RequestReload(path string) {
	e := ecs.CreateEntity(s.World)
	_ = ecs.Add(s.World, e, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{Path: path})
}

func (s *Sim) Frames() int {
	return s.frames
}

func (s *Sim) StepSeconds() float64 {
	return s.opts.Step
}

// Lookup finds a level entity by name.
func (s *Sim) Lookup(name string) (ecs.Entity, bool) {
	res := entity.EnsureNetwork(s.World)
	id, ok := res.Names[name]
	if !ok || !s.World.IsAlive(ecs.Entity(id)) {
		return 0, false
	}
	return ecs.Entity(id), true
}

// Events drains the switch, gate and capture events raised so far.
func (s *Sim) Events() []ecs.Event {
	return s.World.Events().Drain()
}
