package system

import (
	"github.com/milk9111/switchboard/common"
	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
)

// DoorSystem slides doors between their closed and open positions.
type DoorSystem struct {
	dt float64
}

func NewDoorSystem(dt float64) *DoorSystem {
	if dt <= 0 {
		dt = common.FixedStep
	}
	return &DoorSystem{dt: dt}
}

func (s *DoorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.DoorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, door *component.Door, transform *component.Transform) {
		if !door.Initialized {
			door.ClosedX = transform.X
			door.ClosedY = transform.Y
			door.Initialized = true
		}

		goalX, goalY := door.ClosedX, door.ClosedY
		speed := door.CloseSpeed
		if door.IsOpen {
			goalX += door.OpenX
			goalY += door.OpenY
			speed = door.OpenSpeed
		}
		transform.X, transform.Y = common.MoveTowards2(transform.X, transform.Y, goalX, goalY, speed*s.dt)
	})
}

// FountainSystem raises and lowers fountain water columns.
type FountainSystem struct {
	dt float64
}

func NewFountainSystem(dt float64) *FountainSystem {
	if dt <= 0 {
		dt = common.FixedStep
	}
	return &FountainSystem{dt: dt}
}

func (s *FountainSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.FountainComponent.Kind(), func(e ecs.Entity, f *component.Fountain) {
		if f.Active {
			f.Height = common.MoveTowards(f.Height, f.MaxHeight, f.RiseSpeed*s.dt)
			return
		}
		f.Height = common.MoveTowards(f.Height, f.MinHeight, f.FallSpeed*s.dt)
	})
}
