package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/switchboard/common"
	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeTrigger
)

// PhysicsSystem mirrors physics bodies and trigger volumes into a Chipmunk
// space, steps it, and turns sensor overlaps into ContactEvent entities.
type PhysicsSystem struct {
	space         *cp.Space
	dt            float64
	handlersReady bool

	bodies        map[ecs.Entity]*bodyInfo
	triggers      map[ecs.Entity]*cp.Shape
	bodyShapes    map[*cp.Shape]ecs.Entity
	triggerShapes map[*cp.Shape]triggerInfo

	pending []component.ContactEvent
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool

	gravityScale   float64
	freezeX        bool
	freezeY        bool
	freezeRotation bool
}

type triggerInfo struct {
	entity ecs.Entity
	area   component.TriggerArea
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	if dt <= 0 {
		dt = common.FixedStep
	}
	ps := &PhysicsSystem{dt: dt}
	ps.reset()
	return ps
}

func (ps *PhysicsSystem) reset() {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: common.Gravity})
	ps.space = space
	ps.handlersReady = false
	ps.bodies = make(map[ecs.Entity]*bodyInfo)
	ps.triggers = make(map[ecs.Entity]*cp.Shape)
	ps.bodyShapes = make(map[*cp.Shape]ecs.Entity)
	ps.triggerShapes = make(map[*cp.Shape]triggerInfo)
	ps.pending = nil
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Reset drops every body and trigger, used when the level is rebuilt into a
// fresh world.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	ps.reset()
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncBodies(w)
	ps.syncTriggers(w)

	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}
	ps.handlersReady = true

	handler := ps.space.NewCollisionHandler(collisionTypeBody, collisionTypeTrigger)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		ps.recordContact(arb, true)
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		ps.recordContact(arb, false)
	}
}

func (ps *PhysicsSystem) recordContact(arb *cp.Arbiter, enter bool) {
	a, b := arb.Shapes()
	trig, ok := ps.triggerShapes[b]
	other, okOther := ps.bodyShapes[a]
	if !ok || !okOther {
		trig, ok = ps.triggerShapes[a]
		other, okOther = ps.bodyShapes[b]
	}
	if !ok || !okOther {
		return
	}
	ps.pending = append(ps.pending, component.ContactEvent{
		Trigger: uint64(trig.entity),
		Other:   uint64(other),
		Area:    trig.area,
		Enter:   enter,
	})
}

func (ps *PhysicsSystem) syncBodies(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		info := ps.bodies[e]
		if info == nil {
			info = ps.createBodyInfo(*transform, *bodyComp)
			ps.bodies[e] = info
			ps.bodyShapes[info.shape] = e
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
		}

		info.freezeX = bodyComp.FreezeX
		info.freezeY = bodyComp.FreezeY
		info.freezeRotation = bodyComp.FreezeRotation
		info.gravityScale = 1
		if gs, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
			info.gravityScale = gs.Scale
		}
	})
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}

	info := &bodyInfo{static: bodyComp.Static, gravityScale: 1}

	if bodyComp.Static {
		bb := cp.BB{
			L: transform.X - width/2,
			B: transform.Y - height/2,
			R: transform.X + width/2,
			T: transform.Y + height/2,
		}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetCollisionType(collisionTypeBody)
		ps.space.AddShape(shape)
		info.body = ps.space.StaticBody
		info.shape = shape
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
	body.SetAngle(transform.Rotation)
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(b, gravity.Mult(info.gravityScale), damping, dt)
		v := b.Velocity()
		if info.freezeX {
			v.X = 0
		}
		if info.freezeY {
			v.Y = 0
		}
		b.SetVelocityVector(v)
		if info.freezeRotation {
			b.SetAngularVelocity(0)
		}
	})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetCollisionType(collisionTypeBody)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.shape = shape
	return info
}

func (ps *PhysicsSystem) syncTriggers(w *ecs.World) {
	ecs.ForEach2(w, component.TriggerVolumeComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, vol *component.TriggerVolume, transform *component.Transform) {
		if _, ok := ps.triggers[e]; ok {
			return
		}
		width, height := vol.Width, vol.Height
		if width <= 0 || height <= 0 {
			width, height = 1, 1
		}
		cx := transform.X + vol.OffsetX
		cy := transform.Y + vol.OffsetY
		bb := cp.BB{L: cx - width/2, B: cy - height/2, R: cx + width/2, T: cy + height/2}

		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeTrigger)
		ps.space.AddShape(shape)

		ps.triggers[e] = shape
		ps.triggerShapes[shape] = triggerInfo{entity: e, area: vol.Area}
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Static || bodyComp.Body == nil {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = bodyComp.Body.Angle()
	})
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	for i := range ps.pending {
		evt := ps.pending[i]
		e := ecs.CreateEntity(w)
		_ = ecs.Add(w, e, component.ContactEventComponent.Kind(), &evt)
	}
	ps.pending = ps.pending[:0]
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.bodies {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		// separate callbacks fired by removal still need the shape lookup
		ps.space.RemoveShape(info.shape)
		if !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.bodyShapes, info.shape)
		delete(ps.bodies, e)
	}

	for e, shape := range ps.triggers {
		if w.IsAlive(e) && ecs.Has(w, e, component.TriggerVolumeComponent.Kind()) {
			continue
		}
		ps.space.RemoveShape(shape)
		delete(ps.triggerShapes, shape)
		delete(ps.triggers, e)
	}
}
