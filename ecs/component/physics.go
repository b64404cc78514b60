package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// The Freeze flags lock the matching velocity axes every physics step.
type PhysicsBody struct {
	Body           *cp.Body
	Shape          *cp.Shape
	Width          float64
	Height         float64
	Mass           float64
	Friction       float64
	Static         bool
	FreezeX        bool
	FreezeY        bool
	FreezeRotation bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
