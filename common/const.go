package common

const (
	// FixedStep is the simulation step in seconds.
	FixedStep = 1.0 / 60.0
	// Gravity is the downward acceleration in world units per second squared.
	Gravity = 30.0
)
