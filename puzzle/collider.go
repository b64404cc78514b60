package puzzle

// ChargePayload overrides the per-hit charge of a projectile. A negative
// Percent keeps the generator's default magnitude; a negative Sign drains.
type ChargePayload struct {
	Percent float64 `yaml:"percent"`
	Sign    int     `yaml:"sign"`
}

// Projectile describes an elemental hit on a generator.
type Projectile struct {
	Element Element
	Payload *ChargePayload
}

// Delta is the signed charge change of the hit given the generator default.
func (p Projectile) Delta(perHit float64) float64 {
	magnitude, sign := perHit, 1.0
	if p.Payload != nil {
		if p.Payload.Percent >= 0 {
			magnitude = p.Payload.Percent
		}
		if p.Payload.Sign < 0 {
			sign = -1
		}
	}
	return magnitude * sign
}

// ColliderID identifies a body reported by the physics collaborator.
type ColliderID uint64

// ParentID identifies a transform parent. Zero means no parent.
type ParentID uint64

// Constraints are the physics axes frozen on a body.
type Constraints struct {
	FreezeX        bool
	FreezeY        bool
	FreezeRotation bool
}

// FreezeAll locks every axis.
var FreezeAll = Constraints{FreezeX: true, FreezeY: true, FreezeRotation: true}

// Body is the physics handle a plate needs to capture a collider.
type Body interface {
	Constraints() Constraints
	SetConstraints(Constraints)
	GravityScale() float64
	SetGravityScale(float64)
	Parent() ParentID
	SetParent(ParentID)
	// Stop zeroes linear and angular velocity.
	Stop()
}

// Status is the freeze surface of a body's health/status component.
type Status interface {
	IsFrozen() bool
	ApplyFreeze(seconds float64)
	ClearFreeze()
}

// Collider is a body overlapping a trigger volume. Body and Status are nil
// for colliders without physics or health.
type Collider struct {
	ID     ColliderID
	Tag    string
	Mass   float64
	Body   Body
	Status Status
}
