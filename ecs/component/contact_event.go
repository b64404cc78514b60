package component

// TriggerArea tells the contact router which switch input a trigger volume
// feeds.
type TriggerArea string

const (
	TriggerSwitch    TriggerArea = "switch"
	TriggerGenerator TriggerArea = "generator"
	TriggerOccupancy TriggerArea = "occupancy"
	TriggerEnemy     TriggerArea = "enemy"
)

// TriggerVolume is a sensor box owned by a switch entity. Offsets are
// relative to the owner's transform.
type TriggerVolume struct {
	Area    TriggerArea
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

var TriggerVolumeComponent = NewComponent[TriggerVolume]()

// ContactEvent is a transient entity recording that Other started or stopped
// overlapping the trigger volume of Trigger. The contact system consumes and
// destroys it.
type ContactEvent struct {
	Trigger uint64
	Other   uint64
	Area    TriggerArea
	Enter   bool
}

var ContactEventComponent = NewComponent[ContactEvent]()

// Projectile is an elemental shot. Without a payload, generators apply their
// own per-hit charge.
type Projectile struct {
	Element       string
	HasPayload    bool
	ChargePercent float64
	Sign          int
}

var ProjectileComponent = NewComponent[Projectile]()

// BoopRequest is a transient entity asking for a melee boop on Target. A
// boop on an enemy is broadcast to every pressure plate; a boop on a bullet
// switch activates it directly.
type BoopRequest struct {
	Target uint64
	Pull   bool
}

var BoopRequestComponent = NewComponent[BoopRequest]()

// Status tracks the freeze applied to a collider. While frozen the body's
// mass is scaled by MassMultiplier. A negative FreezeRemaining freezes
// indefinitely.
type Status struct {
	Frozen          bool
	FreezeRemaining float64
	MassMultiplier  float64
}

var StatusComponent = NewComponent[Status]()
