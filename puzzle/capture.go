package puzzle

import (
	"log"
	"math"

	"github.com/oklog/ulid/v2"
)

// CapturedBody is the pre-capture physics snapshot of a body held by a plate.
type CapturedBody struct {
	ID       ulid.ULID
	Collider *Collider

	constraints  Constraints
	gravityScale float64
	parent       ParentID
}

// Snapshot returns the state that will be restored on release.
func (cb *CapturedBody) Snapshot() (Constraints, float64, ParentID) {
	return cb.constraints, cb.gravityScale, cb.parent
}

// captureBody stops and freezes c, optionally parenting it to anchor.
// freezeSeconds of zero freezes until release.
func captureBody(c *Collider, anchor ParentID, reparent bool, freezeSeconds float64) *CapturedBody {
	cb := &CapturedBody{ID: ulid.Make(), Collider: c}

	if body := c.Body; body != nil {
		cb.constraints = body.Constraints()
		cb.gravityScale = body.GravityScale()
		cb.parent = body.Parent()

		body.Stop()
		body.SetConstraints(FreezeAll)
		body.SetGravityScale(0)
		if reparent && anchor != 0 {
			body.SetParent(anchor)
		}
	}

	if c.Status != nil {
		if freezeSeconds <= 0 {
			freezeSeconds = math.Inf(1)
		}
		c.Status.ApplyFreeze(freezeSeconds)
	}

	log.Printf("PressurePlate: captured collider=%d capture=%s", c.ID, cb.ID)
	return cb
}

func (cb *CapturedBody) release(reason string) {
	c := cb.Collider
	if body := c.Body; body != nil {
		body.SetConstraints(cb.constraints)
		body.SetGravityScale(cb.gravityScale)
		body.SetParent(cb.parent)
	}
	if c.Status != nil {
		c.Status.ClearFreeze()
	}
	log.Printf("PressurePlate: released collider=%d capture=%s reason=%s", c.ID, cb.ID, reason)
}
