package puzzle

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/milk9111/switchboard/common"
)

const (
	stateInactive = "inactive"
	stateActive   = "active"

	eventActivate   = "activate"
	eventDeactivate = "deactivate"
)

const MaxCharge = 100.0

// ChargeState is a 0..100 accumulator with hysteretic activation: it
// activates once the charge reaches ActivationPercent and only deactivates
// after the charge falls strictly below DeactivationPercent.
type ChargeState struct {
	thresholds Thresholds
	charge     float64
	machine    *fsm.FSM
}

func NewChargeState(t Thresholds, charge float64, active bool) *ChargeState {
	initial := stateInactive
	if active {
		initial = stateActive
	}
	return &ChargeState{
		thresholds: t.Normalize(),
		charge:     common.Clamp(charge, 0, MaxCharge),
		machine: fsm.NewFSM(
			initial,
			fsm.Events{
				{Name: eventActivate, Src: []string{stateInactive}, Dst: stateActive},
				{Name: eventDeactivate, Src: []string{stateActive}, Dst: stateInactive},
			},
			fsm.Callbacks{},
		),
	}
}

func (c *ChargeState) Charge() float64 {
	return c.charge
}

func (c *ChargeState) SetCharge(v float64) {
	c.charge = common.Clamp(v, 0, MaxCharge)
}

func (c *ChargeState) Add(delta float64) {
	c.SetCharge(c.charge + delta)
}

func (c *ChargeState) Thresholds() Thresholds {
	return c.thresholds
}

func (c *ChargeState) Active() bool {
	return c.machine.Is(stateActive)
}

// Evaluate applies the hysteresis rule to the current charge. When
// allowActivate is false the state can still fall to inactive but never
// rise. It reports the resulting state.
func (c *ChargeState) Evaluate(allowActivate bool) bool {
	if c.Active() {
		if c.charge < c.thresholds.Deactivation {
			c.fire(eventDeactivate)
		}
		return c.Active()
	}
	if allowActivate && c.charge >= c.thresholds.Activation {
		c.fire(eventActivate)
	}
	return c.Active()
}

// ForceReset drops the charge to zero and the state to inactive regardless
// of thresholds.
func (c *ChargeState) ForceReset() {
	c.charge = 0
	if c.Active() {
		c.fire(eventDeactivate)
	}
}

// Deactivate drops the state to inactive and keeps the charge.
func (c *ChargeState) Deactivate() {
	if c.Active() {
		c.fire(eventDeactivate)
	}
}

func (c *ChargeState) fire(event string) {
	if !c.machine.Can(event) {
		return
	}
	// transitions between two fixed states never fail once Can passed
	_ = c.machine.Event(context.Background(), event)
}
