package puzzle

import (
	"github.com/milk9111/switchboard/common"
)

// ElementalGenerator accumulates charge from accepted elemental hits and
// activates hysteretically between its thresholds.
//
// With a full charge duration of zero every hit lands immediately. Otherwise
// hits move a target and the visible charge follows it linearly, taking the
// full duration to cross the whole 0..100 range.
type ElementalGenerator struct {
	signal

	cfg           GeneratorConfig
	clock         *Clock
	guard         RetriggerGuard
	prerequisites Prerequisites

	state  *ChargeState
	target float64
}

func NewElementalGenerator(cfg GeneratorConfig, clock *Clock, prerequisites ...Switch) *ElementalGenerator {
	cfg = cfg.Normalize()

	start, active := 0.0, false
	if cfg.Reverse {
		start, active = MaxCharge, true
	}

	g := &ElementalGenerator{
		cfg:           cfg,
		clock:         clock,
		guard:         RetriggerGuard{Cooldown: cfg.RetriggerCooldown},
		prerequisites: prerequisites,
		state:         NewChargeState(cfg.Thresholds, start, active),
		target:        start,
	}
	g.reset(active)
	return g
}

func (g *ElementalGenerator) Config() GeneratorConfig {
	return g.cfg
}

func (g *ElementalGenerator) SetPrerequisites(p ...Switch) {
	g.prerequisites = p
}

// ChargePercent is the visible charge in [0,100].
func (g *ElementalGenerator) ChargePercent() float64 {
	return g.state.Charge()
}

// TargetChargePercent is the charge the visible value is moving toward.
func (g *ElementalGenerator) TargetChargePercent() float64 {
	return g.target
}

// LineFill splits the charge across n progress segments, each in [0,1].
func (g *ElementalGenerator) LineFill(n int) []float64 {
	return lineFill(g.state.Charge()/MaxCharge, n)
}

// OnProjectileHit applies an elemental hit and reports whether it was
// accepted.
func (g *ElementalGenerator) OnProjectileHit(p Projectile) bool {
	if !g.guard.Allow(g.clock) {
		return false
	}
	if !g.cfg.Accept.Accepts(p.Element) {
		return false
	}
	if g.cfg.Sequential && !g.prerequisites.Met() {
		return false
	}

	g.target = common.Clamp(g.target+p.Delta(g.cfg.PerHitChargePercent), 0, MaxCharge)
	if g.cfg.FullChargeDuration <= 0 {
		g.state.SetCharge(g.target)
		g.evaluate()
	}

	g.guard.Touch(g.clock)
	g.Publish()
	return true
}

func (g *ElementalGenerator) Tick(dt float64) {
	if g.cfg.Sequential && !g.prerequisites.Met() {
		g.prerequisiteLost()
		return
	}

	if g.cfg.DecayPerSecond > 0 && g.target > 0 {
		g.target = common.Clamp(g.target-g.cfg.DecayPerSecond*dt, 0, MaxCharge)
		if g.cfg.FullChargeDuration <= 0 {
			g.state.SetCharge(g.target)
		}
	}

	if g.cfg.FullChargeDuration > 0 {
		charge := g.state.Charge()
		if common.Approximately(charge, g.target) {
			charge = g.target
		} else {
			charge = common.MoveTowards(charge, g.target, MaxCharge/g.cfg.FullChargeDuration*dt)
		}
		g.state.SetCharge(charge)
	}

	g.evaluate()
}

func (g *ElementalGenerator) Publish() {
	g.publish()
}

func (g *ElementalGenerator) evaluate() {
	allow := !g.cfg.Sequential || g.prerequisites.Met()
	g.set(g.state.Evaluate(allow))
}

// prerequisiteLost deactivates and, when configured, drains both the visible
// and target charge in the same tick so only one edge is published.
func (g *ElementalGenerator) prerequisiteLost() {
	if g.cfg.DrainOnPrerequisiteLost {
		g.state.ForceReset()
		g.target = 0
	} else {
		g.state.Deactivate()
	}
	g.set(false)
}

func lineFill(t float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	t = common.Clamp01(t)
	out := make([]float64, n)
	scaled := t * float64(n)
	for i := range out {
		out[i] = common.Clamp01(scaled - float64(i))
	}
	return out
}
