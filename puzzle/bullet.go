package puzzle

// BulletSwitch is activated by tagged projectile contact. It either latches
// (activate tag sets, deactivate tag clears) or toggles on either tag.
type BulletSwitch struct {
	signal

	cfg           BulletSwitchConfig
	clock         *Clock
	guard         RetriggerGuard
	prerequisites Prerequisites

	deactivateClock float64
}

func NewBulletSwitch(cfg BulletSwitchConfig, clock *Clock, prerequisites ...Switch) *BulletSwitch {
	cfg = cfg.Normalize()
	return &BulletSwitch{
		cfg:           cfg,
		clock:         clock,
		guard:         RetriggerGuard{Cooldown: cfg.RetriggerCooldown},
		prerequisites: prerequisites,
	}
}

func (b *BulletSwitch) Config() BulletSwitchConfig {
	return b.cfg
}

// SetPrerequisites replaces the prerequisite list, used once wiring resolves.
func (b *BulletSwitch) SetPrerequisites(p ...Switch) {
	b.prerequisites = p
}

// DeactivateCountdown reports the seconds left before auto deactivation.
func (b *BulletSwitch) DeactivateCountdown() float64 {
	if !b.cfg.AutoDeactivate || !b.current() {
		return 0
	}
	return b.deactivateClock
}

// OnTriggerContact handles a projectile or body entering the switch.
func (b *BulletSwitch) OnTriggerContact(tag string) {
	switch {
	case b.cfg.ActivateTag != "" && tag == b.cfg.ActivateTag:
		b.try(true)
	case b.cfg.DeactivateTag != "" && tag == b.cfg.DeactivateTag:
		b.try(false)
	default:
		return
	}
	b.Publish()
}

// ActivateExtern activates the switch on behalf of another system,
// bypassing the tag filter.
func (b *BulletSwitch) ActivateExtern() {
	b.try(true)
	b.Publish()
}

// DeactivateExtern deactivates the switch on behalf of another system.
func (b *BulletSwitch) DeactivateExtern() {
	b.try(false)
	b.Publish()
}

// Boop activates the switch from a melee boop when allowed.
func (b *BulletSwitch) Boop() {
	if !b.cfg.AllowBoop {
		return
	}
	b.ActivateExtern()
}

func (b *BulletSwitch) Tick(dt float64) {
	if b.cfg.AutoDeactivate && b.current() && b.deactivateClock > 0 {
		b.deactivateClock -= dt
		if b.deactivateClock <= 0 {
			b.deactivateClock = 0
			b.set(false)
		}
	}

	if b.cfg.Sequential && b.current() && !b.prerequisites.Met() {
		b.set(false)
	}
}

func (b *BulletSwitch) Publish() {
	b.publish()
}

func (b *BulletSwitch) try(activate bool) {
	if !b.guard.Allow(b.clock) {
		return
	}

	if b.cfg.Toggleable {
		b.apply(!b.current())
		return
	}
	b.apply(activate)
}

func (b *BulletSwitch) apply(v bool) {
	defer b.guard.Touch(b.clock)

	if v && b.cfg.Sequential && !b.prerequisites.Met() {
		return
	}
	if v && b.cfg.AutoDeactivate {
		b.deactivateClock = b.cfg.DeactivateDelay
	}
	b.set(v)
}
