package puzzle

import "testing"

func ice() Projectile {
	return Projectile{Element: ElementIce}
}

func TestGeneratorHysteresisScenario(t *testing.T) {
	net := NewNetwork()
	cfg := DefaultGeneratorConfig()
	cfg.Accept = AcceptAny
	g := NewElementalGenerator(cfg, net.Clock())
	net.Add(g)
	rec := record(t, g)

	for i := 0; i < 4; i++ {
		if !g.OnProjectileHit(ice()) {
			t.Fatalf("hit %d rejected", i)
		}
		if i < 3 && g.IsActivated() {
			t.Fatalf("activated early after hit %d at %v%%", i, g.ChargePercent())
		}
		net.Step(0.25)
	}
	if !g.IsActivated() || g.ChargePercent() != 100 {
		t.Fatalf("expected activation at 100%%, got active=%v charge=%v", g.IsActivated(), g.ChargePercent())
	}

	// decay is configured after the fact to drive the charge down one percent
	// per second
	g.cfg.DecayPerSecond = 1
	for g.ChargePercent() > 81 {
		net.Step(1)
	}
	if !g.IsActivated() {
		t.Fatalf("81%% is above deactivation and must stay active")
	}
	net.Step(1)
	net.Step(1)
	if g.ChargePercent() != 79 || g.IsActivated() {
		t.Fatalf("expected inactive at 79%%, got active=%v charge=%v", g.IsActivated(), g.ChargePercent())
	}

	g.cfg.DecayPerSecond = 0
	g.OnProjectileHit(Projectile{Element: ElementIce, Payload: &ChargePayload{Percent: 2}})
	if g.ChargePercent() != 81 || g.IsActivated() {
		t.Fatalf("81%% after deactivation must not reactivate, got active=%v charge=%v", g.IsActivated(), g.ChargePercent())
	}

	if rec.count() != 2 {
		t.Fatalf("expected exactly 2 edges, got %v", rec.edges)
	}
}

func TestGeneratorAcceptFilter(t *testing.T) {
	cases := []struct {
		accept  Accept
		element Element
		want    bool
	}{
		{AcceptIce, ElementIce, true},
		{AcceptIce, ElementFire, false},
		{AcceptFire, ElementFire, true},
		{AcceptFire, ElementNone, false},
		{AcceptAny, ElementFire, true},
	}

	for _, c := range cases {
		t.Run(string(c.accept)+"_"+string(c.element), func(t *testing.T) {
			cfg := DefaultGeneratorConfig()
			cfg.Accept = c.accept
			g := NewElementalGenerator(cfg, NewClock())
			if got := g.OnProjectileHit(Projectile{Element: c.element}); got != c.want {
				t.Fatalf("expected accepted=%v, got %v", c.want, got)
			}
		})
	}
}

func TestGeneratorSameFrameHitsCountOnce(t *testing.T) {
	g := NewElementalGenerator(DefaultGeneratorConfig(), NewClock())
	g.OnProjectileHit(ice())
	g.OnProjectileHit(ice())
	if g.ChargePercent() != 25 {
		t.Fatalf("expected one hit to land, charge=%v", g.ChargePercent())
	}
}

func TestGeneratorNegativePayloadDrains(t *testing.T) {
	clock := NewClock()
	g := NewElementalGenerator(DefaultGeneratorConfig(), clock)
	g.OnProjectileHit(Projectile{Element: ElementIce, Payload: &ChargePayload{Percent: 60, Sign: 1}})
	clock.Advance(1)
	g.OnProjectileHit(Projectile{Element: ElementIce, Payload: &ChargePayload{Percent: -1, Sign: -1}})
	if g.ChargePercent() != 35 {
		t.Fatalf("expected 60-25=35, got %v", g.ChargePercent())
	}
	clock.Advance(1)
	g.OnProjectileHit(Projectile{Element: ElementIce, Payload: &ChargePayload{Percent: 90, Sign: -1}})
	if g.ChargePercent() != 0 {
		t.Fatalf("expected charge clamped at 0, got %v", g.ChargePercent())
	}
}

func TestGeneratorFractionalAdoption(t *testing.T) {
	net := NewNetwork()
	cfg := DefaultGeneratorConfig()
	cfg.PerHitChargePercent = 100
	cfg.FullChargeDuration = 2
	g := NewElementalGenerator(cfg, net.Clock())
	net.Add(g)

	g.OnProjectileHit(ice())
	if g.ChargePercent() != 0 || g.TargetChargePercent() != 100 {
		t.Fatalf("expected target set and visible charge unchanged, got %v/%v", g.ChargePercent(), g.TargetChargePercent())
	}

	net.Step(1)
	if g.ChargePercent() != 50 || g.IsActivated() {
		t.Fatalf("expected halfway charge, got %v active=%v", g.ChargePercent(), g.IsActivated())
	}
	net.Step(1)
	if g.ChargePercent() != 100 || !g.IsActivated() {
		t.Fatalf("expected full charge and activation, got %v active=%v", g.ChargePercent(), g.IsActivated())
	}
}

func TestGeneratorFractionalAdoptionFixedStep(t *testing.T) {
	cases := []struct {
		name     string
		duration float64
		frames   int
	}{
		{"half_second", 0.5, 40},
		{"one_second", 1, 70},
		{"odd_duration", 0.7, 50},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			net := NewNetwork()
			cfg := DefaultGeneratorConfig()
			cfg.Accept = AcceptFire
			cfg.PerHitChargePercent = 100
			cfg.FullChargeDuration = c.duration
			g := NewElementalGenerator(cfg, net.Clock())
			net.Add(g)

			if !g.OnProjectileHit(Projectile{Element: ElementFire}) {
				t.Fatalf("expected fire hit accepted")
			}
			for i := 0; i < c.frames; i++ {
				net.Step(1.0 / 60)
			}
			if g.ChargePercent() != MaxCharge || !g.IsActivated() {
				t.Fatalf("expected full charge and activation, got %v active=%v", g.ChargePercent(), g.IsActivated())
			}
		})
	}
}

func TestGeneratorReverseMode(t *testing.T) {
	net := NewNetwork()
	cfg := DefaultGeneratorConfig()
	cfg.Reverse = true
	cfg.DecayPerSecond = 10
	g := NewElementalGenerator(cfg, net.Clock())
	net.Add(g)

	if !g.IsActivated() || g.ChargePercent() != 100 {
		t.Fatalf("reverse generator must start active and full")
	}

	net.Step(1)
	net.Step(1)
	if !g.IsActivated() {
		t.Fatalf("80%% must still be active, charge=%v", g.ChargePercent())
	}
	net.Step(1)
	if g.IsActivated() {
		t.Fatalf("70%% must be inactive, charge=%v", g.ChargePercent())
	}
}

func TestGeneratorPrerequisiteLoss(t *testing.T) {
	cases := []struct {
		name       string
		drain      bool
		wantCharge float64
	}{
		{"drain", true, 0},
		{"keep_charge", false, 100},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			net := NewNetwork()
			prereq := newStub(true)
			cfg := DefaultGeneratorConfig()
			cfg.Sequential = true
			cfg.PerHitChargePercent = 100
			cfg.DrainOnPrerequisiteLost = c.drain
			g := NewElementalGenerator(cfg, net.Clock(), prereq)
			net.Add(g)
			rec := record(t, g)

			g.OnProjectileHit(ice())
			if !g.IsActivated() {
				t.Fatalf("expected activation with prerequisites met")
			}

			prereq.Set(false)
			net.Step(0.1)
			net.Step(0.1)
			if g.IsActivated() || g.ChargePercent() != c.wantCharge {
				t.Fatalf("expected inactive with charge %v, got active=%v charge=%v", c.wantCharge, g.IsActivated(), g.ChargePercent())
			}
			if rec.count() != 2 {
				t.Fatalf("expected one activation and one deactivation edge, got %v", rec.edges)
			}

			net.Step(0.1)
			if g.OnProjectileHit(ice()) {
				t.Fatalf("hits must be rejected while prerequisites are unmet")
			}
		})
	}
}

func TestGeneratorThresholdsClamped(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Thresholds = Thresholds{Activation: 140, Deactivation: 150}
	cfg.FullChargeDuration = -1
	g := NewElementalGenerator(cfg, NewClock())
	got := g.Config()
	if got.Thresholds.Activation != 100 || got.Thresholds.Deactivation != 100 {
		t.Fatalf("expected thresholds clamped to 100/100, got %+v", got.Thresholds)
	}
	if got.FullChargeDuration != 0 {
		t.Fatalf("expected negative duration clamped to 0")
	}
}

func TestLineFill(t *testing.T) {
	got := lineFill(0.5, 4)
	want := []float64{1, 1, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if lineFill(1, 0) != nil {
		t.Fatalf("expected nil for zero segments")
	}
}
