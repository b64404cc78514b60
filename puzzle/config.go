package puzzle

import (
	"fmt"
	"strings"

	"github.com/milk9111/switchboard/common"
)

// Thresholds are the hysteresis bounds of a charge-based switch, in percent.
type Thresholds struct {
	Activation   float64 `yaml:"activation_percent"`
	Deactivation float64 `yaml:"deactivation_percent"`
}

// Normalize clamps activation into [0,100] and deactivation into
// [0,activation].
func (t Thresholds) Normalize() Thresholds {
	t.Activation = common.Clamp(t.Activation, 0, MaxCharge)
	t.Deactivation = common.Clamp(t.Deactivation, 0, t.Activation)
	return t
}

type BulletSwitchConfig struct {
	ActivateTag       string  `yaml:"activate_tag"`
	DeactivateTag     string  `yaml:"deactivate_tag"`
	Toggleable        bool    `yaml:"toggleable"`
	RetriggerCooldown float64 `yaml:"retrigger_cooldown"`
	AutoDeactivate    bool    `yaml:"auto_deactivate"`
	DeactivateDelay   float64 `yaml:"deactivate_delay"`
	AllowBoop         bool    `yaml:"allow_boop"`
	Sequential        bool    `yaml:"use_sequential_mode"`
}

func DefaultBulletSwitchConfig() BulletSwitchConfig {
	return BulletSwitchConfig{
		ActivateTag:       "Fire",
		DeactivateTag:     "Ice",
		RetriggerCooldown: 0.05,
		DeactivateDelay:   3,
		AllowBoop:         true,
	}
}

func (c BulletSwitchConfig) Normalize() BulletSwitchConfig {
	c.RetriggerCooldown = nonNegative(c.RetriggerCooldown)
	c.DeactivateDelay = nonNegative(c.DeactivateDelay)
	return c
}

// Element is the elemental type carried by a projectile.
type Element string

const (
	ElementNone Element = ""
	ElementFire Element = "fire"
	ElementIce  Element = "ice"
)

// Accept filters which projectile elements a generator takes.
type Accept string

const (
	AcceptFire Accept = "fire"
	AcceptIce  Accept = "ice"
	AcceptAny  Accept = "any"
)

func ParseAccept(s string) (Accept, error) {
	switch a := Accept(strings.ToLower(strings.TrimSpace(s))); a {
	case AcceptFire, AcceptIce, AcceptAny:
		return a, nil
	case "":
		return AcceptIce, nil
	default:
		return "", fmt.Errorf("puzzle: unknown accept type %q", s)
	}
}

func (a Accept) Accepts(e Element) bool {
	switch a {
	case AcceptAny:
		return true
	case AcceptFire:
		return e == ElementFire
	default:
		return e == ElementIce
	}
}

type GeneratorConfig struct {
	Accept                  Accept     `yaml:"accept"`
	// Reverse only starts the generator full and active; thresholds compare
	// the same way in both modes.
	Reverse                 bool       `yaml:"use_reverse_mode"`
	Thresholds              Thresholds `yaml:",inline"`
	PerHitChargePercent     float64    `yaml:"per_hit_charge_percent"`
	FullChargeDuration      float64    `yaml:"full_charge_duration"`
	DecayPerSecond          float64    `yaml:"decay_per_second"`
	RetriggerCooldown       float64    `yaml:"retrigger_cooldown"`
	Sequential              bool       `yaml:"use_sequential_mode"`
	DrainOnPrerequisiteLost bool       `yaml:"drain_on_prerequisite_lost"`
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Accept:                  AcceptIce,
		Thresholds:              Thresholds{Activation: 100, Deactivation: 80},
		PerHitChargePercent:     25,
		RetriggerCooldown:       0.05,
		DrainOnPrerequisiteLost: true,
	}
}

func (c GeneratorConfig) Normalize() GeneratorConfig {
	if a, err := ParseAccept(string(c.Accept)); err == nil {
		c.Accept = a
	} else {
		c.Accept = AcceptIce
	}
	c.Thresholds = c.Thresholds.Normalize()
	c.PerHitChargePercent = common.Clamp(c.PerHitChargePercent, 0, MaxCharge)
	c.FullChargeDuration = nonNegative(c.FullChargeDuration)
	c.DecayPerSecond = nonNegative(c.DecayPerSecond)
	c.RetriggerCooldown = nonNegative(c.RetriggerCooldown)
	return c
}

// PlateKind selects between occupancy plates and enemy capture plates.
type PlateKind string

const (
	PlateGeneral       PlateKind = "general"
	PlateEnemySpecific PlateKind = "enemy_specific"
)

type PlateConfig struct {
	Kind         PlateKind  `yaml:"kind"`
	AcceptPlayer bool       `yaml:"accept_player"`
	AcceptEnemy  bool       `yaml:"accept_enemy"`
	PlayerTag    string     `yaml:"player_tag"`
	EnemyTag     string     `yaml:"enemy_tag"`
	RequiredMass float64    `yaml:"required_mass"`
	Thresholds   Thresholds `yaml:",inline"`
	// RiseTime is the seconds needed to charge from 0 to 100 while occupied.
	RiseTime float64 `yaml:"rise_time"`
	// DecayPerSecond of zero latches the charge once unoccupied.
	DecayPerSecond float64 `yaml:"decay_per_second"`
	Sequential     bool    `yaml:"use_sequential_mode"`
	// FreezeDuration applied to a captured body; zero freezes until release.
	FreezeDuration   float64 `yaml:"freeze_duration"`
	ReparentToAnchor bool    `yaml:"reparent_to_anchor"`
}

func DefaultPlateConfig() PlateConfig {
	return PlateConfig{
		Kind:           PlateGeneral,
		AcceptPlayer:   true,
		PlayerTag:      "Player",
		EnemyTag:       "Enemy",
		Thresholds:     Thresholds{Activation: 100, Deactivation: 90},
		RiseTime:       0.5,
		DecayPerSecond: 200,
	}
}

func (c PlateConfig) Normalize() PlateConfig {
	if c.Kind != PlateEnemySpecific {
		c.Kind = PlateGeneral
	}
	c.RequiredMass = nonNegative(c.RequiredMass)
	c.Thresholds = c.Thresholds.Normalize()
	c.RiseTime = nonNegative(c.RiseTime)
	c.DecayPerSecond = nonNegative(c.DecayPerSecond)
	c.FreezeDuration = nonNegative(c.FreezeDuration)
	return c
}

type RelayMode string

const (
	RelayAllOn RelayMode = "all_on"
	RelayAnyOn RelayMode = "any_on"
)

type RelayConfig struct {
	Mode                        RelayMode `yaml:"mode"`
	RequireAtLeastOneValidInput bool      `yaml:"require_at_least_one_valid_input"`
	FillDuration                float64   `yaml:"fill_duration"`
}

func DefaultRelayConfig() RelayConfig {
	return RelayConfig{
		Mode:                        RelayAllOn,
		RequireAtLeastOneValidInput: true,
		FillDuration:                0.5,
	}
}

func (c RelayConfig) Normalize() RelayConfig {
	if c.Mode != RelayAnyOn {
		c.Mode = RelayAllOn
	}
	c.FillDuration = nonNegative(c.FillDuration)
	return c
}

type GateMode string

const (
	GateSimple     GateMode = "simple"
	GateSequential GateMode = "sequential"
)

type GateConfig struct {
	Mode            GateMode `yaml:"mode"`
	ControlDoor     bool     `yaml:"control_door"`
	ControlFountain bool     `yaml:"control_fountain"`
	AutoClose       bool     `yaml:"auto_close"`
}

func DefaultGateConfig() GateConfig {
	return GateConfig{
		Mode:        GateSimple,
		ControlDoor: true,
		AutoClose:   true,
	}
}

func (c GateConfig) Normalize() GateConfig {
	if c.Mode != GateSequential {
		c.Mode = GateSimple
	}
	return c
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
