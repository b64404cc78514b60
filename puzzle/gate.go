package puzzle

// Door is an actuator opened and closed by a gate.
type Door interface {
	Open()
	Close()
}

// Fountain is an actuator activated and deactivated by a gate.
type Fountain interface {
	Activate()
	Deactivate()
}

// SwitchGate opens its actuators when its switches are satisfied and, with
// AutoClose, closes them again when they stop being satisfied. Actuators are
// only called on changes of the aggregate state.
//
// In simple mode every switch must be activated. In sequential mode every
// group must have all of its switches activated. An empty composition or a
// nil entry is never satisfied.
type SwitchGate struct {
	cfg       GateConfig
	switches  []Switch
	groups    [][]Switch
	doors     []Door
	fountains []Fountain

	satisfied bool
}

// NewSwitchGate builds a simple-mode gate over a flat set of switches.
func NewSwitchGate(cfg GateConfig, switches ...Switch) *SwitchGate {
	cfg = cfg.Normalize()
	cfg.Mode = GateSimple
	return &SwitchGate{cfg: cfg, switches: switches}
}

// NewSequentialGate builds a gate over groups of switches.
func NewSequentialGate(cfg GateConfig, groups ...[]Switch) *SwitchGate {
	cfg = cfg.Normalize()
	cfg.Mode = GateSequential
	return &SwitchGate{cfg: cfg, groups: groups}
}

func (g *SwitchGate) Config() GateConfig {
	return g.cfg
}

// SetSwitches replaces the switches of a simple gate. Sequential gates ignore
// it.
func (g *SwitchGate) SetSwitches(switches ...Switch) {
	if g.cfg.Mode != GateSimple {
		return
	}
	g.switches = switches
}

// SetGroups replaces the groups of a sequential gate. Simple gates ignore it.
func (g *SwitchGate) SetGroups(groups ...[]Switch) {
	if g.cfg.Mode != GateSequential {
		return
	}
	g.groups = groups
}

func (g *SwitchGate) AddDoor(d Door) {
	if d != nil {
		g.doors = append(g.doors, d)
	}
}

func (g *SwitchGate) AddFountain(f Fountain) {
	if f != nil {
		g.fountains = append(g.fountains, f)
	}
}

// IsOpen reports the last aggregate state acted upon.
func (g *SwitchGate) IsOpen() bool {
	return g.satisfied
}

// Satisfied evaluates the composition against published switch states.
func (g *SwitchGate) Satisfied() bool {
	if g.cfg.Mode == GateSequential {
		if len(g.groups) == 0 {
			return false
		}
		for _, group := range g.groups {
			if !allActivated(group) {
				return false
			}
		}
		return true
	}
	return allActivated(g.switches)
}

func (g *SwitchGate) Tick(float64) {
	now := g.Satisfied()
	if now == g.satisfied {
		return
	}
	g.satisfied = now

	if now {
		g.open()
		return
	}
	if g.cfg.AutoClose {
		g.close()
	}
}

// Publish is a no-op; a gate has no output read by other nodes.
func (g *SwitchGate) Publish() {}

// Restore loads a saved aggregate state. A restored open gate drives its
// actuators open; the next tick then follows the usual edge rules.
func (g *SwitchGate) Restore(open bool) {
	if open == g.satisfied {
		return
	}
	g.satisfied = open
	if open {
		g.open()
	}
}

func (g *SwitchGate) open() {
	if g.cfg.ControlDoor {
		for _, d := range g.doors {
			d.Open()
		}
	}
	if g.cfg.ControlFountain {
		for _, f := range g.fountains {
			f.Activate()
		}
	}
}

func (g *SwitchGate) close() {
	if g.cfg.ControlDoor {
		for _, d := range g.doors {
			d.Close()
		}
	}
	if g.cfg.ControlFountain {
		for _, f := range g.fountains {
			f.Deactivate()
		}
	}
}

func allActivated(switches []Switch) bool {
	if len(switches) == 0 {
		return false
	}
	for _, sw := range switches {
		if sw == nil || !sw.IsActivated() {
			return false
		}
	}
	return true
}
