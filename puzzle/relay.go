package puzzle

import "github.com/milk9111/switchboard/common"

// RelaySwitch combines other switches with AND or OR. Its output turns on
// only after the fill has ramped to 1 while the inputs hold, and turns off as
// soon as the inputs stop holding.
type RelaySwitch struct {
	signal

	cfg    RelayConfig
	inputs []Switch

	fill   float64
	target bool
}

func NewRelaySwitch(cfg RelayConfig, inputs ...Switch) *RelaySwitch {
	return &RelaySwitch{
		cfg:    cfg.Normalize(),
		inputs: inputs,
	}
}

func (r *RelaySwitch) Config() RelayConfig {
	return r.cfg
}

func (r *RelaySwitch) SetInputs(inputs ...Switch) {
	r.inputs = inputs
}

// Fill is the smoothed progress toward activation in [0,1].
func (r *RelaySwitch) Fill() float64 {
	return r.fill
}

// LineFill splits the fill across n progress segments.
func (r *RelaySwitch) LineFill(n int) []float64 {
	return lineFill(r.fill, n)
}

// InputActive reports whether input i is a live, activated switch.
func (r *RelaySwitch) InputActive(i int) bool {
	if i < 0 || i >= len(r.inputs) || r.inputs[i] == nil {
		return false
	}
	return r.inputs[i].IsActivated()
}

func (r *RelaySwitch) Tick(dt float64) {
	r.target = r.evaluate()

	goal := 0.0
	if r.target {
		goal = 1
	}
	if r.cfg.FillDuration <= 0 {
		r.fill = goal
	} else {
		r.fill = common.MoveTowards(r.fill, goal, dt/r.cfg.FillDuration)
	}

	switch {
	case !r.target:
		r.set(false)
	case r.fill >= 1:
		r.set(true)
	}
}

func (r *RelaySwitch) Publish() {
	r.publish()
}

func (r *RelaySwitch) evaluate() bool {
	requireValid := r.cfg.RequireAtLeastOneValidInput
	if len(r.inputs) == 0 {
		if requireValid {
			return false
		}
		return r.cfg.Mode == RelayAllOn
	}

	if r.cfg.Mode == RelayAnyOn {
		for _, in := range r.inputs {
			if in != nil && in.IsActivated() {
				return true
			}
		}
		return false
	}

	hasValid := false
	for _, in := range r.inputs {
		if in == nil {
			if requireValid {
				return false
			}
			continue
		}
		hasValid = true
		if !in.IsActivated() {
			return false
		}
	}
	return hasValid || !requireValid
}
