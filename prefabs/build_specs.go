package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a prefab: a named set of component specs keyed by
// component name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type TagComponentSpec struct {
	Name string `yaml:"name"`
}

type PhysicsBodyComponentSpec struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Mass           float64 `yaml:"mass"`
	Friction       float64 `yaml:"friction"`
	Static         bool    `yaml:"static"`
	FreezeRotation bool    `yaml:"freeze_rotation"`
}

type GravityScaleComponentSpec struct {
	Scale float64 `yaml:"scale"`
}

type StatusComponentSpec struct {
	MassMultiplier float64 `yaml:"mass_multiplier"`
}

// TriggerVolumeComponentSpec is a sensor box. Area is one of switch,
// generator, occupancy or enemy.
type TriggerVolumeComponentSpec struct {
	Area    string  `yaml:"area"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

type ProjectileComponentSpec struct {
	Element       string   `yaml:"element"`
	ChargePercent *float64 `yaml:"charge_percent"`
	Sign          int      `yaml:"sign"`
}

type DoorComponentSpec struct {
	OpenX      float64 `yaml:"open_x"`
	OpenY      float64 `yaml:"open_y"`
	OpenSpeed  float64 `yaml:"open_speed"`
	CloseSpeed float64 `yaml:"close_speed"`
}

type FountainComponentSpec struct {
	MinHeight float64 `yaml:"min_height"`
	MaxHeight float64 `yaml:"max_height"`
	RiseSpeed float64 `yaml:"rise_speed"`
	FallSpeed float64 `yaml:"fall_speed"`
}

type PersistentComponentSpec struct {
	ID string `yaml:"id"`
}

type TTLComponentSpec struct {
	Frames int `yaml:"frames"`
}
