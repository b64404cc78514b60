package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// OverlayComponentSpec decodes raw on top of base. Fields absent from raw keep
// the value they have in base.
func OverlayComponentSpec[T any](base T, raw any) (T, error) {
	if raw == nil {
		return base, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return base, err
	}
	out := base
	if err := yaml.Unmarshal(b, &out); err != nil {
		return base, err
	}
	return out, nil
}

// MergeComponents returns the prefab components with overrides applied. A map
// override is merged key by key into the prefab's map for that component; any
// other override replaces it.
func MergeComponents(base, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overrides))
	for name, raw := range base {
		out[name] = raw
	}
	for name, raw := range overrides {
		over, ok := toStringMap(raw)
		if !ok {
			out[name] = raw
			continue
		}
		merged := make(map[string]any)
		if prev, ok := toStringMap(out[name]); ok {
			for k, v := range prev {
				merged[k] = v
			}
		}
		for k, v := range over {
			merged[k] = v
		}
		out[name] = merged
	}
	return out
}

func toStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}
