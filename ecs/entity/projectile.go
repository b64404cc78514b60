package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
	"github.com/milk9111/switchboard/puzzle"
)

// NewProjectileAt spawns an elemental shot. Its tag is the capitalized
// element so bullet switches react to it. A non-nil payload overrides the
// per-hit charge of the generator it hits.
func NewProjectileAt(w *ecs.World, element puzzle.Element, x, y float64, payload *puzzle.ChargePayload) (ecs.Entity, error) {
	el := strings.ToLower(string(element))
	if el == "" {
		return 0, fmt.Errorf("projectile: element is empty")
	}

	overrides := map[string]any{
		"tag":        map[string]any{"name": strings.ToUpper(el[:1]) + el[1:]},
		"projectile": map[string]any{"element": el},
	}
	e, err := BuildEntityWith(w, "projectile.yaml", overrides)
	if err != nil {
		return 0, err
	}
	if payload != nil {
		proj, _ := ecs.Get(w, e, component.ProjectileComponent.Kind())
		proj.HasPayload = true
		proj.ChargePercent = payload.Percent
		proj.Sign = payload.Sign
	}
	if err := SetEntityTransform(w, e, x, y, 0); err != nil {
		return 0, fmt.Errorf("projectile: override transform: %w", err)
	}
	return e, nil
}
