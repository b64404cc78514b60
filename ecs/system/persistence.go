package system

import (
	"fmt"
	"log"

	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
	"gopkg.in/yaml.v3"
)

const (
	saveObject   = "progress"
	savePropBase = "gates_"
)

// SaveStore is the subset of *gdata.Manager used to keep progress.
type SaveStore interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// PersistenceSystem restores the open state of Persistent gates when a level
// starts and saves it whenever one changes. Progress is stored per level.
type PersistenceSystem struct {
	store     SaveStore
	levelName string

	restored bool
	saved    map[string]bool
}

func NewPersistenceSystem(store SaveStore, levelName string) *PersistenceSystem {
	return &PersistenceSystem{
		store:     store,
		levelName: levelName,
		saved:     make(map[string]bool),
	}
}

// Reset makes the next update restore again, used after the level reloads.
func (p *PersistenceSystem) Reset(levelName string) {
	if p == nil {
		return
	}
	p.levelName = levelName
	p.restored = false
	p.saved = make(map[string]bool)
}

func (p *PersistenceSystem) Update(w *ecs.World) {
	if p == nil || w == nil || p.store == nil {
		return
	}

	if !p.restored {
		p.restored = true
		if err := p.restore(w); err != nil {
			log.Printf("Persistence: restore level=%s: %v", p.levelName, err)
		}
		return
	}

	current := p.collect(w)
	if equalStates(current, p.saved) {
		return
	}
	if err := p.save(current); err != nil {
		log.Printf("Persistence: save level=%s: %v", p.levelName, err)
		return
	}
	p.saved = current
}

func (p *PersistenceSystem) restore(w *ecs.World) error {
	state, err := p.load()
	if err != nil {
		return err
	}
	ecs.ForEach2(w, component.GateComponent.Kind(), component.PersistentComponent.Kind(), func(e ecs.Entity, g *component.Gate, ps *component.Persistent) {
		if state[ps.ID] {
			g.Gate.Restore(true)
			log.Printf("Persistence: gate=%s restored open", ps.ID)
		}
	})
	p.saved = state
	return nil
}

// collect merges the gates open now into what was already saved; progress is
// never taken back.
func (p *PersistenceSystem) collect(w *ecs.World) map[string]bool {
	out := make(map[string]bool, len(p.saved))
	for id, open := range p.saved {
		out[id] = open
	}
	ecs.ForEach2(w, component.GateComponent.Kind(), component.PersistentComponent.Kind(), func(e ecs.Entity, g *component.Gate, ps *component.Persistent) {
		if ps.ID != "" && g.Gate.IsOpen() {
			out[ps.ID] = true
		}
	})
	return out
}

func (p *PersistenceSystem) load() (map[string]bool, error) {
	state := make(map[string]bool)
	prop := savePropBase + p.levelName
	if !p.store.ObjectPropExists(saveObject, prop) {
		return state, nil
	}
	data, err := p.store.LoadObjectProp(saveObject, prop)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", prop, err)
	}
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode %s: %w", prop, err)
	}
	return state, nil
}

func (p *PersistenceSystem) save(state map[string]bool) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return err
	}
	return p.store.SaveObjectProp(saveObject, savePropBase+p.levelName, data)
}

func equalStates(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
