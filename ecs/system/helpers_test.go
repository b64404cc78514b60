package system

import (
	"testing"

	"github.com/milk9111/switchboard/ecs"
	"github.com/milk9111/switchboard/ecs/component"
	"github.com/milk9111/switchboard/puzzle"
)

func newNetworkWorld(t *testing.T) (*ecs.World, *puzzle.Network) {
	t.Helper()
	w := ecs.NewWorld()
	net := puzzle.NewNetwork()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PuzzleNetworkComponent.Kind(), &component.PuzzleNetwork{Network: net, Step: 0.1}); err != nil {
		t.Fatalf("add network: %v", err)
	}
	return w, net
}

func spawn(t *testing.T, w *ecs.World, name string, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		t.Fatal(err)
	}
	return e
}

func addContact(t *testing.T, w *ecs.World, trigger, other ecs.Entity, area component.TriggerArea, enter bool) {
	t.Helper()
	e := ecs.CreateEntity(w)
	evt := &component.ContactEvent{Trigger: uint64(trigger), Other: uint64(other), Area: area, Enter: enter}
	if err := ecs.Add(w, e, component.ContactEventComponent.Kind(), evt); err != nil {
		t.Fatal(err)
	}
}

func countEvents(events []ecs.Event, typ string) int {
	n := 0
	for _, evt := range events {
		if evt.Type == typ {
			n++
		}
	}
	return n
}

// memStore is an in-memory SaveStore.
type memStore struct {
	props map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{props: make(map[string][]byte)}
}

func (m *memStore) ObjectPropExists(objectKey, propKey string) bool {
	_, ok := m.props[objectKey+"/"+propKey]
	return ok
}

func (m *memStore) LoadObjectProp(objectKey, propKey string) ([]byte, error) {
	return m.props[objectKey+"/"+propKey], nil
}

func (m *memStore) SaveObjectProp(objectKey, propKey string, data []byte) error {
	m.props[objectKey+"/"+propKey] = append([]byte(nil), data...)
	return nil
}
