package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want ChangeKind
		ok   bool
	}{
		{"prefabs/door.yaml", ChangePrefab, true},
		{"prefabs/door.YML", ChangePrefab, true},
		{"prefabs/scripts/a.tengo", ChangeScript, true},
		{"levels/a.json", ChangeLevel, true},
		{"levels/a.json~", 0, false},
		{"README", 0, false},
	}
	for _, c := range cases {
		got, ok := classify(c.path)
		if ok != c.ok || (ok && got != c.want) {
			t.Fatalf("classify %q: expected %v/%v, got %v/%v", c.path, c.want, c.ok, got, ok)
		}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Skipf("watcher unavailable: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "room.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case change := <-w.Events:
		if change.Kind != ChangeLevel || filepath.Base(change.Path) != "room.json" {
			t.Fatalf("unexpected change %+v", change)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for change")
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Skipf("watcher unavailable: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatalf("expected events closed")
	}
}
