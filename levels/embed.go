package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a puzzle room. Layers are row-major tile grids; tiles of layers
// marked as physics become static colliders.
type Level struct {
	Name      string      `json:"name"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  float64     `json:"tile_size,omitempty"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

// Entity places a prefab. Props override prefab components by component
// name; Links wire switches to each other by entity name.
type Entity struct {
	Type  string                 `json:"type"`
	Name  string                 `json:"name,omitempty"`
	X     float64                `json:"x"`
	Y     float64                `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
	Links Links                  `json:"links,omitempty"`
}

// Links names the switches and actuators an entity is wired to.
type Links struct {
	Prerequisites []string   `json:"prerequisites,omitempty"`
	Inputs        []string   `json:"inputs,omitempty"`
	Switches      []string   `json:"switches,omitempty"`
	Groups        [][]string `json:"groups,omitempty"`
	Doors         []string   `json:"doors,omitempty"`
	Fountains     []string   `json:"fountains,omitempty"`
	Anchor        string     `json:"anchor,omitempty"`
}

// LoadLevel reads a level by name, preferring a copy on disk under levels/.
func LoadLevel(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	if data, err := os.ReadFile(filepath.Join("levels", clean)); err == nil {
		return decodeLevel(clean, data)
	}
	return LoadLevelFromFS(clean)
}

func LoadLevelFromFS(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := fs.ReadFile(LevelsFS, clean)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return decodeLevel(clean, data)
}

// Names lists the embedded levels without their extension.
func Names() ([]string, error) {
	files, err := fs.Glob(LevelsFS, "*.json")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(f, ".json"))
	}
	sort.Strings(names)
	return names, nil
}

func decodeLevel(file string, data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(file, ".json")
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = 1
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("level %s: layer %d has %d tiles, want %d", lvl.Name, i, len(layer), lvl.Width*lvl.Height)
		}
	}
	return &lvl, nil
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".json"
	}
	return s
}
