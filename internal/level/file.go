package level

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"level-editor/internal/heightmap"
)

// TerrainState is the persisted terrain portion of a level: the generation parameters
// (so the terrain can be regenerated or re-seeded) plus the sculpted grid itself as a
// zstd-compressed block.
type TerrainState struct {
	Size      float32          `yaml:"size"`
	Config    heightmap.Config `yaml:"config"`
	Heightmap []byte           `yaml:"heightmap,omitempty"`
}

// File is the on-disk level document.
type File struct {
	Version int           `yaml:"version"`
	Terrain TerrainState  `yaml:"terrain"`
	Objects []SceneObject `yaml:"objects"`
}

// fileVersion is bumped when the document layout changes incompatibly.
const fileVersion = 1

// Save writes the store's objects and the terrain state to a YAML level file,
// creating parent directories as needed.
func Save(path string, store *Store, terrainSize float32, cfg heightmap.Config, grid heightmap.Grid) error {
	f := File{
		Version: fileVersion,
		Terrain: TerrainState{Size: terrainSize, Config: cfg},
		Objects: store.List(),
	}
	if !grid.IsEmpty() {
		f.Terrain.Heightmap = heightmap.Encode(grid)
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("level: marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("level: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a level file and returns a populated store plus the terrain state and
// grid. A level without a heightmap block loads with an empty grid (flat ground).
func Load(path string) (*Store, TerrainState, heightmap.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, TerrainState{}, heightmap.Grid{}, fmt.Errorf("level: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, TerrainState{}, heightmap.Grid{}, fmt.Errorf("level: parse %s: %w", path, err)
	}
	if f.Version > fileVersion {
		return nil, TerrainState{}, heightmap.Grid{}, fmt.Errorf("level: %s is version %d, this build reads up to %d", path, f.Version, fileVersion)
	}
	if err := validate(f.Objects); err != nil {
		return nil, TerrainState{}, heightmap.Grid{}, err
	}

	store := NewStore()
	for _, obj := range f.Objects {
		store.Add(obj)
	}

	var grid heightmap.Grid
	if len(f.Terrain.Heightmap) > 0 {
		grid, err = heightmap.Decode(f.Terrain.Heightmap)
		if err != nil {
			return nil, TerrainState{}, heightmap.Grid{}, err
		}
	}
	return store, f.Terrain, grid, nil
}
