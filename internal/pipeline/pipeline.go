// Package pipeline orchestrates swath preparation: loading, gap repair,
// day/night routing, tile extraction and .npy persistence.
package pipeline

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"swath-tiler/internal/interp"
	"swath-tiler/internal/npy"
	"swath-tiler/internal/swath"
	"swath-tiler/internal/tile"
)

// Routing subdirectories for processed swaths.
const (
	RouteDaylight = "daylight"
	RouteNight    = "night"
	RouteFailed   = "failed"
)

// Config holds the run settings for a pipeline invocation.
type Config struct {
	TileSize int    `json:"tile_size"`
	Stride   int    `json:"stride"`
	Seed     int64  `json:"seed,omitempty"`
	OutDir   string `json:"out_dir"`
}

// DefaultConfig returns the reference settings: 3x3 tiles on a stride of 3.
func DefaultConfig() Config {
	return Config{
		TileSize: 3,
		Stride:   3,
		OutDir:   "tiles",
	}
}

// LoadConfig reads a JSON run config, filling unset fields from the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TileSize <= 0 || cfg.Stride <= 0 {
		return cfg, fmt.Errorf("config %s: tile_size and stride must be positive", path)
	}
	return cfg, nil
}

// Result reports what happened to one swath.
type Result struct {
	Name          string
	Route         string // daylight, night or failed
	Completeness  float64
	LabelCount    int
	NonLabelCount int
	Short         bool // negative set smaller than the positive set
}

// Run processes a single swath file end to end: load, completeness check,
// gap repair with day/night routing, balanced tile extraction, persistence.
// The repaired swath is always saved under its route subdirectory; tiles are
// only extracted from swaths that pass gap repair.
func Run(swathPath string, cfg Config, rng *rand.Rand, verbose bool) (*Result, error) {
	sw, err := LoadSwath(swathPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Printf("swath %s loaded (%d, %d, %d)\n", sw.Name, sw.Bands, sw.Rows, sw.Cols)
	}

	layout := swath.LabelledLayout()
	if sw.Bands < layout.Radiance.End {
		return nil, fmt.Errorf("swath %s has %d bands, need at least %d radiance channels",
			sw.Name, sw.Bands, layout.Radiance.End)
	}
	res := &Result{Name: sw.Name, Completeness: swath.CheckCompleteness(sw)}

	// Night swaths carry nothing in the solar channels; repair only the
	// emissive ones. A band that cannot be repaired routes the swath to
	// the failed directory.
	route := RouteDaylight
	fillFrom := layout.Radiance.Start
	if interp.AllInvalid(sw, layout.Visible) {
		route = RouteNight
		fillFrom = layout.Visible.End
	}
	if err := interp.FillBands(sw, fillFrom, layout.Radiance.End); err != nil {
		fmt.Printf("[Pipeline] WARNING: %s failed interpolation: %v\n", sw.Name, err)
		route = RouteFailed
	}
	res.Route = route

	routeDir := filepath.Join(cfg.OutDir, route)
	if err := os.MkdirAll(routeDir, 0755); err != nil {
		return res, err
	}
	swathOut := filepath.Join(routeDir, sw.Name+".npy")
	if err := npy.WriteFile(swathOut, []int{sw.Bands, sw.Rows, sw.Cols}, sw.Data); err != nil {
		return res, fmt.Errorf("save swath: %w", err)
	}
	if verbose {
		fmt.Printf("swath %s saved to %s\n", sw.Name, swathOut)
	}

	if route == RouteFailed {
		return res, nil
	}

	set, err := tile.ExtractBalanced(sw, layout, cfg.TileSize, cfg.Stride, rng)
	if err != nil {
		return res, fmt.Errorf("extract tiles: %w", err)
	}
	res.LabelCount = set.Label.Len()
	res.NonLabelCount = set.NonLabel.Len()
	res.Short = set.NonLabel.Short()

	if err := SaveStack(filepath.Join(routeDir, "label"), sw.Name, set.Label); err != nil {
		return res, err
	}
	if err := SaveStack(filepath.Join(routeDir, "nonlabel"), sw.Name, set.NonLabel.Stack); err != nil {
		return res, err
	}
	if verbose {
		fmt.Printf("extracted %d label and %d nonlabel tiles from %s\n",
			res.LabelCount, res.NonLabelCount, sw.Name)
	}

	return res, nil
}

// LoadSwath reads a 3-dimensional .npy array into a Swath named after the
// file.
func LoadSwath(path string) (*swath.Swath, error) {
	shape, data, err := npy.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load swath %s: %w", path, err)
	}
	if len(shape) != 3 {
		return nil, fmt.Errorf("load swath %s: want 3 dimensions, got shape %v", path, shape)
	}
	sw, err := swath.FromData(shape[0], shape[1], shape[2], data)
	if err != nil {
		return nil, fmt.Errorf("load swath %s: %w", path, err)
	}
	sw.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return sw, nil
}

// SaveStack persists a tile stack under dir: the tiles as a float32
// (n, bands, h, w) array in tiles/, the metadata as an int64 (n, 2, 2) array
// in metadata/, both named after the source swath.
func SaveStack(dir, name string, st *tile.Stack) error {
	tilesDir := filepath.Join(dir, "tiles")
	metaDir := filepath.Join(dir, "metadata")
	for _, d := range []string{tilesDir, metaDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}

	shape := []int{st.Len(), st.Bands, st.Height, st.Width}
	if err := npy.WriteFile(filepath.Join(tilesDir, name+".npy"), shape, st.Data); err != nil {
		return fmt.Errorf("save tiles: %w", err)
	}

	meta := make([]int64, 0, st.Len()*4)
	for _, g := range st.Meta {
		meta = append(meta,
			int64(g.Rows.Start), int64(g.Rows.End),
			int64(g.Cols.Start), int64(g.Cols.End))
	}
	if err := npy.WriteInt64File(filepath.Join(metaDir, name+".npy"), []int{st.Len(), 2, 2}, meta); err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}

	return nil
}
