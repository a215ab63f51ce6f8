package cmd

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	sim "github.com/tiered-sim/tiered-sim/sim"
)

//go:embed presets/*.yaml
var presetFS embed.FS

// defaultPreset is used when neither --preset nor --config is given.
const defaultPreset = "adaptive"

// PresetNames lists the embedded presets, sorted.
func PresetNames() []string {
	entries, err := presetFS.ReadDir("presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// LoadPreset overlays the named preset on sim.DefaultRunConfig().
// Uses strict field checking: typos in a preset are errors.
func LoadPreset(name string) (*sim.RunConfig, error) {
	data, err := presetFS.ReadFile(path.Join("presets", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown preset %q; valid: %s", name, strings.Join(PresetNames(), ", "))
	}
	cfg, err := sim.DecodeRunConfig(data, sim.DefaultRunConfig())
	if err != nil {
		return nil, fmt.Errorf("parsing preset %s: %w", name, err)
	}
	return cfg, nil
}
