package config

import (
	"fmt"
	"strings"
)

// Preset is a named rule set.
type Preset struct {
	Name        string
	Description string
	Size        int
	WinTarget   int
	MaxUndo     int
	Spawn4Prob  float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// Presets lists the built-in rule sets. Targets scale with the board so
// each one is reachable but not trivial.
var Presets = []Preset{
	{Name: "classic", Description: "4x4 board, reach 2048", Size: 4, WinTarget: 2048, MaxUndo: 3, Spawn4Prob: 0.10},
	{Name: "mini", Description: "3x3 board, reach 512", Size: 3, WinTarget: 512, MaxUndo: 3, Spawn4Prob: 0.10},
	{Name: "large", Description: "5x5 board, reach 4096", Size: 5, WinTarget: 4096, MaxUndo: 3, Spawn4Prob: 0.12},
	{Name: "huge", Description: "6x6 board, reach 8192", Size: 6, WinTarget: 8192, MaxUndo: 5, Spawn4Prob: 0.15},
	{Name: "hardcore", Description: "4x4 board, no undo, more 4s", Size: 4, WinTarget: 2048, MaxUndo: 0, Spawn4Prob: 0.25},
}

// PresetByName looks up a preset, ignoring case.
// Returns nil if no preset matches.
func PresetByName(name string) *Preset {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range Presets {
		if Presets[i].Name == name {
			return &Presets[i]
		}
	}
	return nil
}

// PresetNames returns the names of all presets.
func PresetNames() []string {
	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = p.Name
	}
	return names
}

// ApplyPreset modifies the game rules based on a named preset.
// History bounds are left alone.
func ApplyPreset(cfg *GameConfig, name string) error {
	p := PresetByName(name)
	if p == nil {
		return fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	cfg.Preset = p.Name
	cfg.Size = p.Size
	cfg.WinTarget = p.WinTarget
	cfg.MaxUndo = p.MaxUndo
	cfg.Spawn4Prob = p.Spawn4Prob
	return nil
}
