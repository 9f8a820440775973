package config

import (
	"fmt"
	"sort"
	"strings"
)

// Presets groups partial configurations by the section they tune.
var Presets = map[string]map[string]*Config{
	"clock": {
		"realtime": {Clock: ClockConfig{Speed: 1, StepMS: 3_600_000}},
		"hourly":   {Clock: ClockConfig{Speed: 1, StepMS: 100}},
		"daily":    {Clock: ClockConfig{Speed: 24, StepMS: 100}},
		"fast":     {Clock: ClockConfig{Speed: 72, StepMS: 50}},
	},
	"texture": {
		"draft":    {Texture: TextureConfig{Resolution: 128}},
		"standard": {Texture: TextureConfig{Resolution: 512}},
		"high":     {Texture: TextureConfig{Resolution: 1024}},
		"ultra":    {Texture: TextureConfig{Resolution: 2048}},
	},
}

func GetPreset(group, preset string) *Config {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	cfg, ok := groupPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns the preset names of a group, sorted.
func ListPresets(group string) []string {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(groupPresets))
	for name := range groupPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListGroups returns the preset groups, sorted.
func ListGroups() []string {
	groups := make([]string, 0, len(Presets))
	for g := range Presets {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// ApplyPreset overlays a "group/name" or bare name preset onto c. A bare
// name is looked up in every group.
func (c *Config) ApplyPreset(name string) error {
	groups := ListGroups()
	if g, n, ok := strings.Cut(name, "/"); ok {
		groups, name = []string{g}, n
	}
	for _, group := range groups {
		p := GetPreset(group, name)
		if p == nil {
			continue
		}
		switch group {
		case "clock":
			c.Clock.Speed = p.Clock.Speed
			c.Clock.StepMS = p.Clock.StepMS
		case "texture":
			c.Texture.Resolution = p.Texture.Resolution
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
