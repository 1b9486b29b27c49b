package config

import "sort"

var Presets = map[string]*Config{
	"demo":      {Algorithm: "bubble", Size: 10, Speed: 1, Seed: 7},
	"fast":      {Algorithm: "quick", Size: 60, Speed: 50},
	"large":     {Algorithm: "merge", Size: 150, Speed: 200},
	"worst":     {Algorithm: "insertion", Size: 30, Speed: 10, Shape: "reversed"},
	"presorted": {Algorithm: "bubble", Size: 30, Speed: 10, Shape: "sorted"},
	"classroom": {Algorithm: "selection", Size: 12, Speed: 2, Seed: 2024, Theme: "light"},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
