package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// demoConfig holds the demo's tunables. TOML keys match the field
// names case-insensitively, so a config file looks like:
//
//	width = 1024
//	height = 768
//	title = "spinning quad"
//	texture = "art.png"
type demoConfig struct {
	Width   int
	Height  int
	Title   string
	Texture string
}

func defaultDemoConfig() demoConfig {
	return demoConfig{
		Width:  800,
		Height: 600,
		Title:  "glh demo",
	}
}

// loadConfig resolves the effective configuration. Precedence, lowest
// to highest: built-in defaults, the TOML file (when path is set),
// then any flag that was given a non-zero value.
func loadConfig(path string, flags demoConfig) (demoConfig, error) {
	cfg := defaultDemoConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return demoConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if flags.Width != 0 {
		cfg.Width = flags.Width
	}
	if flags.Height != 0 {
		cfg.Height = flags.Height
	}
	if flags.Title != "" {
		cfg.Title = flags.Title
	}
	if flags.Texture != "" {
		cfg.Texture = flags.Texture
	}
	return cfg, nil
}
