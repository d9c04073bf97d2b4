// Package config loads optional project-level defaults for the jal CLI from
// a jal.toml file, discovered by walking up from the current directory.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the decoded shape of jal.toml.
type Config struct {
	Run RunConfig `toml:"run"`
}

// RunConfig holds default CLI behavior, overridable by explicit flags.
type RunConfig struct {
	Debug        bool   `toml:"debug"`
	OutputDir    string `toml:"output_dir"`
	MaxCallDepth int    `toml:"max_call_depth"`
}

func Default() Config {
	return Config{
		Run: RunConfig{
			Debug:        false,
			OutputDir:    "./outputs",
			MaxCallDepth: 10000,
		},
	}
}

const fileName = "jal.toml"

// FindConfigFile walks upward from startDir looking for jal.toml, returning
// "" if none is found before reaching the filesystem root.
func FindConfigFile(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, fileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// FindAndLoad locates and decodes jal.toml starting from startDir, falling
// back to Default() if no file is found.
func FindAndLoad(startDir string) (Config, error) {
	path := FindConfigFile(startDir)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes the jal.toml file at path, filling in defaults for any
// unset fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
