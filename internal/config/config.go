// Package config loads the driver's optional project configuration
// file, ".mipc.yaml": settings that apply across an entire compile
// invocation rather than being worth repeating as flags on every call.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the driver-level configuration read from .mipc.yaml. Every
// field has a zero value that reproduces the driver's default behavior,
// so a missing or empty file is equivalent to an all-defaults Config.
type Config struct {
	// OutputDir, when non-empty, is used as the directory for generated
	// assembly files whose name wasn't given explicitly with -o.
	OutputDir string `yaml:"outputDir"`

	// WarningsAsErrors makes type-check diagnostics stop the driver
	// before code generation. By default only parse and name-analysis
	// diagnostics stop it; code generation still runs over an ill-typed
	// program.
	WarningsAsErrors bool `yaml:"warningsAsErrors"`

	// JSONDiagnostics selects the JSON diagnostic report format in
	// place of the default caret-annotated text format.
	JSONDiagnostics bool `yaml:"jsonDiagnostics"`
}

// Load reads and parses the YAML configuration at path. A missing file
// is not an error: Load returns the zero Config, so callers can always
// try a conventional path (e.g. ".mipc.yaml" in the working directory)
// without special-casing its absence.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
