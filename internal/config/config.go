// Package config loads the ion.toml project manifest. Only the
// [diagnostics] table matters to this tool; the rest of the manifest
// belongs to other toolchain components and is left untouched.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Defaults for the [diagnostics] table.
const (
	DefaultColorMode   = "auto"
	DefaultMaxWarnings = 100
)

// Diagnostics is the [diagnostics] table of ion.toml.
type Diagnostics struct {
	// Color is the ANSI mode: auto, on or off.
	Color string `toml:"color"`
	// MaxWarnings caps the warning events kept by replay sessions.
	MaxWarnings int `toml:"max_warnings"`
	// Journal is an optional path for the msgpack warning journal,
	// relative to the manifest directory.
	Journal string `toml:"journal"`
}

// Manifest is the subset of ion.toml this tool reads.
type Manifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Diagnostics Diagnostics `toml:"diagnostics"`
}

// Default returns the manifest used when no ion.toml is found.
func Default() Manifest {
	var m Manifest
	m.Diagnostics = Diagnostics{
		Color:       DefaultColorMode,
		MaxWarnings: DefaultMaxWarnings,
	}
	return m
}

// Load parses the manifest at path. Missing keys keep their defaults;
// present keys are validated.
func Load(path string) (Manifest, error) {
	m := Default()
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("diagnostics", "color") {
		if err := ValidateColorMode(m.Diagnostics.Color); err != nil {
			return Manifest{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if meta.IsDefined("diagnostics", "max_warnings") && m.Diagnostics.MaxWarnings <= 0 {
		return Manifest{}, fmt.Errorf("%s: [diagnostics].max_warnings must be positive, got %d", path, m.Diagnostics.MaxWarnings)
	}
	return m, nil
}

// ValidateColorMode checks an ANSI mode value from a flag or manifest.
func ValidateColorMode(mode string) error {
	switch mode {
	case "auto", "on", "off":
		return nil
	}
	return fmt.Errorf("invalid color mode %q (want auto, on or off)", mode)
}

// ColorEnabled decides whether ANSI escapes should be emitted.
// isTerminal reports whether the warning stream is a TTY; auto mode also
// honors the conventional NO_COLOR environment variable.
func ColorEnabled(mode string, isTerminal bool) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal && os.Getenv("NO_COLOR") == ""
	}
}
