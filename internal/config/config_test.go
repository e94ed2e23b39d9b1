package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadReadsDiagnosticsTable(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[package]
name = "kernel"

[diagnostics]
color = "off"
max_warnings = 7
journal = ".ion/warnings.mp"
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Package.Name != "kernel" {
		t.Errorf("package name = %q, want %q", m.Package.Name, "kernel")
	}
	if m.Diagnostics.Color != "off" {
		t.Errorf("color = %q, want %q", m.Diagnostics.Color, "off")
	}
	if m.Diagnostics.MaxWarnings != 7 {
		t.Errorf("max_warnings = %d, want 7", m.Diagnostics.MaxWarnings)
	}
	if m.Diagnostics.Journal != ".ion/warnings.mp" {
		t.Errorf("journal = %q, want %q", m.Diagnostics.Journal, ".ion/warnings.mp")
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[package]
name = "kernel"
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Diagnostics.Color != DefaultColorMode {
		t.Errorf("color = %q, want default %q", m.Diagnostics.Color, DefaultColorMode)
	}
	if m.Diagnostics.MaxWarnings != DefaultMaxWarnings {
		t.Errorf("max_warnings = %d, want default %d", m.Diagnostics.MaxWarnings, DefaultMaxWarnings)
	}
	if m.Diagnostics.Journal != "" {
		t.Errorf("journal = %q, want empty", m.Diagnostics.Journal)
	}
}

func TestLoadRejectsInvalidColorMode(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[diagnostics]
color = "always"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() accepted invalid color mode, want error")
	}
}

func TestLoadRejectsNonPositiveMaxWarnings(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[diagnostics]
max_warnings = 0
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() accepted max_warnings = 0, want error")
	}
}

func TestFindWalksUpToManifest(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, "[package]\nname = \"kernel\"\n")

	nested := filepath.Join(root, "lib", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if !ok {
		t.Fatal("Find() ok = false, want manifest above nested dir")
	}
	if found != path {
		t.Errorf("Find() = %q, want %q", found, path)
	}
}

func TestLoadFromDirFallsBackToDefaults(t *testing.T) {
	m, path, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFromDir() error = %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty without a manifest", path)
	}
	if m.Diagnostics.MaxWarnings != DefaultMaxWarnings {
		t.Errorf("max_warnings = %d, want default %d", m.Diagnostics.MaxWarnings, DefaultMaxWarnings)
	}
}

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	tests := []struct {
		mode     string
		terminal bool
		want     bool
	}{
		{"on", false, true},
		{"off", true, false},
		{"auto", true, true},
		{"auto", false, false},
	}
	for _, tt := range tests {
		if got := ColorEnabled(tt.mode, tt.terminal); got != tt.want {
			t.Errorf("ColorEnabled(%q, %v) = %v, want %v", tt.mode, tt.terminal, got, tt.want)
		}
	}
}

func TestColorEnabledHonorsNoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if ColorEnabled("auto", true) {
		t.Error("ColorEnabled(auto) = true with NO_COLOR set, want false")
	}
	if !ColorEnabled("on", true) {
		t.Error("ColorEnabled(on) = false, explicit mode must override NO_COLOR")
	}
}
