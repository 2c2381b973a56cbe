package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileFallsBackToDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Build.OptLevel != OptNone {
		t.Errorf("expected default opt level %q, got %q", OptNone, cfg.Build.OptLevel)
	}
	if cfg.Output.Path != "a.out" {
		t.Errorf("expected default output path a.out, got %q", cfg.Output.Path)
	}
}

func TestLoad_ValidManifestDecodes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "llts.toml")
	content := `
entry = "src/main.ts"

[build]
opt_level = "speed"
target_triple = "x86_64-unknown-linux-gnu"

[output]
path = "build/out"
emit_ir = true
run_after_build = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Entry != "src/main.ts" {
		t.Errorf("expected entry src/main.ts, got %q", cfg.Entry)
	}
	if cfg.Build.OptLevel != OptSpeed {
		t.Errorf("expected opt level speed, got %q", cfg.Build.OptLevel)
	}
	if !cfg.Output.EmitIR || !cfg.Output.RunAfterBuild {
		t.Errorf("expected emit_ir and run_after_build both true, got %+v", cfg.Output)
	}
}

func TestLoad_MissingEntryIsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "llts.toml")
	if err := os.WriteFile(path, []byte(`[build]
opt_level = "none"
`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a manifest missing the required entry field")
	}
}

func TestLoad_InvalidOptLevelIsRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "llts.toml")
	if err := os.WriteFile(path, []byte(`entry = "main.ts"

[build]
opt_level = "turbo"
`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an out-of-range opt level")
	}
}

func TestLoad_MalformedTOMLIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "llts.toml")
	if err := os.WriteFile(path, []byte(`entry = `), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed TOML")
	}
}

func TestOptLevel_IsValid(t *testing.T) {
	for _, o := range []OptLevel{OptNone, OptSize, OptSpeed} {
		if !o.IsValid() {
			t.Errorf("expected %q to be valid", o)
		}
	}
	if OptLevel("bogus").IsValid() {
		t.Error("expected an unrecognized opt level to be invalid")
	}
}
