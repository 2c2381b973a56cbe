// Package config reads the project manifest (llts.toml) that selects how
// one compilation unit should be driven: optimization level, the target
// triple (forwarded to the backend collaborator as a placeholder — no
// codegen lives here), output path, and whether to emit the typed IR as
// text alongside the build.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// OptLevel selects an optimization level placeholder forwarded to the
// backend; this repo does no optimization itself.
type OptLevel string

const (
	OptNone OptLevel = "none"
	OptSize OptLevel = "size"
	OptSpeed OptLevel = "speed"
)

// IsValid reports whether the optimization level is one of the recognized
// values.
func (o OptLevel) IsValid() bool {
	switch o {
	case OptNone, OptSize, OptSpeed:
		return true
	default:
		return false
	}
}

// Manifest is the decoded shape of llts.toml.
type Manifest struct {
	Entry  string       `toml:"entry"`
	Build  BuildConfig  `toml:"build"`
	Output OutputConfig `toml:"output"`
}

// BuildConfig controls compilation behavior.
type BuildConfig struct {
	// OptLevel selects "none", "size", or "speed"; forwarded to the backend
	// collaborator, never interpreted here.
	OptLevel OptLevel `toml:"opt_level"`

	// TargetTriple names the backend's target, e.g. "x86_64-unknown-linux-gnu".
	// A placeholder until a backend is wired; unset means "host default".
	TargetTriple string `toml:"target_triple"`
}

// OutputConfig controls where build artifacts land.
type OutputConfig struct {
	Path    string `toml:"path"`
	EmitIR  bool   `toml:"emit_ir"`
	RunAfterBuild bool `toml:"run_after_build"`
}

// Default returns the baseline manifest used when llts.toml is absent or a
// field is left unset.
func Default() *Manifest {
	return &Manifest{
		Build: BuildConfig{
			OptLevel: OptNone,
		},
		Output: OutputConfig{
			Path:   "a.out",
			EmitIR: false,
		},
	}
}

// Load reads and decodes path, falling back to Default() if path does not
// exist. A present-but-malformed file is always an error.
func Load(path string) (*Manifest, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects an out-of-range opt level and a missing entry path.
func (c *Manifest) Validate() error {
	if c.Entry == "" {
		return fmt.Errorf("missing required field: entry")
	}
	if c.Build.OptLevel != "" && !c.Build.OptLevel.IsValid() {
		return fmt.Errorf("invalid build.opt_level: %q (must be %q, %q, or %q)", c.Build.OptLevel, OptNone, OptSize, OptSpeed)
	}
	return nil
}
