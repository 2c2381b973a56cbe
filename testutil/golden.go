// Package testutil provides golden-fixture helpers for typed-IR snapshot
// tests: fixtures are YAML so they stay readable and diffable in review,
// matching the format internal/ir's Program.String golden test compares against.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// UpdateGoldens controls whether CompareGolden overwrites fixtures instead of
// comparing against them. Set via UPDATE_GOLDENS=true go test ./...
var UpdateGoldens = os.Getenv("UPDATE_GOLDENS") == "true"

// GoldenPath returns testdata/<feature>/<name>.golden.yaml.
func GoldenPath(feature, name string) string {
	return filepath.Join("testdata", feature, name+".golden.yaml")
}

// CompareGolden marshals actual to YAML and compares it against the fixture
// at feature/name, or writes the fixture when UpdateGoldens is set.
func CompareGolden(t *testing.T, feature, name string, actual interface{}) {
	t.Helper()

	path := GoldenPath(feature, name)
	actualYAML, err := yaml.Marshal(actual)
	if err != nil {
		t.Fatalf("marshaling actual value: %v", err)
	}

	if UpdateGoldens {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("creating golden directory: %v", err)
		}
		if err := os.WriteFile(path, actualYAML, 0644); err != nil {
			t.Fatalf("writing golden file: %v", err)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	expectedYAML, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("golden file does not exist: %s (run with UPDATE_GOLDENS=true to create it)", path)
		}
		t.Fatalf("reading golden file: %v", err)
	}

	var expected, got interface{}
	if err := yaml.Unmarshal(expectedYAML, &expected); err != nil {
		t.Fatalf("parsing golden file %s: %v", path, err)
	}
	if err := yaml.Unmarshal(actualYAML, &got); err != nil {
		t.Fatalf("parsing actual value: %v", err)
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("golden mismatch for %s/%s (-want +got):\n%s", feature, name, diff)
	}
}
