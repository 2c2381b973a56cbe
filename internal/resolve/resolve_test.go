package resolve

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestScanSpecifiers_FindsFromAndBareImports(t *testing.T) {
	src := []byte(`
import { helper } from "./util";
import "./side-effect";
`)
	got := ScanSpecifiers(src)
	want := []string{"./util", "./side-effect"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("spec %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestWalk_OrdersDependenciesBeforeDependents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "util.ts", `export const x = 1;`)
	writeFile(t, dir, "main.ts", `import { x } from "./util";`)

	r := New(ScanSpecifiers, nil)
	order, err := r.Walk(filepath.Join(dir, "main.ts"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 {
		t.Fatalf("expected 2 files in the order, got %v", order)
	}
	utilAbs, _ := filepath.Abs(filepath.Join(dir, "util.ts"))
	mainAbs, _ := filepath.Abs(filepath.Join(dir, "main.ts"))
	if order[0] != utilAbs || order[1] != mainAbs {
		t.Errorf("expected [util, main], got %v", order)
	}
}

func TestWalk_CycleIsTerminatedByFirstSeen(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", `import "./b";`)
	writeFile(t, dir, "b.ts", `import "./a";`)

	r := New(ScanSpecifiers, nil)
	order, err := r.Walk(filepath.Join(dir, "a.ts"))
	if err != nil {
		t.Fatalf("unexpected error on a cyclic import graph: %v", err)
	}
	if len(order) != 2 {
		t.Fatalf("expected both files exactly once despite the cycle, got %v", order)
	}
	if len(r.Reports) != 0 {
		t.Errorf("expected a cycle to be silently terminated, not reported; got %+v", r.Reports)
	}
}

func TestWalk_UnresolvedSpecifierReportsMOD001(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.ts", `import "./missing";`)

	r := New(ScanSpecifiers, nil)
	order, err := r.Walk(filepath.Join(dir, "main.ts"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 1 {
		t.Fatalf("expected the entry file still included in the order, got %v", order)
	}
	found := false
	for _, rep := range r.Reports {
		if rep.Code == "MOD001" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a MOD001 report for the unresolved specifier, got %+v", r.Reports)
	}
}

func TestWalk_MissingEntryReportsMOD002(t *testing.T) {
	r := New(ScanSpecifiers, nil)
	_, err := r.Walk("/nonexistent/path/entry.ts")
	if err == nil {
		t.Fatal("expected an error for a missing entry file")
	}
	found := false
	for _, rep := range r.Reports {
		if rep.Code == "MOD002" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a MOD002 report, got %+v", r.Reports)
	}
}

func TestWalk_ResolvesDirectoryIndex(t *testing.T) {
	dir := t.TempDir()
	subdir := filepath.Join(dir, "lib")
	if err := os.Mkdir(subdir, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, subdir, "index.ts", `export const y = 2;`)
	writeFile(t, dir, "main.ts", `import { y } from "./lib";`)

	r := New(ScanSpecifiers, nil)
	order, err := r.Walk(filepath.Join(dir, "main.ts"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 {
		t.Fatalf("expected the directory index to resolve, got %v", order)
	}
}

func TestFileSet_CachesReadsAcrossResolvers(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "shared.ts", `export const z = 1;`)

	fs := NewFileSet()
	data1, err := fs.read(path)
	if err != nil {
		t.Fatal(err)
	}
	data2, err := fs.read(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data1) != string(data2) {
		t.Error("expected cached reads to return identical content")
	}
}
