// Package pipeline wires the Module Graph Resolver, Subset Validator, Type
// Resolver & Registry, Ownership & Borrow Analyzer, Monomorphizer, and
// Lowering Engine into one driver entry point: resolve the import graph,
// validate and register every file's declarations, then lower the whole
// unit to a merged typed-IR program, batching diagnostics across every
// phase rather than stopping at the first file's first error.
package pipeline

import (
	"time"

	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/errors"
	"github.com/bherbruck/llts/internal/ir"
	"github.com/bherbruck/llts/internal/lower"
	"github.com/bherbruck/llts/internal/mono"
	"github.com/bherbruck/llts/internal/resolve"
	"github.com/bherbruck/llts/internal/types"
	"github.com/bherbruck/llts/internal/validate"
)

// Config holds everything the driver needs to run one compilation. ParseFile
// is supplied by the caller: turning source text into an *ast.File is the
// external parser collaborator's job, out of this package's scope.
type Config struct {
	EntryPath string
	ParseFile func(path string) (*ast.File, error)
}

// Result collects the merged program plus every diagnostic raised along the
// way. Success is false whenever any report's effective severity is
// "error" — lowering may still have run and populated Program for
// inspection, but the driver never claims a clean compile in that case.
type Result struct {
	Program      *ir.Program
	Reports      []*errors.Report
	Success      bool
	PhaseTimings map[string]int64 // milliseconds, keyed by phase name
}

// Run executes the full pipeline for cfg.EntryPath.
func Run(cfg Config) Result {
	result := Result{PhaseTimings: make(map[string]int64)}

	// Phase 1: resolve the module graph. Module-resolution and I/O failures
	// are fatal: there is no file list to do anything else with.
	start := time.Now()
	fileSet := resolve.NewFileSet()
	resolver := resolve.New(resolve.ScanSpecifiers, fileSet)
	paths, err := resolver.Walk(cfg.EntryPath)
	result.Reports = append(result.Reports, resolver.Reports...)
	result.PhaseTimings["resolve"] = time.Since(start).Milliseconds()
	if err != nil {
		return result
	}

	// Phase 2: parse every file in resolved (dependency-first) order.
	start = time.Now()
	files := make([]*ast.File, 0, len(paths))
	for _, p := range paths {
		f, perr := cfg.ParseFile(p)
		if perr != nil {
			result.Reports = append(result.Reports, errors.NewGeneric("parse", perr))
			continue
		}
		files = append(files, f)
	}
	result.PhaseTimings["parse"] = time.Since(start).Milliseconds()
	if hasFatal(result.Reports) {
		return result
	}

	// Phase 3: validate every file against the supported subset, batching
	// rejections across the whole file set before deciding whether to
	// proceed.
	start = time.Now()
	for _, f := range files {
		v := validate.New()
		v.File(f)
		result.Reports = append(result.Reports, v.Reports...)
	}
	result.PhaseTimings["validate"] = time.Since(start).Milliseconds()
	if hasFatal(result.Reports) {
		return result
	}

	// Phase 4: register every declaration's shape in the type registry,
	// dependency-file order first so forward type references within later
	// files still resolve.
	start = time.Now()
	reg := types.NewRegistry()
	typeResolver := types.NewResolver(reg)
	for _, f := range files {
		registerDecls(typeResolver, f)
	}
	result.Reports = append(result.Reports, typeResolver.Reports...)
	for _, name := range reg.UnresolvedNames() {
		result.Reports = append(result.Reports, errors.New(errors.TYP001, nil,
			"named type `"+name+"` is referenced but never declared"))
	}
	result.PhaseTimings["types"] = time.Since(start).Milliseconds()
	if hasFatal(result.Reports) {
		return result
	}

	// Phase 5: lower. Ownership analysis and monomorphization both run
	// inside the lowering sweeps (per function, and per generic
	// specialization respectively), so their diagnostics arrive bundled in
	// the same report slice.
	start = time.Now()
	mz := mono.New(reg)
	prog, lowerReports := lower.Lower(files, reg, mz, typeResolver.ResolveTypeAnnotation, cfg.EntryPath)
	result.Reports = append(result.Reports, lowerReports...)
	result.PhaseTimings["lower"] = time.Since(start).Milliseconds()

	result.Program = prog
	result.Success = !hasFatal(result.Reports)
	return result
}

// registerDecls feeds one file's top-level declarations into the type
// resolver. Generic declarations are still registered here (their struct
// shape is needed even before a type argument is known); the monomorphizer
// separately tracks their type parameters during the lowering collection
// sweep.
func registerDecls(r *types.Resolver, f *ast.File) {
	for _, d := range f.Decls {
		switch n := d.(type) {
		case *ast.InterfaceDecl:
			r.RegisterInterface(n)
		case *ast.ClassDecl:
			r.RegisterClass(n)
		case *ast.EnumDecl:
			r.RegisterEnum(n)
		case *ast.TypeAliasDecl:
			r.RegisterAlias(n)
		}
	}
}

// hasFatal reports whether any report's effective severity is "error".
func hasFatal(reports []*errors.Report) bool {
	for _, r := range reports {
		if r.EffectiveSeverity() == "error" {
			return true
		}
	}
	return false
}
