// Package resolve implements the Module Graph Resolver: given an entry file
// path, it walks the import graph and produces a topologically ordered list
// of absolute source paths, every file appearing after all of its
// transitive imports. It performs only a lightweight import-specifier scan
// — full parsing of file contents is the external parser collaborator's
// job.
package resolve

import (
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/bherbruck/llts/internal/errors"
)

// acceptedExtensions is the conventional extension search order.
var acceptedExtensions = []string{".ts", ".tsx"}

// SpecifierScanner enumerates the import specifiers referenced by a file's
// contents. The default implementation (ScanSpecifiers) expects the caller
// to supply already-read source text; internal/resolve does not parse, it
// only recognizes `import ... from "spec"` lines.
type SpecifierScanner func(src []byte) []string

// FileSet is a path-keyed cache of discovered files, shared across a single
// compilation unit's resolver walk. Grounded on the teacher's module loader
// cache + sync.RWMutex.
type FileSet struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewFileSet returns an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{files: make(map[string][]byte)}
}

func (fs *FileSet) read(path string) ([]byte, error) {
	fs.mu.RLock()
	if data, ok := fs.files[path]; ok {
		fs.mu.RUnlock()
		return data, nil
	}
	fs.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fs.mu.Lock()
	fs.files[path] = data
	fs.mu.Unlock()
	return data, nil
}

// Resolver walks the module graph from an entry file.
type Resolver struct {
	Scan    SpecifierScanner
	files   *FileSet
	visited map[string]bool
	inPath  map[string]bool
	order   []string
	Reports []*errors.Report
}

// New returns a Resolver that scans specifiers with scan (use ScanSpecifiers
// for the default line-oriented scanner) and caches file reads in files.
func New(scan SpecifierScanner, files *FileSet) *Resolver {
	if files == nil {
		files = NewFileSet()
	}
	return &Resolver{
		Scan:    scan,
		files:   files,
		visited: make(map[string]bool),
		inPath:  make(map[string]bool),
	}
}

// Walk produces the ordered file list rooted at entryPath. Duplicates are
// removed; a cycle is terminated by first-seen policy — a file already in
// the visited set is not revisited, its partial-order position fixed by
// first discovery (DFS post-order semantics). This matches spec §8: a
// cycle's second occurrence is simply omitted, not an error.
func (r *Resolver) Walk(entryPath string) ([]string, error) {
	abs, err := filepath.Abs(entryPath)
	if err != nil {
		r.Reports = append(r.Reports, errors.New(errors.MOD002, nil, err.Error()))
		return nil, err
	}
	if _, statErr := os.Stat(abs); statErr != nil {
		r.Reports = append(r.Reports, errors.New(errors.MOD002, nil, "entry path not found: "+abs))
		return nil, statErr
	}
	r.dfs(abs)
	return r.order, nil
}

func (r *Resolver) dfs(path string) {
	if r.visited[path] || r.inPath[path] {
		return
	}
	r.inPath[path] = true

	src, err := r.files.read(path)
	if err != nil {
		r.Reports = append(r.Reports, errors.New(errors.MOD002, nil, "cannot read "+path+": "+err.Error()))
		r.inPath[path] = false
		r.visited[path] = true
		return
	}

	for _, spec := range r.Scan(src) {
		depPath, ok := resolveSpecifier(filepath.Dir(path), spec)
		if !ok {
			r.Reports = append(r.Reports, errors.New(errors.MOD001, nil, "unresolved import specifier "+spec+" in "+path))
			continue
		}
		r.dfs(depPath)
	}

	r.inPath[path] = false
	r.visited[path] = true
	r.order = append(r.order, path)
}

// resolveSpecifier applies the conventional extension search and
// directory-index rule to a relative or bare specifier, normalizing it to
// NFC first so visually identical but differently-encoded specifiers
// collide correctly.
func resolveSpecifier(fromDir, spec string) (string, bool) {
	spec = norm.NFC.String(spec)
	candidate := filepath.Join(fromDir, spec)

	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, true
	}
	for _, ext := range acceptedExtensions {
		if p := candidate + ext; fileExists(p) {
			return p, true
		}
	}
	for _, ext := range acceptedExtensions {
		p := filepath.Join(candidate, "index"+ext)
		if fileExists(p) {
			return p, true
		}
	}
	return "", false
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
