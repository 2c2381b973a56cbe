package types

import (
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Registry is the process-local name → (id, type) map, plus its inverse.
// Type identifiers are dense integers assigned on first registration.
// Registration is idempotent on name; Update replaces the type of an
// existing name once its forward-referenced definition is seen.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]int
	byID    []Type
	names   []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

func normalizeName(name string) string {
	if norm.NFC.IsNormalString(name) {
		return name
	}
	return norm.NFC.String(name)
}

// Register records t under name, returning its id. If name is already
// registered, the existing id is returned unchanged (idempotent) — use
// Update to replace a forward-reference placeholder.
func (r *Registry) Register(name string, t Type) int {
	name = normalizeName(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byName[name]; ok {
		return id
	}
	id := len(r.byID)
	r.byID = append(r.byID, t)
	r.names = append(r.names, name)
	r.byName[name] = id
	return id
}

// Forward registers a placeholder Unknown under name if not already present,
// returning its id — used when a Ref is emitted before its target is seen.
func (r *Registry) Forward(name string) int {
	return r.Register(name, Unknown{})
}

// Update replaces the type stored at name's id, resolving a forward
// reference. It is a no-op if name was never registered.
func (r *Registry) Update(name string, t Type) {
	name = normalizeName(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byName[name]
	if !ok {
		return
	}
	r.byID[id] = t
}

// Lookup returns the (id, type) registered under name.
func (r *Registry) Lookup(name string) (int, Type, bool) {
	name = normalizeName(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	if !ok {
		return 0, nil, false
	}
	return id, r.byID[id], true
}

// Resolve dereferences a Ref through the registry. A dangling reference (no
// entry at that id) resolves to Unknown, per the invariant that dangling
// refs are programmer errors rather than panics.
func (r *Registry) Resolve(ref *Ref) Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if ref.ID < 0 || ref.ID >= len(r.byID) {
		return Unknown{}
	}
	return r.byID[ref.ID]
}

// UnresolvedNames returns every registered name whose entry is still the
// Unknown{} placeholder installed by Forward — a forward reference whose
// target declaration was never seen (TYP001).
func (r *Registry) UnresolvedNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for i, t := range r.byID {
		if _, ok := t.(Unknown); ok {
			names = append(names, r.names[i])
		}
	}
	return names
}

// NameOf returns the name registered at id, if any.
func (r *Registry) NameOf(id int) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 0 || id >= len(r.names) {
		return "", false
	}
	return r.names[id], true
}

// deref follows Alias and Ref chains until it reaches a non-transparent
// type, used by Equivalent.
func (r *Registry) deref(t Type) Type {
	for {
		switch v := t.(type) {
		case *Alias:
			if v.Inner == nil {
				return v
			}
			t = v.Inner
		case *Ref:
			t = r.Resolve(v)
		default:
			return t
		}
	}
}

// Equivalent decides structural equivalence: aliases are transparent,
// references resolve through the registry, aggregates compare field-wise in
// declared order, functions compare parameter lists and returns, wrappers
// compare inner types, and primitives compare by tag.
func (r *Registry) Equivalent(a, b Type) bool {
	a, b = r.deref(a), r.deref(b)

	switch av := a.(type) {
	case Primitive:
		bv, ok := b.(Primitive)
		return ok && av.Kind == bv.Kind

	case *Struct:
		bv, ok := b.(*Struct)
		if !ok || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			fa, fb := av.Fields[i], bv.Fields[i]
			if fa.Name != fb.Name || fa.Readonly != fb.Readonly || fa.Optional != fb.Optional {
				return false
			}
			if !r.Equivalent(fa.Type, fb.Type) {
				return false
			}
		}
		return true

	case *Array:
		bv, ok := b.(*Array)
		return ok && r.Equivalent(av.Elem, bv.Elem)

	case *Tuple:
		bv, ok := b.(*Tuple)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !r.Equivalent(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true

	case *Union:
		bv, ok := b.(*Union)
		if !ok || len(av.Variants) != len(bv.Variants) {
			return false
		}
		for i := range av.Variants {
			if av.Variants[i].Tag != bv.Variants[i].Tag {
				return false
			}
			if !r.Equivalent(av.Variants[i].Type, bv.Variants[i].Type) {
				return false
			}
		}
		return true

	case *Enum:
		bv, ok := b.(*Enum)
		return ok && av.Name == bv.Name

	case *Option:
		bv, ok := b.(*Option)
		return ok && r.Equivalent(av.Inner, bv.Inner)

	case *Result:
		bv, ok := b.(*Result)
		return ok && r.Equivalent(av.Ok, bv.Ok) && r.Equivalent(av.Err, bv.Err)

	case *Function:
		bv, ok := b.(*Function)
		if !ok || len(av.Params) != len(bv.Params) {
			return false
		}
		for i := range av.Params {
			if !r.Equivalent(av.Params[i].Type, bv.Params[i].Type) {
				return false
			}
		}
		return r.Equivalent(av.Return, bv.Return)

	case *Readonly:
		bv, ok := b.(*Readonly)
		return ok && r.Equivalent(av.Inner, bv.Inner)

	case *Weak:
		bv, ok := b.(*Weak)
		return ok && r.Equivalent(av.Inner, bv.Inner)

	case *Generic:
		bv, ok := b.(*Generic)
		return ok && av.Name == bv.Name

	case Unknown:
		_, ok := b.(Unknown)
		return ok

	default:
		return false
	}
}
