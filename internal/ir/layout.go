package ir

import "github.com/bherbruck/llts/internal/types"

// Pointer, length, and tag widths assume a 64-bit host; this repo emits no
// code, so these are descriptive constants for tests to check the typed IR's
// documented layout contracts against, not a real codegen target query.
const (
	ptrSize = 8
	tagSize = 8 // Options use 1 bit in principle; the slot is word-sized here
)

// SizeHint returns the byte size a value of t would occupy, per the layout
// contracts: strings and arrays are fat pointers/headers, structs are
// field-ordered and contiguous, Options and tagged unions are sized to their
// largest variant plus a tag, Results to the larger of ok/err plus a tag.
func SizeHint(t types.Type) int {
	switch n := t.(type) {
	case types.Primitive:
		if n == types.String {
			return ptrSize + 8 // fat pointer {ptr, length}
		}
		if n == types.Boolean {
			return 1
		}
		w := n.Width()
		if w == 0 {
			return 0 // void, never
		}
		return w / 8
	case *types.Struct:
		total := 0
		for _, f := range n.Fields {
			total += SizeHint(f.Type)
		}
		return total
	case *types.Array:
		return ptrSize + 8 + 8 // {ptr, length, capacity}
	case *types.Tuple:
		total := 0
		for _, e := range n.Elems {
			total += SizeHint(e)
		}
		return total
	case *types.Option:
		return tagSize + SizeHint(n.Inner)
	case *types.Result:
		return tagSize + maxInt(SizeHint(n.Ok), SizeHint(n.Err))
	case *types.Union:
		largest := 0
		for _, v := range n.Variants {
			largest = maxInt(largest, SizeHint(v.Type))
		}
		return tagSize + largest
	case *types.Enum:
		return tagSize
	case *types.Function:
		return ptrSize + ptrSize // {code-pointer, environment-pointer}
	case *types.Readonly:
		return SizeHint(n.Inner)
	case *types.Weak:
		return ptrSize
	case *types.Alias:
		if n.Inner != nil {
			return SizeHint(n.Inner)
		}
		return 0
	default:
		return 0
	}
}

// AlignHint returns the required alignment for a value of t: the widest
// scalar it contains, since every aggregate here is laid out without
// per-field padding beyond what its largest member demands.
func AlignHint(t types.Type) int {
	switch n := t.(type) {
	case types.Primitive:
		if n == types.String {
			return ptrSize
		}
		if n == types.Boolean {
			return 1
		}
		w := n.Width()
		if w == 0 {
			return 1
		}
		return w / 8
	case *types.Struct:
		align := 1
		for _, f := range n.Fields {
			align = maxInt(align, AlignHint(f.Type))
		}
		return align
	case *types.Array, *types.Function, *types.Weak:
		return ptrSize
	case *types.Tuple:
		align := 1
		for _, e := range n.Elems {
			align = maxInt(align, AlignHint(e))
		}
		return align
	case *types.Option:
		return maxInt(tagSize, AlignHint(n.Inner))
	case *types.Result:
		return maxInt(tagSize, maxInt(AlignHint(n.Ok), AlignHint(n.Err)))
	case *types.Union:
		align := tagSize
		for _, v := range n.Variants {
			align = maxInt(align, AlignHint(v.Type))
		}
		return align
	case *types.Enum:
		return tagSize
	case *types.Readonly:
		return AlignHint(n.Inner)
	case *types.Alias:
		if n.Inner != nil {
			return AlignHint(n.Inner)
		}
		return 1
	default:
		return 1
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
