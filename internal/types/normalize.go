package types

// NormalizeUnion applies the single authoritative union-collapsing rule
// (spec §4.3): separate null/undefined from the rest, then apply, in order:
// (a) T | null → Option(T); (b) an all-string-literal union → tag-only I32;
// (c) an all-numeric union → the widest compatible numeric; (d) otherwise a
// plain Union with variants in source order. Downstream stages must not
// re-collapse — this is called exactly once, at union-resolution time.
func NormalizeUnion(variants []Type) Type {
	var rest []Type
	hasNull := false
	for _, v := range variants {
		if isNullType(v) {
			hasNull = true
			continue
		}
		rest = append(rest, v)
	}

	if hasNull {
		var inner Type
		if len(rest) == 1 {
			inner = rest[0]
		} else {
			inner = NormalizeUnion(rest)
		}
		// Idempotence: collapsing T | null | null must not double-wrap.
		if opt, ok := inner.(*Option); ok {
			return opt
		}
		return &Option{Inner: inner}
	}

	if len(rest) == 0 {
		return Never
	}
	if len(rest) == 1 {
		return rest[0]
	}

	if allStringLiterals(rest) {
		return I32
	}

	if allNumeric(rest) {
		return widestNumeric(rest)
	}

	out := make([]UnionVariant, len(rest))
	for i, v := range rest {
		out[i] = UnionVariant{Tag: i, Type: v}
	}
	return &Union{Variants: out}
}

func isNullType(t Type) bool {
	switch v := t.(type) {
	case Unknown:
		return false
	case *Alias:
		return v.Name == "null" || v.Name == "undefined"
	}
	return false
}

// StringLiteral represents a string-literal type, `"circle"` for example,
// surfaced to the type resolver by the validator-permitted subset of the
// type-annotation grammar.
type StringLiteral struct{ Value string }

func (StringLiteral) typeNode()            {}
func (s StringLiteral) String() string     { return "\"" + s.Value + "\"" }

func allStringLiterals(ts []Type) bool {
	for _, t := range ts {
		if _, ok := t.(StringLiteral); !ok {
			return false
		}
	}
	return true
}

func allNumeric(ts []Type) bool {
	for _, t := range ts {
		p, ok := t.(Primitive)
		if !ok {
			return false
		}
		if !p.IsInteger() && !p.IsFloat() {
			return false
		}
	}
	return true
}

// widestNumeric collapses a union of numeric primitives: float beats int,
// signed wins on a mixed same-width pairing, width = max width present.
func widestNumeric(ts []Type) Type {
	anyFloat := false
	anySigned := false
	maxWidth := 0
	for _, t := range ts {
		p := t.(Primitive)
		if p.IsFloat() {
			anyFloat = true
		}
		if p.IsSigned() {
			anySigned = true
		}
		if w := p.Width(); w > maxWidth {
			maxWidth = w
		}
	}
	if anyFloat {
		if maxWidth <= 32 {
			return F32
		}
		return F64
	}
	switch {
	case maxWidth <= 8:
		if anySigned {
			return I8
		}
		return U8
	case maxWidth <= 16:
		if anySigned {
			return I16
		}
		return U16
	case maxWidth <= 32:
		if anySigned {
			return I32
		}
		return U32
	default:
		if anySigned {
			return I64
		}
		return U64
	}
}

// NormalizeIntersection merges struct intersections field-wise in declared
// order (leftmost first); anything else collapses to Unknown.
func NormalizeIntersection(parts []Type) Type {
	var fields []StructField
	seen := map[string]bool{}
	for _, p := range parts {
		s, ok := p.(*Struct)
		if !ok {
			return Unknown{}
		}
		for _, f := range s.Fields {
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			fields = append(fields, f)
		}
	}
	return &Struct{Fields: fields}
}
