// Package errors provides centralized structured diagnostics for llts,
// covering every phase of the front-to-IR pipeline.
package errors

// Error code constants organized by phase. Each constant names a specific
// rejection or failure condition surfaced as a Report.
const (
	// ============================================================================
	// Module Resolution Errors (MOD###) — fatal
	// ============================================================================

	// MOD001 indicates a specifier could not be resolved to a file.
	MOD001 = "MOD001"

	// MOD002 indicates the entry path itself does not exist or is unreadable.
	MOD002 = "MOD002"

	// ============================================================================
	// Subset Validator Errors (VAL###) — batched
	// ============================================================================

	// VAL001 indicates an ambient any/unknown/bigint/symbol/shapeless-object
	// type annotation.
	VAL001 = "VAL001"

	// VAL002 indicates a missing parameter or return type annotation.
	VAL002 = "VAL002"

	// VAL003 indicates a coroutine construct: async function, await,
	// generator, or yield.
	VAL003 = "VAL003"

	// VAL004 indicates a dynamic-scope construct: eval, with, a reflective
	// metaprogramming facility, or prototype-chain manipulation.
	VAL004 = "VAL004"

	// VAL005 indicates a decorator on a declaration.
	VAL005 = "VAL005"

	// VAL006 indicates a legacy block-leaky `var` declaration.
	VAL006 = "VAL006"

	// VAL007 indicates a computed property key on a record type or class
	// field.
	VAL007 = "VAL007"

	// VAL008 indicates an ambient big-integer literal.
	VAL008 = "VAL008"

	// ============================================================================
	// Type Resolver & Registry Errors (TYP###) — batched
	// ============================================================================

	// TYP001 indicates a named type reference that never resolves — no
	// declaration is registered under that name once resolution completes.
	TYP001 = "TYP001"

	// TYP002 indicates a malformed generic instantiation (argument-count
	// mismatch).
	TYP002 = "TYP002"

	// TYP003 indicates an intersection of incompatible non-struct types,
	// resolved to Unknown but still surfaced for visibility.
	TYP003 = "TYP003"

	// ============================================================================
	// Ownership & Borrow Analyzer Errors (OWN###) — batched
	// ============================================================================

	// OWN001 indicates a mutable borrow requested while an immutable borrow
	// is outstanding.
	OWN001 = "OWN001"

	// OWN002 indicates an immutable borrow requested while a mutable borrow
	// is outstanding.
	OWN002 = "OWN002"

	// OWN003 indicates a second mutable borrow requested while one is
	// already outstanding.
	OWN003 = "OWN003"

	// OWN004 indicates a mutation of a value whose declared type is
	// Readonly(_).
	OWN004 = "OWN004"

	// OWN005 indicates use of a variable after it has been moved.
	OWN005 = "OWN005"

	// ============================================================================
	// Monomorphizer Errors (MONO###) — MONO001 is a warning, not fatal
	// ============================================================================

	// MONO001 indicates a concrete type argument fell outside a generic
	// parameter's finite constraint set. Non-fatal: the monomorphizer
	// proceeds with the user-supplied type.
	MONO001 = "MONO001"

	// MONO002 indicates a call supplied no type arguments and not every
	// generic parameter has a default, leaving the call non-monomorphized.
	MONO002 = "MONO002"
)

// ErrorInfo provides structured information about an error code.
type ErrorInfo struct {
	Code        string
	Phase       string
	Severity    string // "error" | "warning"
	Description string
}

// ErrorRegistry maps error codes to their information.
var ErrorRegistry = map[string]ErrorInfo{
	MOD001: {MOD001, "resolve", "error", "Unresolved import specifier"},
	MOD002: {MOD002, "resolve", "error", "Entry path not found"},

	VAL001: {VAL001, "validate", "error", "Ambient any/unknown/bigint/symbol/shapeless-object type"},
	VAL002: {VAL002, "validate", "error", "Missing parameter or return type annotation"},
	VAL003: {VAL003, "validate", "error", "Coroutine construct (async/await/generator/yield)"},
	VAL004: {VAL004, "validate", "error", "Dynamic-scope or reflective construct"},
	VAL005: {VAL005, "validate", "error", "Decorator on a declaration"},
	VAL006: {VAL006, "validate", "error", "Legacy block-leaky variable declaration"},
	VAL007: {VAL007, "validate", "error", "Computed property key"},
	VAL008: {VAL008, "validate", "error", "Ambient big-integer literal"},

	TYP001: {TYP001, "types", "error", "Unresolved named type reference"},
	TYP002: {TYP002, "types", "error", "Generic instantiation arity mismatch"},
	TYP003: {TYP003, "types", "warning", "Intersection resolved to Unknown"},

	OWN001: {OWN001, "ownership", "error", "Mutable borrow while immutable borrow outstanding"},
	OWN002: {OWN002, "ownership", "error", "Immutable borrow while mutable borrow outstanding"},
	OWN003: {OWN003, "ownership", "error", "Second mutable borrow while one outstanding"},
	OWN004: {OWN004, "ownership", "error", "Mutation of a readonly value"},
	OWN005: {OWN005, "ownership", "error", "Use after move"},

	MONO001: {MONO001, "mono", "warning", "Type argument outside constraint set"},
	MONO002: {MONO002, "mono", "error", "Call left non-monomorphized: incomplete defaults"},
}

// GetErrorInfo returns information about an error code.
func GetErrorInfo(code string) (ErrorInfo, bool) {
	info, exists := ErrorRegistry[code]
	return info, exists
}

// IsModuleError reports whether code belongs to the resolve phase.
func IsModuleError(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Phase == "resolve"
}

// IsValidatorError reports whether code belongs to the validate phase.
func IsValidatorError(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Phase == "validate"
}

// IsTypeError reports whether code belongs to the types phase.
func IsTypeError(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Phase == "types"
}

// IsOwnershipError reports whether code belongs to the ownership phase.
func IsOwnershipError(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Phase == "ownership"
}

// IsMonoError reports whether code belongs to the mono phase.
func IsMonoError(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Phase == "mono"
}

// IsWarning reports whether code's registered severity is "warning".
func IsWarning(code string) bool {
	info, exists := GetErrorInfo(code)
	return exists && info.Severity == "warning"
}
