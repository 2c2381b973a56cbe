package errors

import (
	"encoding/json"
	"errors"

	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/schema"
)

// Report is the canonical structured diagnostic type for llts. Every phase
// (resolve, validate, types, ownership, mono, lower) returns these rather
// than bare Go errors, so the driver can batch and render them uniformly.
type Report struct {
	Schema   string         `json:"schema"`             // schema.ErrorV1
	Code     string         `json:"code"`               // Error code (VAL001, OWN003, etc.)
	Phase    string         `json:"phase"`               // "resolve", "validate", "types", "ownership", "mono"; "parse" for parse failures
	Severity string         `json:"severity,omitempty"` // "error" (default) | "warning"
	Message  string         `json:"message"`            // Human-readable message
	Span     *ast.Span      `json:"span,omitempty"`     // Source location (optional)
	Data     map[string]any `json:"data,omitempty"`     // Structured data (sorted keys)
	Fix      *Fix           `json:"fix,omitempty"`      // Suggested fix (optional)
}

// EffectiveSeverity returns r.Severity, defaulting to "error" when unset so
// every Report constructed before Severity existed still reads as fatal.
func (r *Report) EffectiveSeverity() string {
	if r.Severity == "" {
		return "error"
	}
	return r.Severity
}

// Fix is a suggested remediation attached to a Report.
type Fix struct {
	Description string `json:"description"`
	Replacement string `json:"replacement,omitempty"`
}

// WithFix attaches a suggested fix and returns the receiver for chaining.
func (r *Report) WithFix(f *Fix) *Report {
	r.Fix = f
	return r
}

// WithData attaches structured context data and returns the receiver for
// chaining.
func (r *Report) WithData(data map[string]any) *Report {
	r.Data = data
	return r
}

// ReportError wraps a Report as an error
// This allows structured reports to survive errors.As() unwrapping
type ReportError struct {
	Rep *Report
}

// Error implements the error interface
func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport attempts to extract a Report from an error chain
// Returns the Report and true if found, nil and false otherwise
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as a ReportError
// Call sites should return errors.WrapReport(report) to preserve structure
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON converts a Report to JSON (deterministic, sorted keys)
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error

	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}

	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewGeneric creates a generic fatal report wrapping a plain Go error, used
// for I/O failures that have no dedicated code in the taxonomy.
func NewGeneric(phase string, err error) *Report {
	return &Report{
		Schema:  schema.ErrorV1,
		Code:    "GENERIC",
		Phase:   phase,
		Message: err.Error(),
		Data:    map[string]any{},
	}
}

// New builds a Report for a registered code, defaulting Schema and Severity
// from the code's ErrorRegistry entry.
func New(code string, span *ast.Span, message string) *Report {
	severity := "error"
	if info, ok := GetErrorInfo(code); ok {
		severity = info.Severity
	}
	return &Report{
		Schema:   schema.ErrorV1,
		Code:     code,
		Phase:    phaseOf(code),
		Severity: severity,
		Message:  message,
		Span:     span,
	}
}

func phaseOf(code string) string {
	if info, ok := GetErrorInfo(code); ok {
		return info.Phase
	}
	return "unknown"
}
