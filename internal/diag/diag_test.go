package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/errors"
)

func TestRender_IncludesCodeMessageAndSpan(t *testing.T) {
	span := &ast.Span{Start: ast.Pos{File: "main.ts", Line: 3, Column: 5}}
	report := errors.New(errors.VAL002, span, "missing parameter type annotation")

	var buf bytes.Buffer
	Render(&buf, []*errors.Report{report})

	out := buf.String()
	for _, want := range []string{errors.VAL002, "missing parameter type annotation", "main.ts:3:5"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
}

func TestRender_IncludesFixDescription(t *testing.T) {
	report := errors.New(errors.VAL006, nil, "legacy var").WithFix(&errors.Fix{Description: "replace with let"})

	var buf bytes.Buffer
	Render(&buf, []*errors.Report{report})

	if !strings.Contains(buf.String(), "replace with let") {
		t.Errorf("expected fix description in output, got: %s", buf.String())
	}
}

func TestRender_OmitsSpanLineWhenNil(t *testing.T) {
	report := errors.New(errors.MOD002, nil, "entry path not found")

	var buf bytes.Buffer
	Render(&buf, []*errors.Report{report})

	if strings.Contains(buf.String(), "-->") {
		t.Errorf("expected no span line for a report with a nil span, got: %s", buf.String())
	}
}

func TestSummary_NoDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, nil)
	if !strings.Contains(buf.String(), "no diagnostics") {
		t.Errorf("expected a no-diagnostics summary, got: %s", buf.String())
	}
}

func TestSummary_CountsErrorsAndWarningsSeparately(t *testing.T) {
	reports := []*errors.Report{
		errors.New(errors.VAL001, nil, "e1"),
		errors.New(errors.VAL002, nil, "e2"),
		errors.New(errors.MONO001, nil, "w1"),
	}

	var buf bytes.Buffer
	Summary(&buf, reports)

	out := buf.String()
	if !strings.Contains(out, "2 errors") || !strings.Contains(out, "1 warning") {
		t.Errorf("expected counts of 2 errors and 1 warning, got: %s", out)
	}
}
