// Package diag renders a batch of diagnostic reports to a terminal, colored
// by severity.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/bherbruck/llts/internal/errors"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
)

// Render writes each report to w as a headline of severity label (red for
// errors, yellow for warnings), bracketed code, message and parenthesized
// phase, followed by a location line and a fix line when those are present.
func Render(w io.Writer, reports []*errors.Report) {
	for _, r := range reports {
		label := red("error")
		if r.EffectiveSeverity() == "warning" {
			label = yellow("warning")
		}
		fmt.Fprintf(w, "%s[%s]: %s %s\n", label, cyan(r.Code), r.Message, phaseTag(r.Phase))
		if r.Span != nil {
			fmt.Fprintf(w, "  --> %s:%d:%d\n", r.Span.Start.File, r.Span.Start.Line, r.Span.Start.Column)
		}
		if r.Fix != nil {
			fmt.Fprintf(w, "  %s %s\n", bold("fix:"), r.Fix.Description)
		}
	}
}

func phaseTag(phase string) string {
	if phase == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", phase)
}

// Summary writes a one-line pass/fail count summary after Render.
func Summary(w io.Writer, reports []*errors.Report) {
	var errCount, warnCount int
	for _, r := range reports {
		if r.EffectiveSeverity() == "warning" {
			warnCount++
		} else {
			errCount++
		}
	}
	if errCount == 0 && warnCount == 0 {
		fmt.Fprintf(w, "%s no diagnostics\n", green("✓"))
		return
	}
	fmt.Fprintf(w, "%d %s, %d %s\n", errCount, plural(errCount, "error"), warnCount, plural(warnCount, "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
