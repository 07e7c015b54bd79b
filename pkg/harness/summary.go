package harness

import (
	"fmt"
	"io"

	"github.com/aretw0/fsg/pkg/domain"
)

// WriteSummary prints a plain-text summary of report, one line per check.
// Pattern lines read `'<pattern>' -> passed P out of N`.
func WriteSummary(w io.Writer, report *domain.Report) error {
	ew := &errWriter{w: w}

	ew.printf("self-check: accepted %d out of %d\n", report.SelfCheck.Accepted, report.Samples)
	for _, f := range report.SelfCheck.Failures {
		ew.printf("  rejected: %q\n", f)
	}
	for _, p := range report.Patterns {
		ew.printf("'%s' -> passed %d out of %d\n", p.Pattern, p.Passed, p.Total())
	}
	if ref := report.Reference; ref != nil {
		ew.printf("reference '%s': agree %d out of %d (%d accepted)\n", ref.Pattern, ref.Agree, ref.Inputs, ref.Accepted)
		for _, m := range ref.Mismatches {
			ew.printf("  mismatch: %q matcher=%t reference=%t\n", m.Input, m.Matcher, m.Reference)
		}
	}
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
