package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/fsg/internal/presentation/tui"
	"github.com/aretw0/fsg/pkg/domain"
	"github.com/aretw0/fsg/pkg/harness"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by WriteReport.
const (
	OutputAuto     = "auto"
	OutputText     = "text"
	OutputMarkdown = "markdown"
	OutputJSON     = "json"
	OutputYAML     = "yaml"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// WriteReport writes report in the requested format. OutputAuto renders
// Markdown on a terminal and plain text otherwise.
func WriteReport(w io.Writer, report *domain.Report, format string) error {
	if format == "" || format == OutputAuto {
		format = OutputText
		if IsTerminal(w) {
			format = OutputMarkdown
		}
	}

	switch format {
	case OutputText:
		return harness.WriteSummary(w, report)
	case OutputMarkdown:
		render, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		out, err := render(tui.ReportMarkdown(report))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
