package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsg/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return nil, err
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// ReportMarkdown formats a harness report as Markdown.
func ReportMarkdown(r *domain.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Report `%s`\n\n", r.ID)
	fmt.Fprintf(&sb, "- Automaton: **%s**\n", r.Automaton)
	fmt.Fprintf(&sb, "- Created: %s\n", r.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&sb, "- Seed: `%d`\n", r.Seed)
	fmt.Fprintf(&sb, "- Samples: %d\n\n", r.Samples)

	sb.WriteString("## Self check\n\n")
	if r.SelfCheck.Passed() {
		fmt.Fprintf(&sb, "All %d generated strings were accepted.\n\n", r.SelfCheck.Accepted)
	} else {
		fmt.Fprintf(&sb, "**%d** generated strings were rejected:\n\n", r.SelfCheck.Rejected)
		for _, f := range r.SelfCheck.Failures {
			fmt.Fprintf(&sb, "- `%s`\n", f)
		}
		sb.WriteString("\n")
	}

	if len(r.Patterns) > 0 {
		sb.WriteString("## Patterns\n\n")
		sb.WriteString("| Pattern | Passed | Total | Rate |\n")
		sb.WriteString("|---|---:|---:|---:|\n")
		for _, p := range r.Patterns {
			rate := 0.0
			if p.Total() > 0 {
				rate = 100 * float64(p.Passed) / float64(p.Total())
			}
			fmt.Fprintf(&sb, "| `%s` | %d | %d | %.1f%% |\n", strings.ReplaceAll(p.Pattern, "|", `\|`), p.Passed, p.Total(), rate)
		}
		sb.WriteString("\n")
	}

	if ref := r.Reference; ref != nil {
		sb.WriteString("## Reference\n\n")
		fmt.Fprintf(&sb, "Pattern `%s` agreed on %d of %d random inputs (%d accepted).\n\n",
			ref.Pattern, ref.Agree, ref.Inputs, ref.Accepted)
		if !ref.Equivalent() {
			sb.WriteString("| Input | Matcher | Reference |\n")
			sb.WriteString("|---|---|---|\n")
			for _, m := range ref.Mismatches {
				fmt.Fprintf(&sb, "| `%s` | %t | %t |\n", m.Input, m.Matcher, m.Reference)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
