package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsg/pkg/domain"
)

// Overlay highlights one walk on the rendered graph, e.g. a match witness.
type Overlay struct {
	// Path holds state IDs, start first.
	Path []string
}

// GenerateMermaid produces a Mermaid flowchart from a definition.
// It applies semantic styling:
// - Start: ((Circle))
// - End: (((Double circle)))
// - Default: [Rectangle]
// Start edges are dotted and labelled with the marker.
func GenerateMermaid(def *domain.Definition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	ids := make(map[string]string, len(def.States))
	for i, s := range def.States {
		ids[s.ID] = fmt.Sprintf("s%d", i)
	}
	start := def.StartState()

	for _, s := range def.States {
		opener, closer := "[", "]"
		switch {
		case s.Start:
			opener, closer = "((", "))"
		case s.End:
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[s.ID], opener, escape(s.ID), closer)
	}

	walked := make(map[[2]string]bool)
	if overlay != nil {
		for i := 1; i < len(overlay.Path); i++ {
			walked[[2]string{overlay.Path[i-1], overlay.Path[i]}] = true
		}
	}

	var highlighted []int
	for i, t := range def.Transitions {
		from, to := ids[t.From], ids[t.To]
		if t.From == start {
			fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", from, escape(def.EffectiveMarker()), to)
		} else {
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", from, escape(t.Label), to)
		}
		if walked[[2]string{t.From, t.To}] {
			highlighted = append(highlighted, i)
		}
	}

	if overlay != nil && len(overlay.Path) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Path {
			safe, ok := ids[id]
			if !ok || seen[safe] {
				continue
			}
			seen[safe] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", safe)
		}
		for _, i := range highlighted {
			fmt.Fprintf(&sb, "    linkStyle %d stroke:#01579b,stroke-width:3px;\n", i)
		}
	}

	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
