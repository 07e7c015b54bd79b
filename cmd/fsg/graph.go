package main

import (
	"fmt"

	"github.com/aretw0/fsg/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the automaton as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) of the automaton. With --input the
accepting walk of that string is highlighted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := setup(cmd)
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			res := engine.Match(cmd.Context(), input)
			if !res.Accepted {
				return fmt.Errorf("input %q is not accepted, nothing to highlight", input)
			}
			overlay = &graph.Overlay{Path: res.Path}
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(engine.Inspect(), overlay))
		return err
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("input", "", "Highlight the accepting walk of this string")
}
