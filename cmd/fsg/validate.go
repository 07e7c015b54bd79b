package main

import (
	"fmt"

	"github.com/aretw0/fsg/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the automaton for consistency",
	Long: `Loads the definition, which enforces the structural rules (one start and
one end state, known targets, no transitions into the start state), then crawls
the automaton and reports unreachable states and states from which the end
state cannot be reached.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")

		engine, _, err := setup(cmd)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		res := engine.Analyze()
		for _, w := range res.Warnings() {
			cli.PrintSystemMessage(cmd.ErrOrStderr(), "warning: %s", w)
		}
		if err := res.Err(); err != nil {
			if strict {
				return fmt.Errorf("validation failed: %w", err)
			}
			cli.PrintSystemMessage(cmd.ErrOrStderr(), "warning: %v", err)
		}
		if strict && len(res.Unreachable) > 0 {
			return fmt.Errorf("validation failed: %d unreachable states", len(res.Unreachable))
		}

		def := engine.Inspect()
		fmt.Fprintf(cmd.OutOrStdout(), "Automaton %q is valid (%d states, %d transitions)\n", def.Name, len(def.States), len(def.Transitions))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Fail on unreachable or trapped states")
}
