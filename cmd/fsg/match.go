package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/fsg/internal/cli"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [input...]",
	Short: "Decide whether strings are accepted by the automaton",
	Long: `Searches backwards from the end state for a walk whose labels spell each
input, and prints "accepted" or "rejected" per input. Without arguments inputs
are read from stdin, one per line. Exits non-zero when any input is rejected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		witness, _ := cmd.Flags().GetBool("witness")
		quiet, _ := cmd.Flags().GetBool("quiet")

		engine, _, err := setup(cmd)
		if err != nil {
			return err
		}

		inputs := args
		if len(inputs) == 0 {
			if inputs, err = readLines(cmd.InOrStdin()); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		rejected := 0
		for _, in := range inputs {
			res := engine.Match(cmd.Context(), in)
			if !res.Accepted {
				rejected++
			}
			if quiet {
				continue
			}

			verdict := "rejected"
			if res.Accepted {
				verdict = "accepted"
			}
			line := fmt.Sprintf("%q\t%s", in, verdict)
			if witness && res.Accepted {
				line += "\t" + strings.Join(res.Path, " -> ")
			}
			fmt.Fprintln(out, line)
		}

		if rejected > 0 {
			if !quiet {
				cli.PrintSystemMessage(cmd.ErrOrStderr(), "%d of %d inputs rejected", rejected, len(inputs))
			}
			return errSilentExit
		}
		return nil
	},
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().BoolP("witness", "w", false, "Print the accepting walk of each accepted input")
	matchCmd.Flags().BoolP("quiet", "q", false, "Print nothing; only the exit status reports the outcome")
}
