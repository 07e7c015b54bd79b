package main

import (
	"os"

	"github.com/aretw0/fsg/internal/cli"
	"github.com/aretw0/fsg/internal/presentation/tui"
	"github.com/aretw0/fsg/pkg/runner"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Explore the automaton interactively",
	Long: `Reads strings line by line and answers each with accepted or rejected
and the accepting walk. Lines starting with ':' are commands (:gen, :seed,
:graph, :help, :quit). With --json every answer is a JSON object per line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")

		engine, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		opts := []runner.Option{runner.WithLogger(logger)}
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			opts = append(opts, runner.WithSeed(seed))
		}

		in, out := cmd.InOrStdin(), cmd.OutOrStdout()
		if jsonMode {
			opts = append(opts, runner.WithInputHandler(runner.NewJSONHandler(in, out)))
		} else {
			var textOpts []runner.TextHandlerOption
			if f, ok := in.(*os.File); ok && cli.IsTerminal(f) && cli.IsTerminal(out) {
				tui.PrintBanner(out)
				cli.PrintSystemMessage(out, "Automaton %q loaded. Type :help for commands.", engine.Name)
				textOpts = append(textOpts, runner.WithPrompt("> "), runner.WithProfile(termenv.EnvColorProfile()))
				if render, err := tui.NewRenderer(); err == nil {
					textOpts = append(textOpts, runner.WithTextHandlerRenderer(render))
				}
			}
			opts = append(opts, runner.WithInputHandler(runner.NewTextHandler(in, out, textOpts...)))
		}

		return runner.NewRunner(engine, opts...).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().Bool("json", false, "Exchange JSON lines instead of text")
	replCmd.Flags().Uint64("seed", 0, "Seed of the :gen generator (default random)")
}
