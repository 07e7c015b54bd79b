package main

import (
	"fmt"

	"github.com/aretw0/fsg/internal/cli"
	"github.com/aretw0/fsg/internal/presentation/tui"
	"github.com/aretw0/fsg/pkg/automaton"
	"github.com/aretw0/fsg/pkg/harness"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Generate strings, match them back and tally regular expressions",
	Long: `Runs the generate-then-match harness: every generated string must be
accepted by the matcher, each --pattern is tallied against the samples, and an
optional --reference pattern is compared with the matcher on random strings
over the automaton's alphabet.

Settings come from --config (YAML or JSON) and are overridden by flags.
Exits non-zero when a generated string is rejected or the reference disagrees.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := checkConfig(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")

		engine, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		store, closeStore, err := cli.OpenStore(storeOptions(cmd))
		if err != nil {
			return err
		}
		defer func() {
			if err := closeStore(); err != nil {
				logger.Warn("Closing report store failed", "err", err)
			}
		}()

		opts := []harness.Option{harness.WithLogger(logger)}
		if store != nil {
			opts = append(opts, harness.WithStore(store))
		}
		if maxSteps, _ := cmd.Flags().GetInt("max-steps"); maxSteps >= 0 {
			opts = append(opts, harness.WithGeneratorOptions(automaton.WithMaxSteps(maxSteps)))
		}

		report, err := harness.New(engine.Automaton(), opts...).Run(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if err := cli.WriteReport(cmd.OutOrStdout(), report, output); err != nil {
			return err
		}

		ok := report.SelfCheck.Passed() && (report.Reference == nil || report.Reference.Equivalent())
		profile := termenv.Ascii
		if cli.IsTerminal(cmd.ErrOrStderr()) {
			profile = termenv.EnvColorProfile()
		}
		cli.PrintSystemMessage(cmd.ErrOrStderr(), "%s report %s", tui.Verdict(profile, ok), report.ID)
		if !ok {
			return errSilentExit
		}
		return nil
	},
}

func checkConfig(cmd *cobra.Command) (harness.Config, error) {
	cfg := harness.DefaultConfig()
	flags := cmd.Flags()

	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := harness.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if flags.Changed("samples") {
		cfg.Samples, _ = flags.GetInt("samples")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("pattern") {
		cfg.Patterns, _ = flags.GetStringArray("pattern")
	}
	if flags.Changed("reference") {
		cfg.Reference, _ = flags.GetString("reference")
	}
	if flags.Changed("alphabet") {
		cfg.Alphabet, _ = flags.GetString("alphabet")
	}
	if flags.Changed("inputs") {
		cfg.Inputs, _ = flags.GetInt("inputs")
	}
	if flags.Changed("max-len") {
		cfg.MaxLen, _ = flags.GetInt("max-len")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("demo-reference") {
		if on, _ := flags.GetBool("demo-reference"); on {
			if cfg.Reference != "" {
				return cfg, fmt.Errorf("--demo-reference conflicts with a configured reference")
			}
			cfg.Reference = cli.DemoPattern
		}
	}
	return cfg, nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
	flags := checkCmd.Flags()
	flags.StringP("config", "c", "", "Harness configuration file (YAML or JSON)")
	flags.Int("samples", harness.DefaultSamples, "Number of generated strings")
	flags.Uint64("seed", 0, "Seed (default random, recorded in the report)")
	flags.StringArrayP("pattern", "p", nil, "Regular expression tallied against every sample (repeatable)")
	flags.String("reference", "", "Pattern expected to accept exactly the automaton's language")
	flags.Bool("demo-reference", false, "Use the built-in demo's equivalent pattern as the reference")
	flags.String("alphabet", "", "Characters of the random reference inputs (default: the labels' characters)")
	flags.Int("inputs", harness.DefaultInputs, "Random strings compared against the reference")
	flags.Int("max-len", harness.DefaultMaxLen, "Maximum length of random reference inputs")
	flags.Int("workers", 0, "Parallel workers (default GOMAXPROCS)")
	flags.StringP("output", "o", cli.OutputAuto, "Report format: auto, text, markdown, json or yaml")
	storeFlags(checkCmd, cli.StoreNone)
}
