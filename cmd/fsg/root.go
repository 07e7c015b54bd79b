package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/fsg"
	"github.com/aretw0/fsg/internal/cli"
	"github.com/spf13/cobra"
)

// errSilentExit signals a non-zero exit whose reason was already printed.
var errSilentExit = errors.New("exit status 1")

var rootCmd = &cobra.Command{
	Use:   "fsg",
	Short: "fsg generates and matches strings of a finite automaton",
	Long: `fsg loads a labelled finite automaton and either walks it at random to
generate accepted strings or searches it backwards to decide membership.

Without --def it looks for automaton.yaml, automaton.yml, automaton.json or a
states/ directory in the working directory, and falls back to a built-in demo.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Commands run under a context cancelled on SIGINT or SIGTERM.
func Execute() {
	ctx := cli.NewSignalContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	ctx.Cancel()
	if err != nil {
		if !errors.Is(err, errSilentExit) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("def", "", "Automaton definition: a YAML/JSON file or a Loam directory of state documents")
	flags.Bool("debug", false, "Enable debug logging of every walk and search")
	flags.String("log-format", "text", "Log format: text or json")
	flags.Int("max-steps", -1, "Abort generator walks after this many steps (0 disables the limit, -1 keeps the default)")
	flags.String("mode", "", "Matcher label mode: reversed or literal (default from the definition)")
}

// setup builds the logger and engine from the persistent flags.
func setup(cmd *cobra.Command, extra ...fsg.Option) (*fsg.Engine, *slog.Logger, error) {
	flags := cmd.Flags()
	def, _ := flags.GetString("def")
	debug, _ := flags.GetBool("debug")
	format, _ := flags.GetString("log-format")
	maxSteps, _ := flags.GetInt("max-steps")
	mode, _ := flags.GetString("mode")

	logger, err := cli.NewLogger(debug, format)
	if err != nil {
		return nil, nil, err
	}

	engine, err := cli.CreateEngine(cmd.Context(), cli.Options{
		Def:       def,
		Debug:     debug,
		LogFormat: format,
		MaxSteps:  maxSteps,
		Mode:      mode,
	}, logger, extra...)
	if err != nil {
		return nil, nil, err
	}
	return engine, logger, nil
}

// storeFlags registers the report store flags shared by check and serve.
func storeFlags(cmd *cobra.Command, defaultKind string) {
	cmd.Flags().String("store", defaultKind, "Report store: none, memory, file or redis")
	cmd.Flags().String("store-path", "", "Directory of the file store (default .fsg/reports)")
	cmd.Flags().String("redis-url", os.Getenv("FSG_REDIS_URL"), "Redis URL for the redis store (env FSG_REDIS_URL)")
	cmd.Flags().Duration("report-ttl", 0, "Expiry of reports in the redis store (0 keeps them)")
}

func storeOptions(cmd *cobra.Command) cli.StoreOptions {
	kind, _ := cmd.Flags().GetString("store")
	path, _ := cmd.Flags().GetString("store-path")
	url, _ := cmd.Flags().GetString("redis-url")
	ttl, _ := cmd.Flags().GetDuration("report-ttl")
	return cli.StoreOptions{Kind: kind, Path: path, RedisURL: url, TTL: ttl}
}
