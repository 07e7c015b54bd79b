package main

import (
	"bufio"
	"math/rand/v2"

	"github.com/aretw0/fsg"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print random strings accepted by the automaton",
	Long: `Walks the automaton from its start state, choosing an outbound transition
uniformly at random at every step, and prints the concatenated labels of each
walk on its own line. The same --seed always prints the same strings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetUint64("seed")
		if !cmd.Flags().Changed("seed") {
			seed = rand.Uint64()
		}

		engine, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		logger.Debug("Generating", "automaton", engine.Name, "count", count, "seed", seed)

		out := bufio.NewWriter(cmd.OutOrStdout())
		defer out.Flush()

		for sample, err := range engine.Generate(cmd.Context(), count, fsg.NewSource(seed)) {
			if err != nil {
				return err
			}
			if _, err := out.WriteString(sample + "\n"); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntP("count", "n", 1, "Number of strings to generate")
	generateCmd.Flags().Uint64("seed", 0, "Seed for a reproducible sequence (default random)")
}
