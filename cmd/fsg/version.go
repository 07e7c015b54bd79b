package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsg"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fsg",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fsg version %s\n", strings.TrimSpace(fsg.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
