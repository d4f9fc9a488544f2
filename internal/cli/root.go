package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var scenarioDir string

var rootCmd = &cobra.Command{
	Use:   "awareness",
	Short: "Awareness Simulator CLI - play and check phishing scenarios locally",
	Long: `Awareness Simulator CLI validates scenario files, lists the built-in
catalog and plays chat or email scenarios in the terminal with the same
playback engine the server uses.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&scenarioDir, "dir", "", "extra directory with scenario YAML files")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(tokenCmd)
}
