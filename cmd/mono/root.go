package main

import (
	"github.com/spf13/cobra"

	"github.com/relcraft/mono/internal/monolog"
)

var (
	flagDir     string
	flagConfig  string
	flagLogFile string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "mono",
	Short:         "Conventional-commit release engine for polyglot monorepos",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		monolog.New(monolog.Options{Verbose: flagVerbose, LogFile: flagLogFile})
	},
}

// Execute runs the command tree and returns any error returned by the
// selected subcommand.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", ".", "workspace root directory")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "directory to search for .mono.toml (default: workspace root)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "write JSON-lines logs to this rotating file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scopeCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(changelogCmd)
}
