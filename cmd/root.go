package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/footyhub/uganda-footy-hub/internal/config"
)

var (
	version = "dev"
	commit  = "none"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:          "footyhub",
	Short:        "Uganda Footy Hub content gateway",
	Long:         "footyhub serves Ugandan football history, clubs, news and weather over HTTP and Telegram.",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to an hcl config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "footyhub %s (commit: %s)\n", version, commit)
	},
}

func loadConfig() (config.Config, error) {
	if flagConfig != "" {
		return config.Load(flagConfig)
	}
	return config.Get()
}
