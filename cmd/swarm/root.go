package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfgFile      string
	providerName string
	modelName    string
	logLevel     string
	rawOutput    bool
)

var rootCmd = &cobra.Command{
	Use:   "swarm",
	Short: "Swarm - parallel sub-agents for codebase investigations",
	Long: `Swarm runs a coding assistant that can split broad questions into
independent tasks, work on them with parallel sub-agents and combine their
reports into one answer.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.config/swarm/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&providerName, "provider", "", "provider name from the config (default is default_provider)")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "model name (default is the provider's model)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&rawOutput, "raw", false, "print answers as plain text instead of rendered markdown")

	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
}
