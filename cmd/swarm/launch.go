package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/swarm/internal/headless"
	"github.com/jeanpaul/swarm/internal/subagent"
)

var specFile string

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Launch sub-agents from a spec file",
	Long: `Launch runs the agents listed in a YAML or JSON spec file in parallel,
shows their progress on stderr and prints the combined report on stdout.

A spec file is a list of agents, or an object with a "subagents" list:

  - agent_display_name: Parser Audit
    prompt: Review internal/parser for error handling gaps.
    prompt_summary: audit parser error handling
    agent_cli_name: reviewer   # optional profile`,
	Args: cobra.NoArgs,
	RunE: runLaunch,
}

func init() {
	launchCmd.Flags().StringVarP(&specFile, "file", "f", "", "spec file, or - for stdin")
	launchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	data, err := readSpecFile(cmd, specFile)
	if err != nil {
		return err
	}

	a, ctx, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	specs, err := subagent.ParseSpecs(data, a.validator)
	if err != nil {
		return err
	}

	_, err = headless.Launch(ctx, a.launcher, specs, headless.Options{
		WorkDir: a.workDir,
		Stdout:  a.answerWriter(),
		Stderr:  os.Stderr,
		Log:     a.log.Logger,
	})
	return err
}

func readSpecFile(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	return data, nil
}
