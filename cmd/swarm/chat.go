package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/swarm/internal/agent"
	"github.com/jeanpaul/swarm/internal/headless"
)

var (
	interactive bool
	saveDir     string
)

var chatCmd = &cobra.Command{
	Use:   "chat <prompt>",
	Short: "Ask the assistant, which may delegate to sub-agents",
	Long: `Chat sends the prompt to the top-level assistant. The assistant can read
and search the working directory and launch parallel sub-agents with the
launch_agent tool. The answer goes to stdout, activity to stderr.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "keep reading follow-up prompts from stdin")
	chatCmd.Flags().StringVar(&saveDir, "save", "", "save the conversation as JSON into this directory")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	a, ctx, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	opts := headless.Options{
		WorkDir: a.workDir,
		Stdout:  a.answerWriter(),
		Stderr:  os.Stderr,
		Log:     a.log.Logger,
	}
	if interactive {
		opts.Input = cmd.InOrStdin()
	}

	sess, err := headless.Run(ctx, a.factory, strings.Join(args, " "), opts)
	if sess != nil && saveDir != "" {
		path, serr := sess.Conversation().Save(saveDir)
		if serr != nil {
			return errors.Join(err, serr)
		}
		a.log.Info().Str("path", path).Msg("conversation saved")
	}
	if errors.Is(err, agent.ErrInterrupted) {
		return nil
	}
	return err
}
