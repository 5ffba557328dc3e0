// Package headless runs the top-level session on the terminal without a UI.
//
// Assistant text goes to Stdout, activity (tool calls, the launch roster and
// status board, errors) to Stderr, so the answer can be piped on its own.
package headless

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeanpaul/swarm/internal/agent"
	"github.com/jeanpaul/swarm/internal/chatio"
	"github.com/jeanpaul/swarm/internal/subagent"
	"github.com/jeanpaul/swarm/internal/tools"
	"github.com/jeanpaul/swarm/internal/tui"
)

// Options configures a headless run. Zero values mean the process streams
// and working directory.
type Options struct {
	WorkDir string
	Stdout  io.Writer
	Stderr  io.Writer
	// Input, when set, is read for follow-up prompts after each answer. An
	// empty line, "exit" or EOF ends the run.
	Input io.Reader
	Log   zerolog.Logger
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.WorkDir == "" {
		o.WorkDir, _ = os.Getwd()
	}
}

// Run starts a depth 0 session on prompt and drives it until it answers.
// With opts.Input it keeps going for as long as the user has follow-ups.
func Run(ctx context.Context, f *agent.Factory, prompt string, opts Options) (*agent.Session, error) {
	opts.defaults()

	sess, err := f.Build(subagent.SessionConfig{
		Prompt: prompt,
		Output: chatio.NewStandardIOWith(opts.Stdout, opts.Stderr),
		Exec:   subagent.ExecContext{WorkDir: opts.WorkDir},
	})
	if err != nil {
		return nil, err
	}
	opts.Log.Info().Str("conversation_id", sess.Conversation().ID()).Msg("session started")

	var scanner *bufio.Scanner
	if opts.Input != nil {
		scanner = bufio.NewScanner(opts.Input)
	}
	for {
		if err := sess.Run(ctx); err != nil {
			return sess, err
		}
		if scanner == nil {
			return sess, nil
		}

		fmt.Fprint(opts.Stderr, tui.BulletStyle.Render("> "))
		if !scanner.Scan() {
			return sess, scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "exit" || line == "quit" {
			return sess, nil
		}
		if err := sess.Submit(line); err != nil {
			return sess, err
		}
	}
}

// Launch runs specs from the top level, as if the parent session had called
// launch_agent with them, and writes the combined report to opts.Stdout.
func Launch(ctx context.Context, l tools.Launcher, specs []subagent.AgentSpec, opts Options) (string, error) {
	opts.defaults()

	conv := agent.NewConversation("")
	conv.SetSystem(agent.BuildSystemPrompt(opts.WorkDir))
	report, err := l.Launch(ctx, subagent.ExecContext{WorkDir: opts.WorkDir}, conv, specs, opts.Stderr)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(report) == "" {
		fmt.Fprintln(opts.Stderr, tui.ErrorStyle.Render("No agent produced a report."))
		return "", nil
	}
	if _, err := io.WriteString(opts.Stdout, report); err != nil {
		return "", err
	}
	return report, nil
}
