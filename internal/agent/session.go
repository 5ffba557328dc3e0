package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeanpaul/swarm/internal/chatio"
	"github.com/jeanpaul/swarm/internal/provider"
	"github.com/jeanpaul/swarm/internal/tools"
	"github.com/jeanpaul/swarm/internal/tui"
)

const MaxTurns = 50 // prevent infinite agent loops

var (
	ErrInterrupted = errors.New("interrupted")
	ErrMaxTurns    = errors.New("reached maximum number of turns")
)

// State is a session's position in its conversation loop.
type State int

const (
	// StateHandleInput adds the pending user input to the conversation.
	StateHandleInput State = iota
	// StateRequest asks the model for its next turn.
	StateRequest
	// StateExecuteTools runs the tool calls of the last turn.
	StateExecuteTools
	// StatePromptUser means the model answered and waits for the user.
	StatePromptUser
	// StateExit is terminal.
	StateExit
)

func (s State) String() string {
	switch s {
	case StateHandleInput:
		return "handle-input"
	case StateRequest:
		return "request"
	case StateExecuteTools:
		return "execute-tools"
	case StatePromptUser:
		return "prompt-user"
	case StateExit:
		return "exit"
	default:
		return "unknown"
	}
}

const (
	statusThinking = "Thinking..."
	statusWaiting  = "Waiting for input"
	statusStopped  = "Stopped"
)

// fallbackToolRe matches text-form tool calls, [TOOL:name|{json}], from
// models without native tool support.
var fallbackToolRe = regexp.MustCompile(`\[TOOL:(\w+)\|(.+?)\]`)

// Session drives one conversation one state transition at a time. It is
// not safe for concurrent use.
type Session struct {
	prov       provider.Provider
	tools      *tools.Registry
	conv       *Conversation
	out        chatio.Output
	interrupts <-chan struct{}
	maxTurns   int
	maxTokens  int
	model      string
	log        zerolog.Logger

	state   State
	input   string
	pending []provider.ToolCall
	turns   int
	status  string
	usage   int
	err     error
}

// SessionOptions configures NewSession. Tools and Output may be nil.
type SessionOptions struct {
	Provider     provider.Provider
	Tools        *tools.Registry
	Conversation *Conversation
	Output       chatio.Output
	Interrupts   <-chan struct{}
	Input        string
	MaxTurns     int
	MaxTokens    int
	Model        string
	Logger       *zerolog.Logger
}

// NewSession returns a session that starts by submitting opts.Input.
func NewSession(opts SessionOptions) *Session {
	s := &Session{
		prov:       opts.Provider,
		tools:      opts.Tools,
		conv:       opts.Conversation,
		out:        opts.Output,
		interrupts: opts.Interrupts,
		maxTurns:   opts.MaxTurns,
		maxTokens:  opts.MaxTokens,
		model:      opts.Model,
		log:        zerolog.Nop(),
		state:      StateHandleInput,
		input:      opts.Input,
		status:     statusThinking,
	}
	if s.tools == nil {
		s.tools = tools.NewRegistry(nil)
	}
	if s.conv == nil {
		s.conv = NewConversation("")
	}
	if s.out == nil {
		s.out = &chatio.BufferedIO{}
	}
	if s.maxTurns <= 0 {
		s.maxTurns = MaxTurns
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	}
	return s
}

func (s *Session) Conversation() *Conversation { return s.conv }
func (s *Session) State() State                { return s.state }
func (s *Session) Status() string              { return s.status }

// Err is the error that ended the session, if any.
func (s *Session) Err() error { return s.err }

// Done reports whether the session exited or is waiting for user input.
func (s *Session) Done() bool {
	return s.state == StatePromptUser || s.state == StateExit
}

// TokensUsed is the provider-reported usage so far, or the estimated
// conversation size for providers that report none.
func (s *Session) TokensUsed() int {
	if s.usage > 0 {
		return s.usage
	}
	return s.conv.EstimatedTokens()
}

// Submit queues user input for a session waiting in StatePromptUser.
func (s *Session) Submit(input string) error {
	if s.state != StatePromptUser {
		return fmt.Errorf("session is in state %s, not waiting for input", s.state)
	}
	s.input = input
	s.state = StateHandleInput
	s.status = statusThinking
	return nil
}

// Next advances the session by one state transition. Interrupts are
// checked here, between transitions only.
func (s *Session) Next(ctx context.Context) error {
	if s.Done() {
		return s.err
	}
	select {
	case <-s.interrupts:
		fmt.Fprintln(s.out.Stderr(), tui.InterruptStyle.Render("^C Interrupted"))
		return s.exit(ErrInterrupted)
	default:
	}
	if err := ctx.Err(); err != nil {
		return s.exit(err)
	}

	switch s.state {
	case StateHandleInput:
		s.conv.AddUser(s.input)
		s.input = ""
		s.state = StateRequest
		return nil
	case StateRequest:
		return s.request(ctx)
	case StateExecuteTools:
		return s.executeTools(ctx)
	}
	return nil
}

// Run steps the session until it is done.
func (s *Session) Run(ctx context.Context) error {
	for !s.Done() {
		if err := s.Next(ctx); err != nil {
			return err
		}
	}
	return s.err
}

func (s *Session) exit(err error) error {
	s.state = StateExit
	s.status = statusStopped
	s.err = err
	return err
}

func (s *Session) request(ctx context.Context) error {
	if s.turns >= s.maxTurns {
		return s.exit(fmt.Errorf("%w (%d)", ErrMaxTurns, s.maxTurns))
	}
	s.turns++
	s.status = statusThinking

	resp, err := s.prov.Chat(ctx, provider.Request{
		System:    s.conv.System(),
		Messages:  s.conv.Messages(),
		Tools:     s.tools.ToolDefs(),
		MaxTokens: s.maxTokens,
		Model:     s.model,
	})
	if err != nil {
		fmt.Fprintln(s.out.Stderr(), tui.ErrorStyle.Render("Error: "+err.Error()))
		return s.exit(err)
	}
	s.usage += resp.Usage.Total()

	calls := resp.ToolCalls
	if len(calls) == 0 {
		calls = fallbackToolCalls(resp.Content, s.turns)
	}
	s.conv.AddAssistant(resp.Content, calls)
	if resp.Content != "" {
		if _, err := io.WriteString(s.out.Stdout(), strings.TrimRight(resp.Content, "\n")+"\n"); err != nil {
			return s.exit(err)
		}
	}

	s.log.Debug().Int("turn", s.turns).Int("tool_calls", len(calls)).Int("tokens", s.TokensUsed()).Msg("model turn")

	if len(calls) == 0 {
		s.state = StatePromptUser
		s.status = statusWaiting
		return nil
	}
	s.pending = calls
	s.state = StateExecuteTools
	s.status = "Using tool: " + toolNames(calls)
	return nil
}

func (s *Session) executeTools(ctx context.Context) error {
	for _, tc := range s.pending {
		fmt.Fprintf(s.out.Stderr(), "● %s(%s)\n", tc.Name, formatToolArgs(tc.Name, tc.Args))

		res, err := s.tools.Execute(ctx, tc.Name, tc.Args)
		var output string
		switch {
		case err != nil:
			output = "tool execution error: " + err.Error()
		case res.Error != "":
			output = res.Output
			if output != "" {
				output += "\n"
			}
			output += "Error: " + res.Error
		default:
			output = res.Output
		}
		s.conv.AddToolResult(tc.ID, output)
		fmt.Fprintf(s.out.Stderr(), "  ⎿ %s\n", truncateText(output, 120))
	}
	s.pending = nil
	s.state = StateRequest
	s.status = statusThinking
	return nil
}

func fallbackToolCalls(text string, turn int) []provider.ToolCall {
	var calls []provider.ToolCall
	for i, m := range fallbackToolRe.FindAllStringSubmatch(text, -1) {
		calls = append(calls, provider.ToolCall{
			ID:   fmt.Sprintf("fallback-%d-%d", turn, i),
			Name: m[1],
			Args: m[2],
		})
	}
	return calls
}

func toolNames(calls []provider.ToolCall) string {
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

func formatToolArgs(toolName, rawArgs string) string {
	var parsed map[string]any
	if json.Unmarshal([]byte(rawArgs), &parsed) == nil {
		switch toolName {
		case "file_read", "file_ls":
			if p, ok := parsed["path"]; ok {
				return fmt.Sprintf("%v", p)
			}
		case "file_search":
			if p, ok := parsed["pattern"]; ok {
				return fmt.Sprintf("pattern=%v", p)
			}
			if g, ok := parsed["grep"]; ok {
				return fmt.Sprintf("grep=%v", g)
			}
		case "launch_agent":
			if agents, ok := parsed["subagents"].([]any); ok {
				return fmt.Sprintf("%d agents", len(agents))
			}
		}
	}
	if len(rawArgs) > 80 {
		return rawArgs[:80] + "..."
	}
	return rawArgs
}
