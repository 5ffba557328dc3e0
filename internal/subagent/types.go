package subagent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jeanpaul/swarm/internal/chatio"
)

// NestedLaunchRejected is returned in place of a report when a sub-agent
// tries to launch sub-agents of its own.
const NestedLaunchRejected = "Nested subagent launch prevented for performance reasons."

// DefaultProfile is shown when an agent has no profile.
const DefaultProfile = "Default"

var ErrEmptyPrompt = errors.New("prompt cannot be empty")

// AgentSpec describes one agent to launch.
type AgentSpec struct {
	// 3-5 word name identifying the agent on the status board
	DisplayName string `json:"agent_display_name" yaml:"agent_display_name"`
	// Task handed to the agent
	Prompt string `json:"prompt" yaml:"prompt"`
	// One-line description shown in the roster
	PromptSummary string `json:"prompt_summary" yaml:"prompt_summary"`
	// Optional agent profile; empty means the default profile
	Profile string `json:"agent_cli_name,omitempty" yaml:"agent_cli_name,omitempty"`
}

// Validate rejects specs whose prompt is empty or whitespace.
func (s AgentSpec) Validate() error {
	if strings.TrimSpace(s.Prompt) == "" {
		return fmt.Errorf("agent %q: %w", s.DisplayName, ErrEmptyPrompt)
	}
	return nil
}

func (s AgentSpec) profileLabel() string {
	if s.Profile == "" {
		return DefaultProfile
	}
	return s.Profile
}

// ValidateAll validates every spec and joins the failures.
func ValidateAll(specs []AgentSpec) error {
	var errs []error
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ExecContext is the execution context shared by a launch request. Depth is
// zero for the top-level session and grows by one per sub-agent generation.
type ExecContext struct {
	Depth   int
	WorkDir string
}

// Child returns the context handed to sessions started by a launch.
func (e ExecContext) Child() ExecContext {
	e.Depth++
	return e
}

// StatusFinished is the terminal status every agent reaches exactly once.
const StatusFinished = "Agent finished"

const statusLaunching = "Launching agent..."

// ProgressEvent is a status update from one runner.
type ProgressEvent struct {
	AgentID    int
	Status     string
	TokensUsed int
}

func (e ProgressEvent) Finished() bool { return e.Status == StatusFinished }

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeFailure
	OutcomeCrashed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one runner, produced exactly once.
type Outcome struct {
	AgentID    int
	Name       string
	Kind       OutcomeKind
	Report     string
	Err        error
	TokensUsed int
}

// Session is the embedded conversational agent driven by a runner.
type Session interface {
	// Next advances the session by one state transition.
	Next(ctx context.Context) error
	// Done reports whether the session exited or is waiting for user input.
	Done() bool
	// Status is a human-readable description of what the session is doing.
	Status() string
	TokensUsed() int
}

// Conversation is the history a session runs against.
type Conversation interface {
	ID() string
	// Fork copies the conversation under a new id.
	Fork(id string) Conversation
}

// SessionConfig is everything a runner hands to a new session.
type SessionConfig struct {
	DisplayName    string
	ConversationID string
	Conversation   Conversation
	Prompt         string
	Profile        string
	Output         chatio.Output
	Interrupts     <-chan struct{}
	Exec           ExecContext
}

type SessionFactory interface {
	NewSession(ctx context.Context, cfg SessionConfig) (Session, error)
}

// SessionFactoryFunc adapts a function to SessionFactory.
type SessionFactoryFunc func(ctx context.Context, cfg SessionConfig) (Session, error)

func (f SessionFactoryFunc) NewSession(ctx context.Context, cfg SessionConfig) (Session, error) {
	return f(ctx, cfg)
}
