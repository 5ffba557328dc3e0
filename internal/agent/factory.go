package agent

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/jeanpaul/swarm/internal/chatio"
	"github.com/jeanpaul/swarm/internal/config"
	"github.com/jeanpaul/swarm/internal/provider"
	"github.com/jeanpaul/swarm/internal/schema"
	"github.com/jeanpaul/swarm/internal/subagent"
	"github.com/jeanpaul/swarm/internal/tools"
)

// ProfileLoader resolves agent profiles by name.
type ProfileLoader interface {
	Load(name string) (*config.AgentProfile, error)
}

// ToolScope is what a tool set is built for: the owning session's
// execution context, conversation and interactive sink.
type ToolScope struct {
	Exec         subagent.ExecContext
	Conversation *Conversation
	Display      io.Writer
}

// ToolsFunc builds the tool registry of one session.
type ToolsFunc func(ToolScope) *tools.Registry

// DefaultTools registers the file tools and launch_agent. Sub-agents get
// launch_agent too; the launcher rejects it by depth.
func DefaultTools(launcher tools.Launcher, validator *schema.Validator) ToolsFunc {
	return func(scope ToolScope) *tools.Registry {
		r := tools.NewRegistry(validator)
		tools.RegisterFileTools(r, scope.Exec.WorkDir)
		if launcher != nil {
			r.Register(&tools.LaunchAgentTool{
				Launcher:     launcher,
				Exec:         scope.Exec,
				Conversation: scope.Conversation,
				Display:      scope.Display,
			})
		}
		return r
	}
}

// Factory builds sessions for the launcher and for the top-level caller.
type Factory struct {
	Provider provider.Provider
	Profiles ProfileLoader
	Tools    ToolsFunc
	MaxTurns int
	// ContextTokens is the conversation size at which history is compacted.
	ContextTokens int
	Logger        zerolog.Logger
}

// NewSession implements subagent.SessionFactory.
func (f *Factory) NewSession(_ context.Context, cfg subagent.SessionConfig) (subagent.Session, error) {
	return f.Build(cfg)
}

// Build is NewSession with the concrete session type.
func (f *Factory) Build(cfg subagent.SessionConfig) (*Session, error) {
	if f.Provider == nil {
		return nil, fmt.Errorf("no provider configured")
	}

	var conv *Conversation
	switch c := cfg.Conversation.(type) {
	case nil:
		conv = NewConversation(cfg.ConversationID)
	case *Conversation:
		conv = c
	default:
		return nil, fmt.Errorf("unsupported conversation type %T", cfg.Conversation)
	}
	if conv.System() == "" {
		conv.SetSystem(BuildSystemPrompt(cfg.Exec.WorkDir))
	}
	conv.SetMaxTokens(f.ContextTokens)

	var model string
	if cfg.Profile != "" {
		if f.Profiles == nil {
			return nil, fmt.Errorf("profile %q requested but no profiles are configured", cfg.Profile)
		}
		p, err := f.Profiles.Load(cfg.Profile)
		if err != nil {
			return nil, err
		}
		if p.SystemPrompt != "" {
			conv.SetSystem(p.SystemPrompt)
		}
		model = p.Model
	}

	out := cfg.Output
	if out == nil {
		out = chatio.NewStandardIO()
	}

	var registry *tools.Registry
	if f.Tools != nil {
		registry = f.Tools(ToolScope{Exec: cfg.Exec, Conversation: conv, Display: out.Stderr()})
	}

	log := f.Logger.With().Str("conversation_id", conv.ID()).Int("depth", cfg.Exec.Depth).Logger()
	return NewSession(SessionOptions{
		Provider:     f.Provider,
		Tools:        registry,
		Conversation: conv,
		Output:       out,
		Interrupts:   cfg.Interrupts,
		Input:        cfg.Prompt,
		MaxTurns:     f.MaxTurns,
		Model:        model,
		Logger:       &log,
	}), nil
}
