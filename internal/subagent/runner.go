package subagent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jeanpaul/swarm/internal/chatio"
	"github.com/jeanpaul/swarm/internal/interrupt"
	"github.com/jeanpaul/swarm/internal/summary"
)

// runner drives one sub-agent session inside its own buffer sink.
type runner struct {
	id       int
	spec     AgentSpec
	exec     ExecContext
	parent   Conversation
	sessions SessionFactory
	diag     Diagnostics
	sub      *interrupt.Subscription
	progress chan<- ProgressEvent
	newID    func() string
	log      zerolog.Logger
}

// runGuarded runs the agent and turns a panic into a crashed outcome.
func (r *runner) runGuarded(ctx context.Context) (out Outcome) {
	defer r.sub.Close()
	defer func() {
		if p := recover(); p != nil {
			r.log.Error().Int("agent_id", r.id).Str("agent", r.spec.DisplayName).
				Interface("panic", p).Msg("sub-agent crashed")
			out = Outcome{
				AgentID: r.id,
				Name:    r.spec.DisplayName,
				Kind:    OutcomeCrashed,
				Err:     fmt.Errorf("panic: %v", p),
			}
		}
	}()
	return r.run(ctx)
}

func (r *runner) run(ctx context.Context) Outcome {
	out := Outcome{AgentID: r.id, Name: r.spec.DisplayName}

	convID := r.newID()
	var conv Conversation
	if r.parent != nil {
		conv = r.parent.Fork(convID)
	}
	sink := &chatio.BufferedIO{}

	log := r.log.With().Int("agent_id", r.id).Str("agent", r.spec.DisplayName).
		Str("conversation_id", convID).Logger()

	tokens := 0
	defer func() {
		r.emit(ctx, ProgressEvent{AgentID: r.id, Status: StatusFinished, TokensUsed: tokens})
	}()

	sess, err := r.sessions.NewSession(ctx, SessionConfig{
		DisplayName:    r.spec.DisplayName,
		ConversationID: convID,
		Conversation:   conv,
		Prompt:         WrapPrompt(r.spec.Prompt),
		Profile:        r.spec.Profile,
		Output:         sink,
		Interrupts:     r.sub.C,
		Exec:           r.exec.Child(),
	})
	if err != nil {
		out.Kind = OutcomeFailure
		out.Err = fmt.Errorf("start session: %w", err)
		return out
	}

	stepErr := r.drive(ctx, sess, &tokens)
	out.TokensUsed = tokens
	log.Debug().Int("tokens", tokens).Err(stepErr).Msg("sub-agent session ended")

	transcript := sink.Bytes()
	if err := r.diag.Record(r.spec.DisplayName, convID, r.spec.Prompt, transcript); err != nil {
		out.Kind = OutcomeFailure
		out.Err = fmt.Errorf("write diagnostics: %w", err)
		return out
	}

	text := string(transcript)
	if report, ok := summary.Find(text); ok {
		out.Kind = OutcomeSuccess
		out.Report = report
		return out
	}
	if stepErr != nil {
		out.Kind = OutcomeFailure
		out.Err = stepErr
		return out
	}
	out.Kind = OutcomeSuccess
	out.Report = text
	return out
}

// drive steps the session until it is done, reporting progress after every
// step.
func (r *runner) drive(ctx context.Context, sess Session, tokens *int) error {
	for !sess.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := sess.Next(ctx)
		*tokens = sess.TokensUsed()
		if err != nil {
			return err
		}
		r.emit(ctx, ProgressEvent{AgentID: r.id, Status: sess.Status(), TokensUsed: *tokens})
	}
	return nil
}

func (r *runner) emit(ctx context.Context, ev ProgressEvent) {
	select {
	case r.progress <- ev:
	case <-ctx.Done():
	}
}
