package subagent

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jeanpaul/swarm/internal/interrupt"
	"github.com/jeanpaul/swarm/internal/metrics"
	"github.com/jeanpaul/swarm/internal/tui"
)

// AllCompleted is printed once every agent has finished.
const AllCompleted = "All agents have completed."

// Launcher starts sets of sub-agents in parallel and collects their reports.
type Launcher struct {
	sessions   SessionFactory
	interrupts *interrupt.Broadcaster
	diag       Diagnostics
	log        zerolog.Logger
	metrics    *metrics.Metrics
	spinner    bool
	newID      func() string
}

type Option func(*Launcher)

func WithDiagnostics(d Diagnostics) Option {
	return func(l *Launcher) {
		if d != nil {
			l.diag = d
		}
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(l *Launcher) { l.log = log }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Launcher) { l.metrics = m }
}

// WithSpinner enables the completion spinner below the board.
func WithSpinner(enabled bool) Option {
	return func(l *Launcher) { l.spinner = enabled }
}

// WithIDGenerator replaces the conversation id source.
func WithIDGenerator(f func() string) Option {
	return func(l *Launcher) {
		if f != nil {
			l.newID = f
		}
	}
}

// NewLauncher returns a launcher that builds sessions from sessions. A nil
// broadcaster means interrupts are never delivered.
func NewLauncher(sessions SessionFactory, interrupts *interrupt.Broadcaster, opts ...Option) *Launcher {
	if interrupts == nil {
		interrupts = interrupt.NewBroadcaster()
	}
	l := &Launcher{
		sessions:   sessions,
		interrupts: interrupts,
		diag:       NopDiagnostics{},
		log:        zerolog.Nop(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch runs one agent per spec against a fork of conv, shows the roster
// and live status board on display, and returns the combined report.
//
// A launch from inside a sub-agent (exec.Depth > 0) returns
// NestedLaunchRejected without side effects.
func (l *Launcher) Launch(ctx context.Context, exec ExecContext, conv Conversation, specs []AgentSpec, display io.Writer) (string, error) {
	if exec.Depth > 0 {
		l.metrics.RecordRejected()
		l.log.Warn().Int("depth", exec.Depth).Int("agents", len(specs)).Msg("nested sub-agent launch rejected")
		return NestedLaunchRejected, nil
	}
	if err := ValidateAll(specs); err != nil {
		return "", err
	}
	if len(specs) == 0 {
		return "", nil
	}

	if err := l.diag.Reset(); err != nil {
		return "", fmt.Errorf("reset diagnostics: %w", err)
	}
	if err := WriteRoster(display, specs); err != nil {
		return "", err
	}

	n := len(specs)
	l.metrics.RecordLaunch()
	l.log.Info().Int("agents", n).Msg("launching sub-agents")
	started := time.Now()

	results := make(chan Outcome, n)
	progress := make(chan ProgressEvent, 4*n)

	runners := make([]*runner, n)
	for i, spec := range specs {
		runners[i] = &runner{
			id:       i,
			spec:     spec,
			exec:     exec,
			parent:   conv,
			sessions: l.sessions,
			diag:     l.diag,
			sub:      l.interrupts.Subscribe(),
			progress: progress,
			newID:    l.newID,
			log:      l.log,
		}
	}

	var g errgroup.Group
	for _, r := range runners {
		g.Go(func() error {
			results <- r.runGuarded(ctx)
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
		close(progress)
	}()

	outcomes, err := l.collect(specs, results, progress, display)
	if err != nil {
		return "", err
	}

	l.metrics.RecordLaunchDuration(time.Since(started))
	for _, o := range outcomes {
		l.metrics.RecordOutcome(o.Kind.String(), o.TokensUsed)
		ev := l.log.Info()
		if o.Kind != OutcomeSuccess {
			ev = l.log.Warn().AnErr("error", o.Err)
		}
		ev.Int("agent_id", o.AgentID).Str("agent", o.Name).Str("outcome", o.Kind.String()).
			Int("tokens", o.TokensUsed).Msg("sub-agent finished")
	}

	return Aggregate(outcomes, display)
}

// collect is the orchestrator loop. It is the only reader of results and
// progress and the only writer of the board. Outcomes are returned in
// completion order.
func (l *Launcher) collect(specs []AgentSpec, results <-chan Outcome, progress <-chan ProgressEvent, display io.Writer) ([]Outcome, error) {
	n := len(specs)
	board := NewBoard(specs)
	outcomes := make([]Outcome, 0, n)

	var spin progressIndicator = noProgress{}
	if l.spinner {
		spin = newLineSpinner(display)
	}
	defer spin.Stop()

	status := func() string { return fmt.Sprintf("Progress: %d/%d agents complete", len(outcomes), n) }
	spin.Start(status())

	for results != nil || progress != nil {
		select {
		case o, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			outcomes = append(outcomes, o)
			spin.Start(status())

		case ev, ok := <-progress:
			if !ok {
				progress = nil
				continue
			}
			if !board.Apply(ev) {
				continue
			}
			spin.Stop()
			if err := board.Draw(display); err != nil {
				go drain(results, progress)
				return nil, err
			}
			spin.Start(status())
		}
	}

	forced := false
	for i := range specs {
		if !board.Finished(i) {
			board.Apply(ProgressEvent{AgentID: i, Status: StatusFinished, TokensUsed: board.Tokens(i)})
			forced = true
		}
	}
	spin.Stop()
	if forced {
		if err := board.Draw(display); err != nil {
			return nil, err
		}
	}
	if _, err := fmt.Fprintln(display, tui.HeaderStyle.Render(AllCompleted)); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// drain empties both channels so runners never block on a loop that has
// given up.
func drain(results <-chan Outcome, progress <-chan ProgressEvent) {
	for results != nil || progress != nil {
		select {
		case _, ok := <-results:
			if !ok {
				results = nil
			}
		case _, ok := <-progress:
			if !ok {
				progress = nil
			}
		}
	}
}
