package subagent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/x/ansi"
)

// fakeSession finishes after a fixed number of steps and writes reply to
// its stdout on the last one.
type fakeSession struct {
	cfg   SessionConfig
	steps int
	reply string
	err   error
	panic string
	// waitInterrupt makes the first step block until an interrupt arrives.
	waitInterrupt bool
	started       chan<- struct{}

	step int
	done bool
}

func (s *fakeSession) Next(ctx context.Context) error {
	if s.panic != "" {
		panic(s.panic)
	}
	if s.waitInterrupt {
		if s.started != nil {
			s.started <- struct{}{}
		}
		select {
		case <-s.cfg.Interrupts:
			fmt.Fprintln(s.cfg.Output.Stdout(), "[SUMMARY] interrupted [/SUMMARY]")
			s.done = true
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.step++
	fmt.Fprintf(s.cfg.Output.Stderr(), "step %d\n", s.step)
	if s.step >= s.steps {
		fmt.Fprint(s.cfg.Output.Stdout(), s.reply)
		s.done = true
		return s.err
	}
	return nil
}

func (s *fakeSession) Done() bool      { return s.done }
func (s *fakeSession) Status() string  { return fmt.Sprintf("Working on step %d", s.step) }
func (s *fakeSession) TokensUsed() int { return s.step * 100 }

// fakeFactory builds sessions from per-agent templates keyed by display
// name and records every config it sees.
type fakeFactory struct {
	mu        sync.Mutex
	templates map[string]fakeSession
	configs   []SessionConfig
	err       error
}

func (f *fakeFactory) NewSession(_ context.Context, cfg SessionConfig) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.configs = append(f.configs, cfg)
	if f.err != nil {
		return nil, f.err
	}
	s := f.templates[cfg.DisplayName]
	s.cfg = cfg
	if s.steps == 0 {
		s.steps = 1
	}
	return &s, nil
}

func (f *fakeFactory) seen() []SessionConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SessionConfig(nil), f.configs...)
}

type fakeConversation struct {
	id    string
	mu    sync.Mutex
	forks []string
}

func (c *fakeConversation) ID() string { return c.id }

func (c *fakeConversation) Fork(id string) Conversation {
	c.mu.Lock()
	c.forks = append(c.forks, id)
	c.mu.Unlock()
	return &fakeConversation{id: id}
}

func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("conv-%d", n.Add(1)) }
}

// syncBuffer is a display that tolerates the spinner goroutine.
type syncBuffer struct {
	mu sync.Mutex
	sb strings.Builder
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.String()
}

var errWrite = errors.New("display closed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

// lastBoard returns the text of the final board drawing.
func lastBoard(display string) string {
	if i := strings.LastIndex(display, ansi.EraseScreenBelow); i >= 0 {
		return display[i+len(ansi.EraseScreenBelow):]
	}
	return display
}

func spec(name, prompt string) AgentSpec {
	return AgentSpec{DisplayName: name, Prompt: prompt, PromptSummary: "summary of " + name}
}
