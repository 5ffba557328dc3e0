// Package interrupt rebroadcasts the process interrupt signal to every
// running session.
//
// Delivery is advisory. A receiver sees the signal only when it checks its
// channel, which sessions do between steps.
package interrupt

import (
	"context"
	"os"
	"os/signal"
	"sync"
)

// Backlog is the number of undelivered interrupts a subscription holds.
// Further interrupts are dropped until the receiver catches up.
const Backlog = 4

// Subscription receives one value per interrupt published after it was
// created.
type Subscription struct {
	C <-chan struct{}

	ch     chan struct{}
	b      *Broadcaster
	closed bool
}

// Close detaches the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	delete(s.b.subs, s)
}

// Broadcaster fans one interrupt out to every open subscription.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a new receiver. Interrupts published before this call
// are not replayed.
func (b *Broadcaster) Subscribe() *Subscription {
	ch := make(chan struct{}, Backlog)
	s := &Subscription{C: ch, ch: ch, b: b}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s
}

// Publish delivers one interrupt to every subscription without blocking and
// reports how many subscriptions were open. Having none is not an error.
func (b *Broadcaster) Publish() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs {
		select {
		case s.ch <- struct{}{}:
		default:
		}
	}
	return len(b.subs)
}

// Subscribers returns the number of open subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Listen blocks on os.Interrupt until ctx is done, publishing each signal.
// When a signal arrives with no subscriber open, onIdle is called instead so
// the caller can fall back to its own shutdown path.
func (b *Broadcaster) Listen(ctx context.Context, onIdle func()) {
	sigs := make(chan os.Signal, Backlog)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sigs:
			if b.Publish() == 0 && onIdle != nil {
				onIdle()
			}
		}
	}
}
