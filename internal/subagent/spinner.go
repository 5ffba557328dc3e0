package subagent

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/x/ansi"

	"github.com/jeanpaul/swarm/internal/tui"
)

// progressIndicator shows the completion count below the board. Stop must
// return only once the indicator has finished writing, so the loop can
// redraw the board without interleaving.
type progressIndicator interface {
	Start(msg string)
	Stop()
}

type noProgress struct{}

func (noProgress) Start(string) {}
func (noProgress) Stop()        {}

// lineSpinner animates bubbles' Dot frames on a single line.
type lineSpinner struct {
	w      io.Writer
	frames []string
	fps    time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func newLineSpinner(w io.Writer) *lineSpinner {
	return &lineSpinner{w: w, frames: spinner.Dot.Frames, fps: spinner.Dot.FPS}
}

func (s *lineSpinner) Start(msg string) {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.spin(msg, s.stop, s.done)
}

func (s *lineSpinner) spin(msg string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.fps)
	defer ticker.Stop()

	for i := 0; ; i++ {
		frame := tui.SpinnerStyle.Render(s.frames[i%len(s.frames)])
		if _, err := io.WriteString(s.w, "\r"+ansi.EraseEntireLine+frame+" "+msg); err != nil {
			return
		}
		select {
		case <-stop:
			_, _ = io.WriteString(s.w, "\r"+ansi.EraseEntireLine)
			return
		case <-ticker.C:
		}
	}
}

func (s *lineSpinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop, s.done = nil, nil
}
