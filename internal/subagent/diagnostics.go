package subagent

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Diagnostics receives a copy of every sub-agent transcript.
type Diagnostics interface {
	// Reset is called once at the start of each launch.
	Reset() error
	// Record stores one finished transcript.
	Record(displayName, conversationID, prompt string, transcript []byte) error
}

// NopDiagnostics discards everything.
type NopDiagnostics struct{}

func (NopDiagnostics) Reset() error                                { return nil }
func (NopDiagnostics) Record(string, string, string, []byte) error { return nil }

// SharedLogName is truncated by FileDiagnostics.Reset.
const SharedLogName = "debug.log"

// FileDiagnostics writes one append-only log per agent under Dir.
type FileDiagnostics struct {
	Dir string
}

func (d FileDiagnostics) Reset() error {
	if err := os.MkdirAll(d.dir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.dir(), SharedLogName), nil, 0644)
}

// Record appends the prompt followed by every transcript line to
// {name}_{conversationID}_debug.log.
func (d FileDiagnostics) Record(displayName, conversationID, prompt string, transcript []byte) (err error) {
	f, err := os.OpenFile(d.Path(displayName, conversationID), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintln(w, prompt); err != nil {
		return err
	}
	sc := bufio.NewScanner(bytes.NewReader(transcript))
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for sc.Scan() {
		if _, err := fmt.Fprintln(w, strings.TrimRight(sc.Text(), " \t\r")); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return w.Flush()
}

// Path returns the per-agent log path.
func (d FileDiagnostics) Path(displayName, conversationID string) string {
	return filepath.Join(d.dir(), fmt.Sprintf("%s_%s_debug.log", SanitizeName(displayName), conversationID))
}

func (d FileDiagnostics) dir() string {
	if d.Dir == "" {
		return "."
	}
	return d.Dir
}

var unsafeNameRe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeName turns a display name into a file name fragment.
func SanitizeName(name string) string {
	s := unsafeNameRe.ReplaceAllString(strings.TrimSpace(name), "_")
	s = strings.Trim(s, ".")
	if s == "" {
		return "agent"
	}
	return s
}
