// Package chatio provides the output sinks a chat session writes to.
//
// Every session gets two writers: Stdout for structured output (assistant
// text, tool results) and Stderr for display output (status lines, tool
// activity, errors). StandardIO binds them to the process streams;
// BufferedIO captures both into one transcript.
package chatio

import (
	"bytes"
	"io"
	"os"
)

// Output exposes the two write destinations of a session.
type Output interface {
	Stdout() io.Writer
	Stderr() io.Writer
}

// StandardIO writes to the real terminal streams.
type StandardIO struct {
	out io.Writer
	err io.Writer
}

func NewStandardIO() *StandardIO {
	return &StandardIO{out: os.Stdout, err: os.Stderr}
}

// NewStandardIOWith binds the two handles to the given writers, typically
// the process streams behind a renderer.
func NewStandardIOWith(stdout, stderr io.Writer) *StandardIO {
	return &StandardIO{out: stdout, err: stderr}
}

func (s *StandardIO) Stdout() io.Writer { return s.out }
func (s *StandardIO) Stderr() io.Writer { return s.err }

// BufferedIO aliases both handles to a single growable buffer, so writes to
// either land in one transcript in the order they were made.
//
// A BufferedIO is owned by one session at a time and is not safe for
// concurrent use.
type BufferedIO struct {
	buf bytes.Buffer
}

func NewBufferedIO() *BufferedIO {
	return &BufferedIO{}
}

func (b *BufferedIO) Stdout() io.Writer { return &b.buf }
func (b *BufferedIO) Stderr() io.Writer { return &b.buf }

// Bytes returns the captured transcript. The slice aliases the buffer and is
// only valid until the next write.
func (b *BufferedIO) Bytes() []byte { return b.buf.Bytes() }

// String returns a copy of the captured transcript.
func (b *BufferedIO) String() string { return b.buf.String() }

func (b *BufferedIO) Len() int { return b.buf.Len() }
