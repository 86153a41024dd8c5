package emitter

import (
	"bytes"
	"io"
)

// Sink receives emitted text.
type Sink interface {
	io.Writer
	// Flush delivers pending text to the destination.
	Flush() error
}

// Buffer is a Sink accumulating text in memory and optionally delivering it on Flush.
type Buffer struct {
	buf bytes.Buffer
	dst io.Writer
}

// NewBuffer creates an in-memory sink with no destination, Flush is a no-op.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Buffered creates a sink writing all accumulated text to dst on Flush.
func Buffered(dst io.Writer) *Buffer {
	return &Buffer{dst: dst}
}

func (b *Buffer) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

// String returns text accumulated since the last successful Flush.
func (b *Buffer) String() string {
	return b.buf.String()
}

func (b *Buffer) Flush() error {
	if b.dst == nil {
		return nil
	}

	_, e := b.buf.WriteTo(b.dst)
	return e
}

type flusher interface {
	Flush() error
}

// Stream is a Sink writing text straight to destination.
type Stream struct {
	dst io.Writer
}

// Streaming creates a sink writing through to dst.
// Flush calls dst.Flush if dst has one (e.g. *bufio.Writer).
func Streaming(dst io.Writer) *Stream {
	return &Stream{dst}
}

func (s *Stream) Write(p []byte) (int, error) {
	return s.dst.Write(p)
}

func (s *Stream) Flush() error {
	if f, ok := s.dst.(flusher); ok {
		return f.Flush()
	}
	return nil
}
