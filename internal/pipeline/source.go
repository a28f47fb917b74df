package pipeline

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/louisbranch/mediagraph/internal/domain/event"
)

// Source yields chain events in order. Next returns io.EOF when the stream
// is exhausted.
type Source interface {
	Next(ctx context.Context) (event.Event, error)
}

// SliceSource serves events from memory. Used in tests and for replaying
// captured fixtures.
type SliceSource struct {
	events []event.Event
	pos    int
}

// NewSliceSource wraps a pre-ordered event slice.
func NewSliceSource(events []event.Event) *SliceSource {
	return &SliceSource{events: events}
}

func (s *SliceSource) Next(ctx context.Context) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	if s.pos >= len(s.events) {
		return event.Event{}, io.EOF
	}
	evt := s.events[s.pos]
	s.pos++
	return evt, nil
}

// NDJSONSource reads one JSON event envelope per line, the export format of
// the upstream indexing runtime.
type NDJSONSource struct {
	scanner *bufio.Scanner
	line    int
}

// NewNDJSONSource wraps a newline-delimited JSON stream. Lines can be large
// when metadata payloads are embedded, so the buffer allows up to 4 MiB.
func NewNDJSONSource(r io.Reader) *NDJSONSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	return &NDJSONSource{scanner: scanner}
}

func (s *NDJSONSource) Next(ctx context.Context) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	for s.scanner.Scan() {
		s.line++
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var evt event.Event
		if err := json.Unmarshal(line, &evt); err != nil {
			return event.Event{}, fmt.Errorf("decode event at line %d: %w", s.line, err)
		}
		return evt, nil
	}
	if err := s.scanner.Err(); err != nil {
		return event.Event{}, fmt.Errorf("read event stream: %w", err)
	}
	return event.Event{}, io.EOF
}
