// Package telemetry records a JSONL stream of dashboard lifecycle events:
// cache builds, catalog reloads and rejections, page selections and server
// start/stop. Each line is one Event, so the file can be tailed or replayed.
package telemetry

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event kinds identify the type of telemetry event.
const (
	KindCacheBuilt      = "cache_built"
	KindCatalogReloaded = "catalog_reloaded"
	KindCatalogRejected = "catalog_rejected"
	KindSelection       = "selection"
	KindServerStart     = "server_start"
	KindServerStop      = "server_stop"
)

// Event is a single telemetry record.
type Event struct {
	Timestamp  time.Time `json:"ts"`
	Run        string    `json:"run,omitempty"`
	Kind       string    `json:"kind"`
	Generation uint64    `json:"generation,omitempty"`
	Framework  string    `json:"framework,omitempty"`
	Data       any       `json:"data,omitempty"`
}

// Emitter appends events to a JSONL file. It is safe for concurrent use by
// multiple goroutines. A nil *Emitter is a valid no-op emitter.
//
// Every emitter has a run ID stamped on its events so several processes
// (serve and mcp, say) can share one file.
type Emitter struct {
	mu    sync.Mutex
	file  *os.File
	enc   *json.Encoder
	clock func() time.Time
	run   string
}

// NewEmitter opens path for append, creating it if needed.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file:  f,
		enc:   json.NewEncoder(f),
		clock: time.Now,
		run:   uuid.NewString(),
	}, nil
}

// Run returns the ID stamped on this emitter's events.
func (e *Emitter) Run() string {
	if e == nil {
		return ""
	}
	return e.run
}

// Open returns nil without error when path is empty, so callers can treat
// telemetry as always present.
func Open(path string) (*Emitter, error) {
	if path == "" {
		return nil, nil
	}
	return NewEmitter(path)
}

// Emit writes evt, stamping the current time when Timestamp is zero and the
// emitter's run ID when Run is empty.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if evt.Timestamp.IsZero() {
		evt.Timestamp = e.clock().UTC()
	}
	if evt.Run == "" {
		evt.Run = e.run
	}
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}

// Decode reads every event from a JSONL stream. Blank lines are skipped.
func Decode(r io.Reader) ([]Event, error) {
	var events []Event
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var evt Event
		if err := json.Unmarshal(sc.Bytes(), &evt); err != nil {
			return events, fmt.Errorf("telemetry: line %d: %w", line, err)
		}
		events = append(events, evt)
	}
	if err := sc.Err(); err != nil {
		return events, fmt.Errorf("telemetry: read: %w", err)
	}
	return events, nil
}
