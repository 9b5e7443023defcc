package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func readEvents(t *testing.T, path string) []Event {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	events, err := Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return events
}

func TestNewEmitter_ErrorOnBadPath(t *testing.T) {
	t.Parallel()
	_, err := NewEmitter("/nonexistent/dir/events.jsonl")
	if err == nil {
		t.Fatal("expected error for bad path, got nil")
	}
	if !strings.Contains(err.Error(), "telemetry: open") {
		t.Errorf("expected wrapped error, got: %v", err)
	}
}

func TestOpen_EmptyPathIsNoOp(t *testing.T) {
	t.Parallel()
	em, err := Open("")
	if err != nil || em != nil {
		t.Fatalf("Open(\"\") = %v, %v; want nil, nil", em, err)
	}
	if err := em.Emit(Event{Kind: KindSelection}); err != nil {
		t.Errorf("nil Emit: %v", err)
	}
	if err := em.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
	if em.Run() != "" {
		t.Errorf("nil Run() = %q, want empty", em.Run())
	}
}

func TestEmit_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	em.clock = func() time.Time { return fixed }

	events := []Event{
		{Kind: KindServerStart, Data: map[string]string{"addr": "127.0.0.1:8050"}},
		{Kind: KindCacheBuilt, Generation: 1, Data: map[string]int{"samples": 7000}},
		{Kind: KindSelection, Generation: 1, Framework: "Vue"},
		{Timestamp: fixed.Add(time.Minute), Kind: KindServerStop},
	}
	for _, evt := range events {
		if err := em.Emit(evt); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got := readEvents(t, path)
	if len(got) != len(events) {
		t.Fatalf("expected %d events, got %d", len(events), len(got))
	}
	for i := range got {
		if got[i].Kind != events[i].Kind || got[i].Framework != events[i].Framework || got[i].Generation != events[i].Generation {
			t.Errorf("event %d = %+v, want %+v", i, got[i], events[i])
		}
	}
	if !got[0].Timestamp.Equal(fixed) {
		t.Errorf("zero timestamp should be stamped with clock, got %v", got[0].Timestamp)
	}
	if !got[3].Timestamp.Equal(fixed.Add(time.Minute)) {
		t.Errorf("explicit timestamp overwritten: %v", got[3].Timestamp)
	}
}

func TestEmit_ConcurrentSafety(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "concurrent.jsonl")
	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	const n = 100
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := em.Emit(Event{Kind: KindSelection, Data: map[string]int{"idx": idx}}); err != nil {
				t.Errorf("Emit from goroutine %d: %v", idx, err)
			}
		}(i)
	}
	wg.Wait()
	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if got := readEvents(t, path); len(got) != n {
		t.Fatalf("expected %d events, got %d", n, len(got))
	}
}

func TestEmit_AppendsToExistingFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "append.jsonl")

	for _, kind := range []string{KindServerStart, KindServerStop} {
		em, err := NewEmitter(path)
		if err != nil {
			t.Fatalf("NewEmitter: %v", err)
		}
		if err := em.Emit(Event{Kind: kind}); err != nil {
			t.Fatalf("Emit: %v", err)
		}
		em.Close()
	}

	got := readEvents(t, path)
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Run == "" || got[1].Run == "" {
		t.Fatalf("events missing run IDs: %+v", got)
	}
	if got[0].Run == got[1].Run {
		t.Errorf("separate emitters share run ID %q", got[0].Run)
	}
}

func TestDecode_ReportsBadLine(t *testing.T) {
	t.Parallel()
	in := "{\"kind\":\"selection\"}\n\nnot json\n"
	events, err := Decode(strings.NewReader(in))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("err = %v, want line 3 error", err)
	}
	if len(events) != 1 {
		t.Errorf("events before the bad line = %d, want 1", len(events))
	}
}

func TestEvent_OmitsEmptyFields(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(Event{Kind: KindServerStop})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, field := range []string{`"run"`, `"generation"`, `"framework"`, `"data"`} {
		if strings.Contains(string(data), field) {
			t.Errorf("expected %s to be omitted, got: %s", field, data)
		}
	}
}
