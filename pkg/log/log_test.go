package log

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/openlighting/ola-go/pkg/slp/wire"
)

func sampleEvent() Event {
	return Event{
		Timestamp:  time.Now().UTC(),
		ExchangeID: NewExchangeID(),
		Direction:  DirectionIn,
		Category:   CategoryMessage,
		RemoteAddr: "10.0.0.5:427",
		Function:   wire.FnServiceRequest,
		XID:        42,
		Scopes:     "default,east-wing",
		Size:       88,
	}
}

func TestEventCBORRoundTrip(t *testing.T) {
	want := sampleEvent()

	data, err := EncodeEvent(want)
	if err != nil {
		t.Fatalf("EncodeEvent error: %v", err)
	}
	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent error: %v", err)
	}

	if got.ExchangeID != want.ExchangeID {
		t.Errorf("ExchangeID = %q, want %q", got.ExchangeID, want.ExchangeID)
	}
	if got.Function != want.Function || got.XID != want.XID {
		t.Errorf("message fields = %v/%d, want %v/%d", got.Function, got.XID, want.Function, want.XID)
	}
	if got.Scopes != want.Scopes {
		t.Errorf("Scopes = %q, want %q", got.Scopes, want.Scopes)
	}
	if !got.Timestamp.Equal(want.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, want.Timestamp)
	}
}

func TestFileLoggerAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.slplog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger error: %v", err)
	}

	in := sampleEvent()
	out := sampleEvent()
	out.Direction = DirectionOut
	out.Function = wire.FnServiceReply
	logger.Log(in)
	logger.Log(out)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	// Log after Close must be a silent no-op.
	logger.Log(sampleEvent())

	r, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile error: %v", err)
	}
	defer r.Close()

	events, err := r.ReadAll(nil)
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Direction != DirectionIn || events[1].Direction != DirectionOut {
		t.Errorf("directions = %v, %v", events[0].Direction, events[1].Direction)
	}
}

func TestReaderFilter(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	in := sampleEvent()
	out := sampleEvent()
	out.Direction = DirectionOut
	if err := enc.Encode(in); err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if err := enc.Encode(out); err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	dir := DirectionOut
	events, err := NewReader(&buf).ReadAll(&Filter{Direction: &dir})
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if len(events) != 1 || events[0].Direction != DirectionOut {
		t.Fatalf("filtered events = %+v, want one OUT event", events)
	}
}

func TestMultiLogger(t *testing.T) {
	var a, b countingLogger
	m := NewMultiLogger(&a, &b)
	m.Log(sampleEvent())
	m.Log(sampleEvent())
	if a.n != 2 || b.n != 2 {
		t.Errorf("counts = %d, %d, want 2, 2", a.n, b.n)
	}
}

type countingLogger struct{ n int }

func (c *countingLogger) Log(Event) { c.n++ }

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(h))

	evt := sampleEvent()
	evt.Error = "boom"
	adapter.Log(evt)

	got := buf.String()
	for _, want := range []string{"slp event", "SrvRqst", "default,east-wing", "boom"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %s", want, got)
		}
	}
}
