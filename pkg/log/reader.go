package log

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects events when reading a capture file. Zero fields match
// everything for that criterion.
type Filter struct {
	// ExchangeID filters by exact exchange ID.
	ExchangeID string

	// Direction filters by datagram direction.
	Direction *Direction

	// Category filters by event category.
	Category *Category

	// TimeStart keeps events at or after this time.
	TimeStart *time.Time

	// TimeEnd keeps events before this time.
	TimeEnd *time.Time
}

// matches reports whether the event passes every criterion.
func (f *Filter) matches(event Event) bool {
	if f.ExchangeID != "" && event.ExchangeID != f.ExchangeID {
		return false
	}
	if f.Direction != nil && event.Direction != *f.Direction {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	return true
}

// Reader decodes protocol events from a CBOR capture stream.
type Reader struct {
	decoder *cbor.Decoder
	closer  io.Closer
}

// NewReader creates a Reader over an arbitrary capture stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{decoder: NewDecoder(r)}
}

// OpenFile opens a capture file for reading. Call Close when done.
func OpenFile(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{decoder: NewDecoder(f), closer: f}, nil
}

// Next returns the next event in the capture. It returns io.EOF at the end
// of the stream.
func (r *Reader) Next() (Event, error) {
	var event Event
	err := r.decoder.Decode(&event)
	return event, err
}

// ReadAll returns every event matching the filter. A nil filter matches
// everything.
func (r *Reader) ReadAll(filter *Filter) ([]Event, error) {
	var events []Event
	for {
		event, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		if filter == nil || filter.matches(event) {
			events = append(events, event)
		}
	}
}

// Close closes the underlying file, if the Reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
