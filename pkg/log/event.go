package log

import (
	"time"

	"github.com/google/uuid"

	"github.com/openlighting/ola-go/pkg/slp/wire"
)

// Event is one SLP protocol event. CBOR encoding uses integer keys for
// compactness.
type Event struct {
	// Timestamp is when the event occurred.
	Timestamp time.Time `cbor:"1,keyasint"`

	// ExchangeID groups the events of one request/reply exchange (UUID).
	ExchangeID string `cbor:"2,keyasint"`

	// Direction indicates datagram flow.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// RemoteAddr is the peer address (IP:port).
	RemoteAddr string `cbor:"5,keyasint,omitempty"`

	// Function is the SLP function ID, when a message was decoded.
	Function wire.FunctionID `cbor:"6,keyasint,omitempty"`

	// XID is the SLP transaction ID, when a message was decoded.
	XID uint16 `cbor:"7,keyasint,omitempty"`

	// Scopes is the escaped scope list carried by the message, if any.
	Scopes string `cbor:"8,keyasint,omitempty"`

	// Size is the datagram size in bytes.
	Size int `cbor:"9,keyasint,omitempty"`

	// Error describes a decode or handling failure.
	Error string `cbor:"10,keyasint,omitempty"`
}

// NewExchangeID returns a fresh exchange identifier.
func NewExchangeID() string {
	return uuid.NewString()
}

// Direction indicates the direction of datagram flow.
type Direction uint8

const (
	// DirectionIn indicates a received datagram.
	DirectionIn Direction = 0
	// DirectionOut indicates a sent datagram.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies a protocol event.
type Category uint8

const (
	// CategoryMessage is a successfully encoded or decoded SLP message.
	CategoryMessage Category = 0
	// CategoryDecodeError is a datagram that failed to decode.
	CategoryDecodeError Category = 1
	// CategoryDropped is a message discarded by policy, e.g. a request
	// whose scopes did not intersect the local configuration.
	CategoryDropped Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryDecodeError:
		return "DECODE_ERROR"
	case CategoryDropped:
		return "DROPPED"
	default:
		return "UNKNOWN"
	}
}
