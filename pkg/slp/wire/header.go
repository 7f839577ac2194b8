package wire

// Version is the SLP protocol version implemented by this package.
const Version = 2

// DefaultLanguage is the language tag used when a message specifies none.
const DefaultLanguage = "en"

// MaxPacketLength is the largest message the 3-byte length field can carry.
const MaxPacketLength = 0xFFFFFF

// headerFixedSize is the header size excluding the language tag.
const headerFixedSize = 14

// Header flags (upper three bits of the 16-bit flags field).
const (
	// FlagOverflow marks a reply that did not fit in a datagram.
	FlagOverflow uint16 = 0x8000

	// FlagFresh marks a registration as fresh (replace) rather than
	// incremental.
	FlagFresh uint16 = 0x4000

	// FlagMulticast marks a request sent via multicast.
	FlagMulticast uint16 = 0x2000
)

// FunctionID identifies the SLP message type.
type FunctionID uint8

// SLPv2 function IDs.
const (
	FnServiceRequest        FunctionID = 1
	FnServiceReply          FunctionID = 2
	FnServiceRegistration   FunctionID = 3
	FnServiceDeregistration FunctionID = 4
	FnServiceAck            FunctionID = 5
	FnAttributeRequest      FunctionID = 6
	FnAttributeReply        FunctionID = 7
	FnDAAdvert              FunctionID = 8
	FnServiceTypeRequest    FunctionID = 9
	FnServiceTypeReply      FunctionID = 10
	FnSAAdvert              FunctionID = 11
)

// String returns the function name as it appears in RFC 2608.
func (f FunctionID) String() string {
	switch f {
	case FnServiceRequest:
		return "SrvRqst"
	case FnServiceReply:
		return "SrvRply"
	case FnServiceRegistration:
		return "SrvReg"
	case FnServiceDeregistration:
		return "SrvDeReg"
	case FnServiceAck:
		return "SrvAck"
	case FnAttributeRequest:
		return "AttrRqst"
	case FnAttributeReply:
		return "AttrRply"
	case FnDAAdvert:
		return "DAAdvert"
	case FnServiceTypeRequest:
		return "SrvTypeRqst"
	case FnServiceTypeReply:
		return "SrvTypeRply"
	case FnSAAdvert:
		return "SAAdvert"
	default:
		return "UNKNOWN"
	}
}

// Header is the common SLPv2 message header.
//
// The length field is computed on encode and verified on decode, so it does
// not appear here. The next-extension offset is always written as zero;
// extensions are not implemented.
type Header struct {
	// Version is the protocol version (always 2 on encode).
	Version uint8

	// Function identifies the message type.
	Function FunctionID

	// Flags carries the OVERFLOW, FRESH and MCAST bits.
	Flags uint16

	// XID is the transaction ID correlating requests and replies.
	XID uint16

	// Language is the RFC 1766 language tag ("en" when empty).
	Language string
}

// Fresh reports whether the FRESH flag is set.
func (h Header) Fresh() bool { return h.Flags&FlagFresh != 0 }

// Multicast reports whether the MCAST flag is set.
func (h Header) Multicast() bool { return h.Flags&FlagMulticast != 0 }

// Overflow reports whether the OVERFLOW flag is set.
func (h Header) Overflow() bool { return h.Flags&FlagOverflow != 0 }
