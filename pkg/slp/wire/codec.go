package wire

import "fmt"

// Marshal encodes a message with its header into a complete SLP packet.
// A zero header Version becomes Version (2) and an empty Language becomes
// DefaultLanguage; the length field is filled in from the final size.
func Marshal(h Header, msg Message) ([]byte, error) {
	if h.Version == 0 {
		h.Version = Version
	}
	if h.Language == "" {
		h.Language = DefaultLanguage
	}

	w := &writer{}
	w.u8(h.Version)
	w.u8(uint8(msg.Function()))
	w.u24(0) // length, patched below
	w.u16(h.Flags)
	w.u24(0) // next extension offset
	w.u16(h.XID)
	w.str(h.Language)
	msg.encode(w)
	if w.err != nil {
		return nil, w.err
	}

	if len(w.buf) > MaxPacketLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrPacketTooLarge, len(w.buf))
	}
	n := uint32(len(w.buf))
	w.buf[2] = byte(n >> 16)
	w.buf[3] = byte(n >> 8)
	w.buf[4] = byte(n)
	return w.buf, nil
}

// Unmarshal decodes a complete SLP packet into its header and message body.
// Trailing bytes beyond the declared length are ignored (UDP reads hand in
// the whole datagram buffer); a declared length longer than the packet is an
// ErrLength failure.
func Unmarshal(pkt []byte) (Header, Message, error) {
	var h Header
	if len(pkt) < headerFixedSize {
		return h, nil, fmt.Errorf("%w: %d byte packet", ErrTruncated, len(pkt))
	}

	r := &reader{buf: pkt}
	h.Version = r.u8()
	h.Function = FunctionID(r.u8())
	length := int(r.u24())
	h.Flags = r.u16()
	r.u24() // next extension offset
	h.XID = r.u16()
	h.Language = r.str()
	if r.err != nil {
		return h, nil, r.err
	}

	if h.Version != Version {
		return h, nil, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	if length < headerFixedSize || length > len(pkt) {
		return h, nil, fmt.Errorf("%w: declared %d, have %d", ErrLength, length, len(pkt))
	}
	r.buf = pkt[:length]

	var msg Message
	switch h.Function {
	case FnServiceRequest:
		msg = &ServiceRequest{}
	case FnServiceReply:
		msg = &ServiceReply{}
	case FnServiceRegistration:
		msg = &ServiceRegistration{}
	case FnServiceDeregistration:
		msg = &ServiceDeregistration{}
	case FnServiceAck:
		msg = &ServiceAck{}
	case FnDAAdvert:
		msg = &DAAdvert{}
	case FnSAAdvert:
		msg = &SAAdvert{}
	default:
		return h, nil, fmt.Errorf("%w: %d", ErrFunction, h.Function)
	}

	if err := msg.decode(r); err != nil {
		return h, nil, fmt.Errorf("decode %s: %w", h.Function, err)
	}
	return h, msg, nil
}
