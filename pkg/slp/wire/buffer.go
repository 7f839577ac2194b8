package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Codec errors.
var (
	// ErrTruncated indicates a packet shorter than its fields require.
	ErrTruncated = errors.New("truncated packet")

	// ErrVersion indicates a packet with an unsupported protocol version.
	ErrVersion = errors.New("unsupported protocol version")

	// ErrLength indicates a header length field that disagrees with the
	// packet size.
	ErrLength = errors.New("bad length field")

	// ErrFunction indicates an unknown function ID.
	ErrFunction = errors.New("unknown function ID")

	// ErrStringTooLong indicates a string that exceeds the 16-bit length
	// prefix.
	ErrStringTooLong = errors.New("string exceeds 65535 bytes")

	// ErrPacketTooLarge indicates a message that exceeds the 3-byte
	// length field.
	ErrPacketTooLarge = errors.New("message exceeds maximum packet length")
)

// writer accumulates a big-endian SLP message. The first error sticks; all
// later writes are no-ops.
type writer struct {
	buf []byte
	err error
}

func (w *writer) u8(v uint8) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, v)
}

func (w *writer) u16(v uint16) {
	if w.err != nil {
		return
	}
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *writer) u24(v uint32) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, byte(v>>16), byte(v>>8), byte(v))
}

func (w *writer) u32(v uint32) {
	if w.err != nil {
		return
	}
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// str writes a 16-bit length prefix followed by the string bytes.
func (w *writer) str(s string) {
	if w.err != nil {
		return
	}
	if len(s) > 0xFFFF {
		w.err = fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(s))
		return
	}
	w.u16(uint16(len(s)))
	w.buf = append(w.buf, s...)
}

// reader walks a received packet. The first error sticks; all later reads
// return zero values.
type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.off+n > len(r.buf) {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d of %d",
			ErrTruncated, n, r.off, len(r.buf))
		return false
	}
	return true
}

func (r *reader) u8() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.buf[r.off]
	r.off++
	return v
}

func (r *reader) u16() uint16 {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v
}

func (r *reader) u24() uint32 {
	if !r.need(3) {
		return 0
	}
	v := uint32(r.buf[r.off])<<16 | uint32(r.buf[r.off+1])<<8 | uint32(r.buf[r.off+2])
	r.off += 3
	return v
}

func (r *reader) u32() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

// str reads a 16-bit length prefix followed by that many bytes.
func (r *reader) str() string {
	n := int(r.u16())
	if !r.need(n) {
		return ""
	}
	s := string(r.buf[r.off : r.off+n])
	r.off += n
	return s
}

func (r *reader) skip(n int) {
	if r.need(n) {
		r.off += n
	}
}
