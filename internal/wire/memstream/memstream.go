// Package memstream implements a stateful, endian-aware cursor over an
// in-memory byte buffer: the serialization primitive every other wire
// package in this module builds on.
package memstream

import (
	"encoding/binary"
	"math"
)

// Endianness selects the byte order used by typed reads and writes.
type Endianness int

const (
	BigEndian Endianness = iota
	LittleEndian
)

// Status is the sticky error state of a Serializer.
type Status int

const (
	StatusOK Status = iota
	StatusReadPastEnd
	StatusWriteFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusReadPastEnd:
		return "read_past_end"
	case StatusWriteFailed:
		return "write_failed"
	default:
		return "unknown"
	}
}

// Serializer is a single-owner, non-reentrant cursor over a byte buffer.
// It never panics or returns an error from its typed accessors; callers
// check Status() once after a straight-line sequence of operations.
type Serializer struct {
	buf    []byte
	pos    int
	grow   bool
	order  binary.ByteOrder
	endian Endianness
	status Status
}

// NewReader wraps data for reading. The buffer is borrowed, not copied,
// and does not grow: reads past its end latch StatusReadPastEnd.
func NewReader(data []byte) *Serializer {
	s := &Serializer{buf: data}
	s.SetEndianness(BigEndian)
	return s
}

// NewWriter returns a Serializer over an initially empty buffer that
// grows on demand, mirroring a QBuffer opened WriteOnly over a QByteArray.
func NewWriter() *Serializer {
	s := &Serializer{grow: true}
	s.SetEndianness(BigEndian)
	return s
}

// Bytes returns the current backing buffer. For a writer-mode serializer
// this is the data written so far.
func (s *Serializer) Bytes() []byte {
	return s.buf
}

// Status returns the current sticky status.
func (s *Serializer) Status() Status {
	return s.status
}

// SetStatus latches status if the serializer is currently Ok. A second
// call once a failure has latched is a no-op, matching the sticky
// semantics documented on the type.
func (s *Serializer) SetStatus(status Status) {
	if s.status == StatusOK {
		s.status = status
	}
}

// ResetStatus clears any latched failure.
func (s *Serializer) ResetStatus() {
	s.status = StatusOK
}

// Endianness returns the configured endianness.
func (s *Serializer) Endianness() Endianness {
	return s.endian
}

// SetEndianness reconfigures the byte order used by subsequent typed
// reads and writes. Already-written bytes are unaffected.
func (s *Serializer) SetEndianness(e Endianness) {
	s.endian = e
	if e == LittleEndian {
		s.order = binary.LittleEndian
	} else {
		s.order = binary.BigEndian
	}
}

// Position returns the current cursor offset.
func (s *Serializer) Position() int {
	return s.pos
}

// Seek moves the cursor to an absolute offset. A negative position is
// rejected.
func (s *Serializer) Seek(pos int) bool {
	if pos < 0 {
		return false
	}
	s.pos = pos
	return true
}

// BytesAvailable returns the number of unread bytes ahead of the cursor.
func (s *Serializer) BytesAvailable() int {
	if s.pos >= len(s.buf) {
		return 0
	}
	return len(s.buf) - s.pos
}

// AtEnd reports whether the cursor has reached the end of the buffer.
func (s *Serializer) AtEnd() bool {
	return s.pos >= len(s.buf)
}

// ReadRaw reads len(p) bytes into p, returning the number of bytes
// actually copied. A short read zero-fills the remainder of p and
// latches StatusReadPastEnd.
func (s *Serializer) ReadRaw(p []byte) int {
	n := copy(p, s.buf[min(s.pos, len(s.buf)):])
	s.pos += n
	if n != len(p) {
		for i := n; i < len(p); i++ {
			p[i] = 0
		}
		s.SetStatus(StatusReadPastEnd)
	}
	return n
}

// WriteRaw writes p at the cursor, overwriting in place when the cursor
// falls within the existing buffer (as required to back-patch a header
// after seeking) and extending the buffer only in grow mode. Once the
// serializer has a latched failure, WriteRaw is a no-op and returns -1.
func (s *Serializer) WriteRaw(p []byte) int {
	if s.status != StatusOK {
		return -1
	}
	if len(p) == 0 {
		return 0
	}
	end := s.pos + len(p)
	if end > len(s.buf) {
		if !s.grow {
			n := copy(s.buf[min(s.pos, len(s.buf)):], p)
			s.pos += n
			if n != len(p) {
				s.SetStatus(StatusWriteFailed)
			}
			return n
		}
		grown := make([]byte, end)
		copy(grown, s.buf)
		s.buf = grown
	}
	copy(s.buf[s.pos:end], p)
	s.pos = end
	return len(p)
}

// SkipRaw advances the cursor by length bytes without copying them out,
// latching StatusReadPastEnd if fewer than length bytes remained.
func (s *Serializer) SkipRaw(length int) int {
	avail := s.BytesAvailable()
	if length <= avail {
		s.pos += length
		return length
	}
	s.pos = len(s.buf)
	s.SetStatus(StatusReadPastEnd)
	return avail
}

// --- typed reads ---

func (s *Serializer) ReadUint8() uint8 {
	var b [1]byte
	s.ReadRaw(b[:])
	return b[0]
}

func (s *Serializer) ReadInt8() int8 { return int8(s.ReadUint8()) }

func (s *Serializer) ReadUint16() uint16 {
	var b [2]byte
	s.ReadRaw(b[:])
	return s.order.Uint16(b[:])
}

func (s *Serializer) ReadInt16() int16 { return int16(s.ReadUint16()) }

func (s *Serializer) ReadUint32() uint32 {
	var b [4]byte
	s.ReadRaw(b[:])
	return s.order.Uint32(b[:])
}

func (s *Serializer) ReadInt32() int32 { return int32(s.ReadUint32()) }

func (s *Serializer) ReadUint64() uint64 {
	var b [8]byte
	s.ReadRaw(b[:])
	return s.order.Uint64(b[:])
}

func (s *Serializer) ReadInt64() int64 { return int64(s.ReadUint64()) }

func (s *Serializer) ReadFloat32() float32 {
	return math.Float32frombits(s.ReadUint32())
}

func (s *Serializer) ReadFloat64() float64 {
	return math.Float64frombits(s.ReadUint64())
}

// ReadHalfBits reads a 16-bit half-precision float as its raw bit
// pattern, without conversion to float32 — the wire layer never
// interprets half floats, it only carries them.
func (s *Serializer) ReadHalfBits() uint16 { return s.ReadUint16() }

func (s *Serializer) ReadBool() bool { return s.ReadUint8() != 0 }

// ReadChar16 reads a UTF-16 code unit as a raw 16-bit value.
func (s *Serializer) ReadChar16() uint16 { return s.ReadUint16() }

// ReadChar32 reads a UTF-32 code unit as a raw 32-bit value.
func (s *Serializer) ReadChar32() uint32 { return s.ReadUint32() }

// --- typed writes ---

func (s *Serializer) WriteUint8(v uint8) int { return s.WriteRaw([]byte{v}) }

func (s *Serializer) WriteInt8(v int8) int { return s.WriteUint8(uint8(v)) }

func (s *Serializer) WriteUint16(v uint16) int {
	var b [2]byte
	s.order.PutUint16(b[:], v)
	return s.WriteRaw(b[:])
}

func (s *Serializer) WriteInt16(v int16) int { return s.WriteUint16(uint16(v)) }

func (s *Serializer) WriteUint32(v uint32) int {
	var b [4]byte
	s.order.PutUint32(b[:], v)
	return s.WriteRaw(b[:])
}

func (s *Serializer) WriteInt32(v int32) int { return s.WriteUint32(uint32(v)) }

func (s *Serializer) WriteUint64(v uint64) int {
	var b [8]byte
	s.order.PutUint64(b[:], v)
	return s.WriteRaw(b[:])
}

func (s *Serializer) WriteInt64(v int64) int { return s.WriteUint64(uint64(v)) }

func (s *Serializer) WriteFloat32(v float32) int {
	return s.WriteUint32(math.Float32bits(v))
}

func (s *Serializer) WriteFloat64(v float64) int {
	return s.WriteUint64(math.Float64bits(v))
}

// WriteHalfBits writes a 16-bit half-precision float by its raw bit
// pattern. See ReadHalfBits.
func (s *Serializer) WriteHalfBits(v uint16) int { return s.WriteUint16(v) }

func (s *Serializer) WriteBool(v bool) int {
	if v {
		return s.WriteUint8(1)
	}
	return s.WriteUint8(0)
}

func (s *Serializer) WriteChar16(v uint16) int { return s.WriteUint16(v) }

func (s *Serializer) WriteChar32(v uint32) int { return s.WriteUint32(v) }
