package memstream

import "testing"

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteUint32(0xDEADBEEF)
	w.WriteUint16(1234)
	w.WriteBool(true)
	w.WriteFloat32(3.5)

	if w.Status() != StatusOK {
		t.Fatalf("writer status = %v", w.Status())
	}

	r := NewReader(w.Bytes())
	if got := r.ReadUint32(); got != 0xDEADBEEF {
		t.Fatalf("ReadUint32 = %x", got)
	}
	if got := r.ReadUint16(); got != 1234 {
		t.Fatalf("ReadUint16 = %d", got)
	}
	if got := r.ReadBool(); got != true {
		t.Fatalf("ReadBool = %v", got)
	}
	if got := r.ReadFloat32(); got != 3.5 {
		t.Fatalf("ReadFloat32 = %v", got)
	}
	if r.Status() != StatusOK {
		t.Fatalf("reader status = %v", r.Status())
	}
}

func TestReadPastEndZeroFillsAndLatchesStatus(t *testing.T) {
	r := NewReader([]byte{0x01})
	got := r.ReadUint32()
	if got != 0x01000000 {
		t.Fatalf("expected short read to zero-fill the missing bytes, got %x", got)
	}
	if r.Status() != StatusReadPastEnd {
		t.Fatalf("expected StatusReadPastEnd, got %v", r.Status())
	}

	// reads keep attempting even after a latched failure
	second := r.ReadUint8()
	if second != 0 {
		t.Fatalf("expected a further read past end to return zero, got %d", second)
	}
}

func TestWriteFailsHardOnceStatusLatched(t *testing.T) {
	r := NewReader(make([]byte, 2))
	r.SkipRaw(3) // latches StatusReadPastEnd
	if r.Status() != StatusReadPastEnd {
		t.Fatalf("expected SkipRaw past end to latch a status")
	}

	n := r.WriteRaw([]byte{1, 2, 3})
	if n != -1 {
		t.Fatalf("expected WriteRaw to hard no-op once a failure is latched, got n=%d", n)
	}
}

func TestSeekAndOverwriteInPlace(t *testing.T) {
	w := NewWriter()
	w.WriteUint16(0)
	w.WriteUint32(0xAABBCCDD)

	w.Seek(0)
	w.WriteUint16(0x1234)

	if len(w.Bytes()) != 6 {
		t.Fatalf("overwrite in place should not grow the buffer, len=%d", len(w.Bytes()))
	}

	r := NewReader(w.Bytes())
	if got := r.ReadUint16(); got != 0x1234 {
		t.Fatalf("back-patched header = %x", got)
	}
	if got := r.ReadUint32(); got != 0xAABBCCDD {
		t.Fatalf("payload after back-patch = %x", got)
	}
}

func TestResetStatusClearsLatchedFailure(t *testing.T) {
	r := NewReader(nil)
	r.ReadUint8()
	if r.Status() == StatusOK {
		t.Fatal("expected reading from an empty buffer to latch a failure")
	}
	r.ResetStatus()
	if r.Status() != StatusOK {
		t.Fatalf("ResetStatus should clear the latched failure, got %v", r.Status())
	}
}

func TestLittleEndianRoundTrip(t *testing.T) {
	w := NewWriter()
	w.SetEndianness(LittleEndian)
	w.WriteUint32(0x01020304)

	r := NewReader(w.Bytes())
	r.SetEndianness(LittleEndian)
	if got := r.ReadUint32(); got != 0x01020304 {
		t.Fatalf("little-endian round trip = %x", got)
	}

	raw := w.Bytes()
	if raw[0] != 0x04 || raw[3] != 0x01 {
		t.Fatalf("expected little-endian byte order on the wire, got % x", raw)
	}
}
