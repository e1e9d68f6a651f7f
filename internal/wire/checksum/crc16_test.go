package checksum

import "testing"

func TestCRC16IsDeterministic(t *testing.T) {
	data := []byte("the quick brown fox")
	if CRC16(data) != CRC16(data) {
		t.Fatal("CRC16 should be deterministic over identical input")
	}
}

func TestCRC16DiffersOnMutation(t *testing.T) {
	a := []byte{0x01, 0x02, 0x03, 0x04}
	b := []byte{0x01, 0x02, 0x03, 0x05}
	if CRC16(a) == CRC16(b) {
		t.Fatal("expected CRC16 to differ on a single byte mutation")
	}
}

func TestCRC16SkipIgnoresIndexValue(t *testing.T) {
	a := []byte{0x00, 0x11, 0x22, 0x00, 0x00}
	b := append([]byte(nil), a...)
	b[3], b[4] = 0xFF, 0xEE

	if CRC16(a, 3, 4) != CRC16(b, 3, 4) {
		t.Fatal("skipped indices should not affect the checksum regardless of their stored value")
	}
}

func TestCRC16ValidatesAnEmbeddedChecksum(t *testing.T) {
	buf := make([]byte, 8)
	copy(buf, []byte{0x01, 0x02, 0x03, 0x04, 0x05})

	sum := CRC16(buf, 6, 7)
	buf[6] = byte(sum >> 8)
	buf[7] = byte(sum)

	if CRC16(buf, 6, 7) != sum {
		t.Fatal("embedding the checksum at the skipped indices should still validate")
	}
}
