package chrono

import "testing"

func TestTimestampMicros64IsStrictlyIncreasing(t *testing.T) {
	prev := TimestampMicros64()
	for i := 0; i < 1000; i++ {
		next := TimestampMicros64()
		if next <= prev {
			t.Fatalf("timestamp did not strictly increase: prev=%d next=%d", prev, next)
		}
		prev = next
	}
}

func TestTimestampMicros32TracksThe64BitSource(t *testing.T) {
	a := TimestampMicros32()
	b := TimestampMicros32()
	if b <= a {
		t.Fatalf("32-bit timestamp did not increase: a=%d b=%d", a, b)
	}
}
