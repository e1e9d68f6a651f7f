package observability

import "testing"

func TestRecorderMethodsAreSafeAfterDoubleRegister(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	rec := NewRecorder()
	rec.DatagramAccepted()
	rec.DatagramRejected("crc")
	rec.DatagramEmitted()
	rec.FrameCompleted()
	rec.BuildersInProgress(3)
}
