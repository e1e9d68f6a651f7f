package netframe

import "testing"

func TestChunkCountSingleMasterChunk(t *testing.T) {
	if got := ChunkCount(10); got != 1 {
		t.Fatalf("ChunkCount(10) = %d, want 1", got)
	}
}

func TestChunkCountZeroForEmptyFrame(t *testing.T) {
	if got := ChunkCount(0); got != 0 {
		t.Fatalf("ChunkCount(0) = %d, want 0", got)
	}
}

func TestChunkCountMultiDatagramFrame(t *testing.T) {
	// A frame larger than a single datagram can carry must split into
	// more than one datagram's worth of chunks.
	got := ChunkCount(DatagramDataMaxSize * 3)
	if got <= 1 {
		t.Fatalf("ChunkCount for a multi-datagram frame should exceed 1, got %d", got)
	}
}

func TestChunkCountMonotonicWithFrameSize(t *testing.T) {
	prev := 0
	for _, size := range []int{1, 100, 1000, 10000, 100000} {
		got := ChunkCount(size)
		if got < prev {
			t.Fatalf("ChunkCount should not decrease as frameSize grows: size=%d got=%d prev=%d", size, got, prev)
		}
		prev = got
	}
}
