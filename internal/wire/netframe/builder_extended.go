//go:build wire_extended

package netframe

// PutMasterChunk accepts the master chunk of a frame. Unlike the base
// protocol, the extended protocol's master chunk may arrive after some
// slave chunks: metadata is seeded once, from whichever chunk (master
// or slave) arrives first, except that a late master still sets the
// frame number; the buffer grows to the declared frameSize either way.
func (b *Builder) PutMasterChunk(frameSize int, partial Frame) bool {
	if b.Completed() ||
		b.masterChunkFound ||
		frameSize <= 0 ||
		frameSize < len(partial.Data) ||
		len(partial.Data) == 0 {
		return false
	}

	if b.collectedChunks == 0 {
		b.seedMetadata(partial)
		b.growTo(frameSize)
		copy(b.frame.Data[:len(partial.Data)], partial.Data)

		b.collectedChunks = 1
		b.detectedChunks = ChunkCount(frameSize)
	} else {
		detected := ChunkCount(frameSize)
		if detected < b.detectedChunks || detected < b.collectedChunks+1 {
			return false
		}

		b.frame.Number = partial.Number
		b.growTo(frameSize)
		copy(b.frame.Data[:len(partial.Data)], partial.Data)

		b.collectedChunks++
		b.detectedChunks = detected
	}

	b.masterChunkFound = true
	return true
}

// PutSlaveChunk writes a slave chunk's payload at its declared
// destination offset, growing the buffer on demand when the slave
// arrives ahead of the master.
func (b *Builder) PutSlaveChunk(frameOffset int, partial Frame) bool {
	if b.Completed() || frameOffset <= 0 || len(partial.Data) == 0 {
		return false
	}

	frameSize := frameOffset + len(partial.Data)
	if b.masterChunkFound && frameSize > len(b.frame.Data) {
		return false
	}

	if b.collectedChunks == 0 {
		b.seedMetadata(partial)
	}

	b.growTo(frameSize)
	copy(b.frame.Data[frameOffset:frameSize], partial.Data)

	b.collectedChunks++
	return true
}

func (b *Builder) seedMetadata(partial Frame) {
	b.frame.ID = partial.ID
	b.frame.Number = partial.Number
	b.frame.Interpretation = partial.Interpretation
	b.frame.Time = partial.Time
	b.frame.Priority = partial.Priority
	b.frame.Task = partial.Task
	b.frame.Flow = partial.Flow
}

func (b *Builder) growTo(size int) {
	if len(b.frame.Data) >= size {
		return
	}
	grown := make([]byte, size)
	copy(grown, b.frame.Data)
	b.frame.Data = grown
}
