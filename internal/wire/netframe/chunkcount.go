package netframe

// ChunkCount simulates the encoder's datagram packing to determine how
// many chunks a frame of the given data size will be split into. It is
// the sole source of a frame builder's detectedChunks once a master
// chunk establishes frameSize, and the reference a test suite checks
// the real encoder against.
func ChunkCount(frameSize int) int {
	result := 0

	for frameSize > 0 {
		datagramSize := DatagramDataMaxSize

		for frameSize > 0 && datagramSize > 0 {
			headerSize := ChunkMasterHeaderSize
			dataMax := ChunkMasterDataMaxSize
			if result != 0 {
				headerSize = ChunkSlaveHeaderSize
				dataMax = ChunkSlaveDataMaxSize
			}

			if datagramSize <= headerSize {
				break
			}

			datagramSize -= headerSize
			dataSize := min(dataMax, min(datagramSize, frameSize))
			result++
			frameSize -= dataSize
			datagramSize -= dataSize
		}
	}

	return result
}
