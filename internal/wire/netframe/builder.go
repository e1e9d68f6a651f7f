package netframe

// Builder holds the per-frame reassembly state on the receiver: the
// in-progress Frame plus the bookkeeping needed to know when every
// chunk has arrived. Ownership belongs to whichever network serializer
// created it; nothing else should mutate a Builder.
type Builder struct {
	masterChunkFound bool
	collectedChunks  int
	detectedChunks   int
	frame            Frame
}

// Completed reports whether every expected chunk has been collected.
func (b *Builder) Completed() bool {
	return b.detectedChunks != 0 && b.collectedChunks == b.detectedChunks
}

// Frame returns the frame assembled so far (or entirely, once
// Completed reports true).
func (b *Builder) Frame() Frame {
	return b.frame
}
