//go:build wire_extended

package netframe

// ChunkSlaveHeaderSize is the extended-protocol slave chunk header
// size: the base 25 bytes plus a 4-byte destination frame offset.
const ChunkSlaveHeaderSize = 29

// Extended reports whether this build selects the extended protocol
// variant, in which slave chunks carry an explicit frame offset.
const Extended = true
