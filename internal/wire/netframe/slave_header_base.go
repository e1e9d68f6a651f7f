//go:build !wire_extended

package netframe

// ChunkSlaveHeaderSize is the base-protocol slave chunk header size: no
// destination offset field. Build with -tags wire_extended to select
// the extended protocol's 29-byte variant instead.
const ChunkSlaveHeaderSize = 25

// Extended reports whether this build selects the extended protocol
// variant, in which slave chunks carry an explicit frame offset.
const Extended = false
