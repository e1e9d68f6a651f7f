package config

import (
	"fmt"
	"strings"

	"github.com/rtspwire/wireclient/internal/wire/memstream"
)

// Endianness converts the config's string field into the wire value
// the serializers use. Validate having already run, the default case
// is unreachable outside tests that construct a Config by hand.
func (c Config) Endianness() memstream.Endianness {
	switch strings.ToLower(strings.TrimSpace(c.Wire.Endianness)) {
	case "little":
		return memstream.LittleEndian
	case "big":
		return memstream.BigEndian
	default:
		panic(fmt.Sprintf("config: unresolved endianness %q, Validate was not run", c.Wire.Endianness))
	}
}
