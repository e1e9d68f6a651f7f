// Package ipcline implements the interprocess line codec: a single
// newline-terminated text line carrying a key/value mapping as
// space-separated, unpadded base64 pairs. It is deliberately lenient
// on decode, mirroring a format designed for two trusted local
// processes rather than an adversarial wire.
package ipcline

import (
	"encoding/base64"
	"sort"
	"strings"
)

// Frame is an interprocess key/value mapping. The zero value is an
// empty, ready-to-use frame.
type Frame struct {
	values map[string]string
}

// NewFrame returns an empty Frame.
func NewFrame() Frame {
	return Frame{values: make(map[string]string)}
}

// Set inserts or overwrites a key's value.
func (f *Frame) Set(key, value string) {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.values[key] = value
}

// Get returns a key's value and whether it was present.
func (f Frame) Get(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Len reports how many keys the frame holds.
func (f Frame) Len() int {
	return len(f.values)
}

var b64 = base64.RawStdEncoding

// Encode serializes frame as base64(key)=base64(value) pairs
// separated by spaces, followed by a trailing newline. Keys are
// visited in sorted order so Encode is deterministic.
func Encode(frame Frame) []byte {
	keys := make([]string, 0, len(frame.values))
	for k := range frame.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(b64.EncodeToString([]byte(k)))
		b.WriteByte('=')
		b.WriteString(b64.EncodeToString([]byte(frame.values[k])))
		b.WriteByte(' ')
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

// Decode parses a line previously produced by Encode (or anything
// shaped like it). Decoding is case-sensitive: the base64 text is
// decoded as given, so Decode(Encode(f)) yields the same mapping as f.
func Decode(data []byte) Frame {
	frame := NewFrame()

	line := string(data)
	for _, token := range strings.Split(line, " ") {
		idx := strings.IndexByte(token, '=')
		if idx <= 0 || idx >= len(token)-1 {
			continue
		}

		keyPart := strings.TrimSpace(token[:idx])
		valuePart := strings.TrimSpace(token[idx+1:])

		key := decodeLenient(keyPart)
		value := decodeLenient(valuePart)

		if key != "" {
			frame.Set(key, value)
		}
	}

	return frame
}

// decodeLenient base64-decodes s, tolerating invalid characters by
// stripping them first: RFC 4648 with ignored decoding errors has no
// direct stdlib equivalent, so invalid bytes are dropped before
// decoding rather than aborting on the first bad character.
func decodeLenient(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '/':
			return r
		default:
			return -1
		}
	}, s)

	if len(cleaned)%4 == 1 {
		cleaned = cleaned[:len(cleaned)-1]
	}

	decoded, err := b64.DecodeString(cleaned)
	if err != nil {
		return ""
	}
	return string(decoded)
}
