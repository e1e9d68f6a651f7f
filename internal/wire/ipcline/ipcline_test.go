package ipcline

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	f := NewFrame()
	f.Set("cmd", "stats")
	f.Set("task", "decode")

	out := Decode(Encode(f))

	if v, ok := out.Get("cmd"); !ok || v != "stats" {
		t.Fatalf("cmd = %q, %v", v, ok)
	}
	if v, ok := out.Get("task"); !ok || v != "decode" {
		t.Fatalf("task = %q, %v", v, ok)
	}
	if out.Len() != 2 {
		t.Fatalf("expected 2 keys, got %d", out.Len())
	}
}

func TestEncodeEndsWithSingleNewline(t *testing.T) {
	out := Encode(NewFrame())
	if string(out) != "\n" {
		t.Fatalf("empty frame should encode to a bare newline, got %q", out)
	}
}

func TestDecodeIsCaseSensitive(t *testing.T) {
	f := NewFrame()
	f.Set("cmd", "stats")
	upper := []byte(nil)
	for _, b := range Encode(f) {
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		upper = append(upper, b)
	}

	out := Decode(upper)
	if v, ok := out.Get("cmd"); ok {
		t.Fatalf("upper-cased base64 should not decode back to the original key, got cmd=%q", v)
	}
}

func TestDecodeSkipsMalformedTokens(t *testing.T) {
	out := Decode([]byte("=b2s= noequalshere ==\n"))
	if out.Len() != 0 {
		t.Fatalf("expected no keys from malformed tokens, got %d", out.Len())
	}
}

func TestDecodeLastWriteWins(t *testing.T) {
	key := b64.EncodeToString([]byte("cmd"))
	first := b64.EncodeToString([]byte("stats"))
	second := b64.EncodeToString([]byte("clear"))

	out := Decode([]byte(key + "=" + first + " " + key + "=" + second + "\n"))

	v, ok := out.Get("cmd")
	if !ok || v != "clear" {
		t.Fatalf("expected last duplicate to win, got %q, %v", v, ok)
	}
}

func TestDecodeToleratesInvalidBase64(t *testing.T) {
	out := Decode([]byte("####=####\n"))
	if out.Len() != 0 {
		t.Fatalf("expected invalid base64 on both sides to decode to an empty, dropped key, got %d keys", out.Len())
	}
}
