package session

import (
	"bytes"
	"testing"

	"example.com/pgpcore/pkg/pgp"
)

// newFormatPacket frames tag/body as a single RFC 9580 new-format packet.
// Test-only wire construction: decode-only production code has no encoder
// of its own to reuse here, the same reason cert_test.go in pkg/pgp hand-
// builds its fixtures rather than calling into production code to do it.
func newFormatPacket(tag byte, body []byte) []byte {
	first := byte(0xC0 | (tag & 0x3F))
	n := len(body)
	var hdr []byte
	switch {
	case n < 192:
		hdr = []byte{first, byte(n)}
	case n <= 8383:
		n -= 192
		hdr = []byte{first, byte(192 + (n >> 8)), byte(n & 0xFF)}
	default:
		hdr = []byte{first, 0xFF, byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	}
	out := make([]byte, 0, len(hdr)+len(body))
	out = append(out, hdr...)
	out = append(out, body...)
	return out
}

// parseOnePacket runs raw through the real pgp.Dispatcher, the same entry
// point cmd/pgpdump uses, so these tests exercise the tag 18/20/v6-
// PubkeyEnc decoders this package depends on rather than bypassing them.
func parseOnePacket(t *testing.T, raw []byte) *pgp.Packet {
	t.Helper()
	src := pgp.NewByteSource(bytes.NewReader(raw))
	d := pgp.NewDispatcher(src)
	pkt, err := d.ParseOne()
	if err != nil {
		t.Fatalf("ParseOne: %v", err)
	}
	return pkt
}
