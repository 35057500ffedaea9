package pgp

import (
	"bytes"
	"testing"

	"example.com/pgpcore/pkg/util/random"
)

// buildOldFormat wraps a random body in an old-format header for a tag that
// carries no further internal structure (UserId, §4.5), picking the 1/2/4-byte
// length-type bits the real length requires so only the dispatcher's length
// bookkeeping is under test.
func buildOldFormat(tag byte, body []byte) []byte {
	n := len(body)
	switch {
	case n < 256:
		ctb := byte(0x80) | (tag << 2)
		return append([]byte{ctb, byte(n)}, body...)
	case n < 65536:
		ctb := byte(0x80) | (tag << 2) | 1
		return append([]byte{ctb, byte(n >> 8), byte(n)}, body...)
	default:
		ctb := byte(0x80) | (tag << 2) | 2
		hdr := []byte{ctb, byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
		return append(hdr, body...)
	}
}

// buildNewFormat exercises all three new-format definite-length encodings
// (§4.1) depending on body size, picking the smallest that fits.
func buildNewFormat(tag byte, body []byte) []byte {
	ctb := byte(0xC0) | tag
	n := len(body)
	switch {
	case n < 192:
		return append([]byte{ctb, byte(n)}, body...)
	case n < 8384:
		c := n - 192
		return append([]byte{ctb, byte(192 + (c >> 8)), byte(c)}, body...)
	default:
		hdr := []byte{ctb, 0xFF, byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
		return append(hdr, body...)
	}
}

// TestRandomWellFormedPacketsLengthBudget is spec testable property 1:
// for every successfully decoded packet with a definite length L, the
// dispatcher must consume exactly L+header_bytes bytes from the stream,
// verified here by checking that decoding one random packet followed
// immediately by a second leaves the second packet's header at the right
// offset.
func TestRandomWellFormedPacketsLengthBudget(t *testing.T) {
	sizes := []int{0, 1, 5, 191, 192, 300, 8383, 8384, 9000}
	for _, n := range sizes {
		body := random.Bytes(n)

		old := buildOldFormat(TagUserId, body)
		newf := buildNewFormat(TagUserId, body)
		marker := []byte{0xCD, 0x01, 'X'} // a second, distinguishable UserId packet

		for _, framing := range []struct {
			name string
			raw  []byte
		}{
			{"old-format", append(append([]byte{}, old...), marker...)},
			{"new-format", append(append([]byte{}, newf...), marker...)},
		} {
			t.Run(framing.name, func(t *testing.T) {
				d := NewDispatcher(NewByteSource(bytes.NewReader(framing.raw)))
				pkt, err := d.ParseOne()
				if err != nil {
					t.Fatalf("ParseOne (n=%d): %v", n, err)
				}
				if pkt == nil || pkt.UserId == nil {
					t.Fatalf("ParseOne (n=%d): expected a UserId packet, got %+v", n, pkt)
				}
				if len(pkt.UserId.Bytes) != n {
					t.Fatalf("body length = %d, want %d", len(pkt.UserId.Bytes), n)
				}
				if !bytes.Equal(pkt.UserId.Bytes, body) {
					t.Fatalf("body mismatch for n=%d", n)
				}

				pkt2, err := d.ParseOne()
				if err != nil {
					t.Fatalf("second ParseOne (n=%d): %v", n, err)
				}
				if pkt2 == nil || pkt2.UserId == nil || string(pkt2.UserId.Bytes) != "X" {
					t.Fatalf("second packet (n=%d): expected trailing marker UserId, got %+v", n, pkt2)
				}
			})
		}
	}
}
