// Package subpacket implements the self-delimited subpacket stream embedded
// in a v4 signature's hashed and unhashed data areas.
package subpacket

import (
	"encoding/binary"
	"fmt"
)

// Known subpacket type codes (§4.10).
const (
	TypeSigCreated        = 2
	TypeSigExpiration     = 3
	TypeExportable        = 4
	TypeTrustSignature    = 5
	TypeRegularExpression = 6
	TypeRevocable         = 7
	TypeKeyExpiration     = 9
	TypeAdditionalRecip   = 10
	TypePreferredSym      = 11
	TypeRevocationKey     = 12
	TypeIssuer            = 16
	TypeNotationData      = 20
	TypePreferredHash     = 21
	TypePreferredCompress = 22
	TypeKeyServerPrefs    = 23
	TypePreferredKeyServ  = 24
	TypePrimaryUserID     = 25
	TypePolicyURL         = 26
	TypeKeyFlags          = 27
	TypeSignersUserID     = 28
)

var typeNames = map[byte]string{
	TypeSigCreated:        "signature creation time",
	TypeSigExpiration:     "signature expiration time",
	TypeExportable:        "exportable",
	TypeTrustSignature:    "trust signature",
	TypeRegularExpression: "regular expression",
	TypeRevocable:         "revocable",
	TypeKeyExpiration:     "key expiration time",
	TypeAdditionalRecip:   "additional recipient request",
	TypePreferredSym:      "preferred symmetric algorithms",
	TypeRevocationKey:     "revocation key",
	TypeIssuer:            "issuer",
	TypeNotationData:      "notation data",
	TypePreferredHash:     "preferred hash",
	TypePreferredCompress: "preferred compression",
	TypeKeyServerPrefs:    "key-server preferences",
	TypePreferredKeyServ:  "preferred key server",
	TypePrimaryUserID:     "primary user id",
	TypePolicyURL:         "policy URL",
	TypeKeyFlags:          "key flags",
	TypeSignersUserID:     "signer's user id",
}

// TypeName returns the printable name of a known subpacket type, or
// "unknown" if the type code isn't in the known table.
func TypeName(t byte) string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "unknown"
}

// Entry is one decoded subpacket: its type (critical flag stripped),
// whether the critical bit was set, and its payload.
type Entry struct {
	Type     byte
	Critical bool
	Payload  []byte
}

// readLength decodes one subpacket's own variable-length size field, the
// same encoding new-format packet lengths use (§4.1, §4.10).
func readLength(buf []byte) (n int, consumed int, err error) {
	if len(buf) < 1 {
		return 0, 0, fmt.Errorf("subpacket: buffer too short for length")
	}
	c := buf[0]
	switch {
	case c < 192:
		return int(c), 1, nil
	case c <= 223:
		if len(buf) < 2 {
			return 0, 0, fmt.Errorf("subpacket: truncated 2-octet length")
		}
		return (int(c)-192)<<8 + int(buf[1]) + 192, 2, nil
	case c == 255:
		if len(buf) < 5 {
			return 0, 0, fmt.Errorf("subpacket: truncated 5-octet length")
		}
		return int(binary.BigEndian.Uint32(buf[1:5])), 5, nil
	default:
		return 0, 0, fmt.Errorf("subpacket: partial-body length not valid inside a subpacket stream")
	}
}

// Scanner walks a 2-byte-length-prefixed subpacket stream (the on-wire form
// stored verbatim in Signature.HashedData / Signature.UnhashedData,
// including that 2-byte prefix).
type Scanner struct {
	buf []byte // the subpacket stream, with the leading 2-byte length stripped
}

// New builds a Scanner over buf, which must begin with the 2-byte big-endian
// total length of the subpacket stream that follows.
func New(buf []byte) (*Scanner, error) {
	if len(buf) < 2 {
		return nil, fmt.Errorf("subpacket: buffer shorter than length prefix")
	}
	total := int(binary.BigEndian.Uint16(buf[:2]))
	rest := buf[2:]
	if total > len(rest) {
		return nil, fmt.Errorf("subpacket: declared length %d exceeds buffer", total)
	}
	return &Scanner{buf: rest[:total]}, nil
}

// each walks the stream, invoking fn per decoded Entry. fn returning false
// stops the walk early.
func (s *Scanner) each(fn func(Entry) bool) error {
	buf := s.buf
	for len(buf) > 0 {
		size, n, err := readLength(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
		if size < 1 || size > len(buf) {
			return fmt.Errorf("subpacket: declared size %d exceeds remaining buffer", size)
		}
		typeByte := buf[0]
		entry := Entry{
			Type:     typeByte &^ 0x80,
			Critical: typeByte&0x80 != 0,
			Payload:  buf[1:size],
		}
		buf = buf[size:]
		if !fn(entry) {
			return nil
		}
	}
	return nil
}

// Find returns the payload of the first subpacket matching t, enforcing the
// known minimum payload sizes for SIG_CREATED (≥4) and ISSUER (≥8).
func Find(buf []byte, t byte) ([]byte, bool, error) {
	s, err := New(buf)
	if err != nil {
		return nil, false, err
	}
	var found []byte
	var ok bool
	err = s.each(func(e Entry) bool {
		if e.Type != t {
			return true
		}
		found = e.Payload
		ok = true
		return false
	})
	if err != nil {
		return nil, false, err
	}
	if ok {
		switch t {
		case TypeSigCreated:
			if len(found) < 4 {
				return nil, false, fmt.Errorf("subpacket: signature creation time payload too short")
			}
		case TypeIssuer:
			if len(found) < 8 {
				return nil, false, fmt.Errorf("subpacket: issuer payload too short")
			}
		}
	}
	return found, ok, nil
}

// List walks buf in order, invoking fn once per subpacket for pretty-printing.
func List(buf []byte, fn func(Entry)) error {
	s, err := New(buf)
	if err != nil {
		return err
	}
	return s.each(func(e Entry) bool {
		fn(e)
		return true
	})
}

// SigCreatedTime decodes a SIG_CREATED subpacket payload (big-endian u32
// timestamp). Missing SIG_CREATED is a soft error at the caller (§4.6,
// §7) — this helper only decodes a payload already known to be present.
func SigCreatedTime(payload []byte) uint32 {
	return binary.BigEndian.Uint32(payload[:4])
}

// IssuerKeyID decodes an ISSUER subpacket payload into the classic two-u32
// key id representation used elsewhere in this module.
func IssuerKeyID(payload []byte) (hi, lo uint32) {
	return binary.BigEndian.Uint32(payload[:4]), binary.BigEndian.Uint32(payload[4:8])
}
