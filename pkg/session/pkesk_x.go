package session

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"strings"

	"example.com/pgpcore/pkg/crypto/aeskw"
	"example.com/pgpcore/pkg/pgp"
	"github.com/cloudflare/circl/dh/x25519"
	"github.com/cloudflare/circl/dh/x448"
)

// decodePKESKX recovers the session key wrapped in a v6 PKESK packet's
// X25519/X448 fields. pkesk is already-decoded framing — pkg/pgp's
// decodePubkeyEncV6 split the ephemeral-key and wrapped-key blobs off the
// wire the same way it splits an RSA ciphertext into an MPI, without
// attaching algorithm meaning to either. This is the first place that does.
func decodePKESKX(pkesk *pgp.PubkeyEnc, pkAlg string, recipientPriv []byte) ([]byte, error) {
	if pkesk.Version != 6 {
		return nil, errors.New("session: expected a v6 pubkeyenc packet")
	}
	if len(pkesk.EphemeralKey) < 3 {
		return nil, errors.New("session: ephemeral key field too short")
	}
	// pkesk.EphemeralKey is a 2-byte bit length followed by an SOS-prefixed
	// (0x40) raw point, the same shape the tests' buildPKESKv6XBody emits.
	mp := pkesk.EphemeralKey[2:]
	if mp[0] != 0x40 {
		return nil, errors.New("session: ephemeral key missing SOS prefix")
	}
	ephPub := mp[1:]
	wrapped := pkesk.WrappedSessionKey

	var kek []byte
	switch strings.ToLower(pkAlg) {
	case "x25519":
		if len(recipientPriv) != x25519.Size || len(ephPub) != x25519.Size {
			return nil, errors.New("session: bad x25519 key sizes")
		}
		var sk, ep, sh x25519.Key
		copy(sk[:], recipientPriv)
		copy(ep[:], ephPub)
		if !x25519.Shared(&sh, &sk, &ep) {
			return nil, errors.New("session: x25519 shared failed")
		}
		kek = kdfConcatSHA256(sh[:], buildECDHParams(PKALG_X25519))[:32]
	case "x448":
		if len(recipientPriv) != x448.Size || len(ephPub) != x448.Size {
			return nil, errors.New("session: bad x448 key sizes")
		}
		var sk, ep, sh x448.Key
		copy(sk[:], recipientPriv)
		copy(ep[:], ephPub)
		if !x448.Shared(&sh, &sk, &ep) {
			return nil, errors.New("session: x448 shared failed")
		}
		kek = kdfConcatSHA256(sh[:], buildECDHParams(PKALG_X448))[:32]
	default:
		return nil, errors.New("session: unsupported recipient algorithm")
	}

	m, err := aeskw.Unwrap(kek, wrapped)
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, errors.New("session: unwrap produced no data")
	}
	pad := int(m[len(m)-1])
	if pad == 0 || pad > len(m) {
		return nil, errors.New("session: bad padding")
	}
	m = m[:len(m)-pad]
	if len(m) < 2 {
		return nil, errors.New("session: wrapped key missing checksum")
	}
	return m[:len(m)-2], nil
}

// kdfConcatSHA256 implements a minimal Concatenation KDF: Hash(0x00000001 || Z || params).
func kdfConcatSHA256(shared, params []byte) []byte {
	h := sha256.New()
	h.Write([]byte{0, 0, 0, 1})
	h.Write(shared)
	h.Write(params)
	return h.Sum(nil)
}

// buildECDHParams reproduces the fixed "Anonymous Sender" KDF params
// fixture that this package's PKESK fixtures are built with (PoC only,
// not an RFC 9580 conformant param block).
func buildECDHParams(recipientAlg int) []byte {
	anon := []byte("Anonymous Sender    ") // 20 bytes
	var b bytes.Buffer
	b.WriteByte(1)
	b.WriteByte(0) // fake curve OID size+oid
	b.WriteByte(byte(recipientAlg))
	b.WriteByte(3)
	b.WriteByte(0x01)
	b.WriteByte(8)
	b.WriteByte(9) // KDF params: 0x01, SHA256(8), AES-256(9)
	b.Write(anon)
	return b.Bytes()
}
