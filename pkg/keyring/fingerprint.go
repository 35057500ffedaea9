package keyring

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"example.com/pgpcore/pkg/pgp"
)

// keyID derives the classic 64-bit key id from a decoded certificate's
// already-parsed public fields (RFC 4880 §12.2): for a v4 key, the low 8
// bytes of the SHA-1 hash of the standard "0x99, length, body"
// serialization; for the older v2/v3 RSA-only keys, the low 8 bytes of the
// modulus itself. This reads fields decodeCert already populated — it adds
// no new wire parsing of its own.
func keyID(pub pgp.PublicKeyFields) (string, error) {
	if pub.Version != 4 {
		if len(pub.RSAN.Bytes) < 8 {
			return "", fmt.Errorf("keyring: v%d key too short for legacy key id", pub.Version)
		}
		tail := pub.RSAN.Bytes[len(pub.RSAN.Bytes)-8:]
		return fmt.Sprintf("%X", tail), nil
	}

	body := []byte{4}
	var ts [4]byte
	binary.BigEndian.PutUint32(ts[:], pub.Created)
	body = append(body, ts[:]...)
	body = append(body, pub.Algo)

	var mpis []pgp.MPI
	switch pub.Algo {
	case pgp.PubkeyAlgoRSA:
		mpis = []pgp.MPI{pub.RSAN, pub.RSAE}
	case pgp.PubkeyAlgoElGamal:
		mpis = []pgp.MPI{pub.ElGamalP, pub.ElGamalG, pub.ElGamalY}
	case pgp.PubkeyAlgoDSA:
		mpis = []pgp.MPI{pub.DSAP, pub.DSAQ, pub.DSAG, pub.DSAY}
	default:
		return "", fmt.Errorf("keyring: unknown pubkey algorithm %d", pub.Algo)
	}
	for _, m := range mpis {
		var bl [2]byte
		binary.BigEndian.PutUint16(bl[:], m.BitLen)
		body = append(body, bl[:]...)
		body = append(body, m.Bytes...)
	}

	var hdr [3]byte
	hdr[0] = 0x99
	binary.BigEndian.PutUint16(hdr[1:], uint16(len(body)))
	sum := sha1.Sum(append(hdr[:], body...))
	return fmt.Sprintf("%X", sum[12:]), nil
}

// formatKeyID renders the 64-bit key id carried directly on-wire (a
// Signature's ISSUER subpacket or v2/v3 fields) in the same form keyID
// produces, so the two can be compared.
func formatKeyID(hi, lo uint32) string {
	var b [8]byte
	binary.BigEndian.PutUint32(b[:4], hi)
	binary.BigEndian.PutUint32(b[4:], lo)
	return fmt.Sprintf("%X", b[:])
}
