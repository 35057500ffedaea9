// DecryptMessage ties the rest of this package together into the one
// operation a caller actually wants: recover the session key from an
// already-decoded v6 PubkeyEnc packet, then decrypt whichever Encrypted
// container packet follows it. Both packets come from pkg/pgp's
// Dispatcher — the same ParseOne loop cmd/pgpdump's list/search/keyring
// subcommands already drive — the same adaptation pattern
// pkg/compress.Decompress follows for a decoded Compressed packet's Body
// (§1: the core parser owns all packet framing; this layer only ever
// attaches crypto meaning to fields it has already parsed).
package session

import (
	"errors"

	"example.com/pgpcore/pkg/pgp"
)

// DecryptMessage recovers the plaintext carried behind a v6 PubkeyEnc
// packet followed by a SEIPDv2 (tag 18, version 2) or OCBED (tag 20)
// Encrypted packet. pkAlg selects the X25519/X448 ECDH path;
// recipientPriv is the recipient's raw private scalar.
func DecryptMessage(pkesk *pgp.PubkeyEnc, enc *pgp.Encrypted, pkAlg string, recipientPriv []byte) ([]byte, error) {
	if pkesk == nil {
		return nil, errors.New("session: expected a pubkeyenc packet")
	}
	if enc == nil {
		return nil, errors.New("session: expected an encrypted packet")
	}

	sessionKey, err := decodePKESKX(pkesk, pkAlg, recipientPriv)
	if err != nil {
		return nil, err
	}

	switch enc.Tag {
	case pgp.TagSEIPD:
		return decryptSEIPDv2OCB(enc, sessionKey)
	case pgp.TagAEADEncrypted:
		return decryptOCBED(enc, sessionKey)
	default:
		return nil, errors.New("session: expected a SEIPDv2 or OCBED packet second")
	}
}
