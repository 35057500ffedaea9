package pgp

import "example.com/pgpcore/pkg/pgp/pgperr"

// decodePubkeyEnc implements the tag-1 decoder (§4.5). Version 6 (RFC 9580)
// drops the classic key-id-plus-algorithm-MPI layout for an algorithm id
// followed by two length-prefixed opaque blobs; decodePubkeyEncV6 reads
// those as pure framing, the same way the v2/v3 path reads RSA/ElGamal
// ciphertext as an opaque MPI without touching the algorithm underneath.
func decodePubkeyEnc(src *ByteSource) (*PubkeyEnc, error) {
	version := src.GetOrFail()
	if version == 6 {
		return decodePubkeyEncV6(src)
	}
	if version != 2 && version != 3 {
		return nil, pgperr.Newf(pgperr.InvalidPacket, "pubkeyenc: unsupported version %d", version)
	}
	keyIDHi, err := src.ReadUint32()
	if err != nil {
		return nil, pgperr.Wrap(pgperr.InvalidPacket, "pubkeyenc: short key id", err)
	}
	keyIDLo, err := src.ReadUint32()
	if err != nil {
		return nil, pgperr.Wrap(pgperr.InvalidPacket, "pubkeyenc: short key id", err)
	}
	algo := src.GetOrFail()

	v := &PubkeyEnc{Version: version, KeyIDHi: keyIDHi, KeyIDLo: keyIDLo, Algo: algo}

	switch algo {
	case PubkeyAlgoElGamal:
		a, _, err := ReadMPI(src)
		if err != nil {
			return v, err
		}
		b, _, err := ReadMPI(src)
		if err != nil {
			return v, err
		}
		v.ElGamalA, v.ElGamalB = a, b
		printMPI("elg a", a)
		printMPI("elg b", b)
	case PubkeyAlgoRSA:
		c, _, err := ReadMPI(src)
		if err != nil {
			return v, err
		}
		v.RSAC = c
		printMPI("rsa c", c)
	default:
		listf(":pubkeyenc packet: unknown algorithm %d, payload not decoded\n", algo)
	}

	listf(":pubkeyenc packet: version %d, keyid %08X%08X, algo %d\n", version, keyIDHi, keyIDLo, algo)
	return v, nil
}

// decodePubkeyEncV6 reads the version-6 body: algorithm id, a one-byte
// length followed by that many bytes of ephemeral public-key material, then
// a one-byte length followed by that many bytes of wrapped session key.
func decodePubkeyEncV6(src *ByteSource) (*PubkeyEnc, error) {
	algo := src.GetOrFail()

	ephLen := int(src.GetOrFail())
	eph := make([]byte, ephLen)
	if err := src.ReadFull(eph); err != nil {
		return nil, pgperr.Wrap(pgperr.InvalidPacket, "pubkeyenc: short ephemeral key field", err)
	}

	wrapLen := int(src.GetOrFail())
	wrapped := make([]byte, wrapLen)
	if err := src.ReadFull(wrapped); err != nil {
		return nil, pgperr.Wrap(pgperr.InvalidPacket, "pubkeyenc: short wrapped session key field", err)
	}

	listf(":pubkeyenc packet: version 6, algo %d, ephemeral key material %d bytes, wrapped key %d bytes\n",
		algo, len(eph), len(wrapped))
	return &PubkeyEnc{Version: 6, Algo: algo, EphemeralKey: eph, WrappedSessionKey: wrapped}, nil
}
