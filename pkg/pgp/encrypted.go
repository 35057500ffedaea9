package pgp

import "example.com/pgpcore/pkg/pgp/pgperr"

// decodeEncrypted implements the tag-9/18/20 decoders (§4.9). Tag 9's whole
// body is the encrypted stream; tags 18 and 20 carry a handful of cleartext
// parameter bytes ahead of it (an inner version byte, cipher/AEAD ids, a
// chunk-size byte, and a salt or IV) that a decrypting caller needs before
// it can touch the ciphertext. This decoder reads exactly those bytes and
// stops — the ciphertext itself stays on Body, unread, the same contract
// Plaintext and Compressed use. budget is the declared definite length, or
// -1 when the length is indeterminate/partial.
func decodeEncrypted(src *ByteSource, tag byte, budget int) (*Encrypted, error) {
	switch tag {
	case TagEncrypted:
		if budget >= 0 && budget < 10 {
			return nil, pgperr.Newf(pgperr.InvalidPacket, "encrypted: body %d bytes shorter than MDC-prefix minimum", budget)
		}
		listf(":encrypted data packet: length %d\n", budget)
		return &Encrypted{Tag: tag, DeclaredLength: budget, Body: src}, nil

	case TagSEIPD:
		version := src.GetOrFail()
		v := &Encrypted{Tag: tag, DeclaredLength: budget, Version: version}
		if version == 2 {
			v.CipherAlgo = src.GetOrFail()
			v.AEADAlgo = src.GetOrFail()
			v.ChunkSize = src.GetOrFail()
			salt := make([]byte, 32)
			if err := src.ReadFull(salt); err != nil {
				return nil, pgperr.Wrap(pgperr.InvalidPacket, "seipd: short salt", err)
			}
			v.Salt = salt
		}
		listf(":symmetrically encrypted and integrity protected data packet: version %d\n", version)
		v.Body = src
		return v, nil

	case TagAEADEncrypted:
		version := src.GetOrFail()
		cipherAlgo := src.GetOrFail()
		mode := src.GetOrFail()
		chunkSize := src.GetOrFail()
		iv := make([]byte, 15)
		if err := src.ReadFull(iv); err != nil {
			return nil, pgperr.Wrap(pgperr.InvalidPacket, "aead encrypted: short iv", err)
		}
		listf(":aead encrypted data packet: version %d, cipher %d, mode %d\n", version, cipherAlgo, mode)
		return &Encrypted{
			Tag:        tag,
			DeclaredLength: budget,
			Version:    version,
			CipherAlgo: cipherAlgo,
			Mode:       mode,
			ChunkSize:  chunkSize,
			IV:         iv,
			Body:       src,
		}, nil

	default:
		return nil, pgperr.Newf(pgperr.UnknownPacket, "encrypted: no decoder for tag %d", tag)
	}
}
