package pgp

import "example.com/pgpcore/pkg/pgp/pgperr"

// decodeSymkeyEnc implements the tag-3 decoder (§4.4): version, cipher
// algo, S2K mode, hash algo, then mode-dependent salt/iteration-count
// fields, with whatever remains being the wrapped session key.
func decodeSymkeyEnc(src *ByteSource) (*SymkeyEnc, error) {
	version := src.GetOrFail()
	if version != 4 {
		return nil, pgperr.Newf(pgperr.InvalidPacket, "symkeyenc: unsupported version %d", version)
	}
	cipherAlgo := src.GetOrFail()
	mode := src.GetOrFail()
	hashAlgo := src.GetOrFail()

	v := &SymkeyEnc{Version: version, CipherAlgo: cipherAlgo, S2K: S2K{Mode: mode, HashAlgo: hashAlgo}}
	consumed := 4 // version, cipher, s2k mode, hash

	switch mode {
	case S2KSimple:
	case S2KSalted:
		if err := src.ReadFull(v.S2K.Salt[:]); err != nil {
			return v, pgperr.Wrap(pgperr.InvalidPacket, "symkeyenc: short salted-s2k salt", err)
		}
		v.S2K.HasSalt = true
		consumed += 8
	case S2KIteratedSalt:
		if err := src.ReadFull(v.S2K.Salt[:]); err != nil {
			return v, pgperr.Wrap(pgperr.InvalidPacket, "symkeyenc: short iterated-s2k salt", err)
		}
		v.S2K.HasSalt = true
		count, err := src.ReadUint32()
		if err != nil {
			return v, pgperr.Wrap(pgperr.InvalidPacket, "symkeyenc: short iteration count", err)
		}
		v.S2K.Count = count
		v.S2K.HasCount = true
		consumed += 12
	default:
		return v, pgperr.Newf(pgperr.InvalidPacket, "symkeyenc: bad s2k mode %d", mode)
	}

	// Whole-packet cap of 200 bytes keeps the session key length well
	// within the byte budget; read whatever is left, up to that cap, as the
	// wrapped key. Bytes past the cap are left for the dispatcher's drain.
	const maxPacket = 200
	key := make([]byte, 0, 32)
	buf := make([]byte, 32)
	for len(key) < maxPacket-consumed {
		n, err := src.Read(buf[:min(len(buf), maxPacket-consumed-len(key))])
		key = append(key, buf[:n]...)
		if err != nil {
			break
		}
		if n == 0 {
			break
		}
	}
	v.SessionKey = key

	listf(":symkeyenc packet: cipher %d, s2k mode %d, hash %d, keylen %d\n",
		cipherAlgo, mode, hashAlgo, len(v.SessionKey))
	return v, nil
}
