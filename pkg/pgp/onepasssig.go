package pgp

import "example.com/pgpcore/pkg/pgp/pgperr"

// decodeOnepassSig implements the tag-4 decoder: a fixed 13-byte body
// (§4.9).
func decodeOnepassSig(src *ByteSource) (*OnepassSig, error) {
	version := src.GetOrFail()
	if version != 3 {
		return nil, pgperr.Newf(pgperr.InvalidPacket, "onepasssig: unsupported version %d", version)
	}
	v := &OnepassSig{Version: version}
	v.SigClass = src.GetOrFail()
	v.DigestAlgo = src.GetOrFail()
	v.PubkeyAlgo = src.GetOrFail()
	hi, err := src.ReadUint32()
	if err != nil {
		return v, pgperr.Wrap(pgperr.InvalidPacket, "onepasssig: short key id", err)
	}
	lo, err := src.ReadUint32()
	if err != nil {
		return v, pgperr.Wrap(pgperr.InvalidPacket, "onepasssig: short key id", err)
	}
	v.KeyIDHi, v.KeyIDLo = hi, lo
	v.Last = src.GetOrFail()

	listf(":one-pass signature packet: version %d, class %02x, keyid %08X%08X, last %d\n",
		v.Version, v.SigClass, v.KeyIDHi, v.KeyIDLo, v.Last)
	return v, nil
}
