package pgp

import "example.com/pgpcore/pkg/pgp/pgperr"

// decodePlaintext implements the tag-11 decoder (§4.9). The ByteSource's
// active mode (fixed, block, or partial) already enforces how far name/body
// reads may go, so no separate budget parameter is needed here. The
// remaining body is left unconsumed: Body is a borrowed handle the caller
// must drain or hand off before the next dispatcher call (§3 Lifecycles).
func decodePlaintext(src *ByteSource) (*Plaintext, error) {
	mode := src.GetOrFail()
	namelen := src.GetOrFail()
	name := make([]byte, namelen)
	if err := src.ReadFull(name); err != nil {
		return nil, pgperr.Wrap(pgperr.InvalidPacket, "plaintext: truncated name", err)
	}
	ts, err := src.ReadUint32()
	if err != nil {
		return nil, pgperr.Wrap(pgperr.InvalidPacket, "plaintext: truncated timestamp", err)
	}
	listf(":literal data packet: mode %c, name %q, timestamp %d\n", mode, name, ts)
	return &Plaintext{Mode: mode, Name: name, Timestamp: ts, Body: src}, nil
}
