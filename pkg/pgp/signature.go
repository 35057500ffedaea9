package pgp

import (
	"encoding/binary"

	"example.com/pgpcore/pkg/pgp/pgperr"
	"example.com/pgpcore/pkg/pgp/subpacket"
)

const maxSubpacketDataLen = 10000

// readLengthPrefixedSubpackets reads a u16 length (capped at 10000 per
// §4.6) followed by that many bytes, returning the buffer *with* its
// 2-byte length prefix intact — the on-wire form signatures must retain
// verbatim for later verification.
func readLengthPrefixedSubpackets(src *ByteSource) ([]byte, error) {
	n, err := src.ReadUint16()
	if err != nil {
		return nil, pgperr.Wrap(pgperr.InvalidPacket, "signature: short subpacket length", err)
	}
	if int(n) > maxSubpacketDataLen {
		return nil, pgperr.Newf(pgperr.InvalidPacket, "signature: subpacket area %d exceeds cap", n)
	}
	buf := make([]byte, 2+int(n))
	binary.BigEndian.PutUint16(buf[:2], n)
	if err := src.ReadFull(buf[2:]); err != nil {
		return nil, pgperr.Wrap(pgperr.InvalidPacket, "signature: truncated subpacket area", err)
	}
	return buf, nil
}

// decodeSignature implements the tag-2 decoder (§4.6).
func decodeSignature(src *ByteSource) (*Signature, error) {
	v := &Signature{}
	v.Version = src.GetOrFail()

	switch v.Version {
	case 2, 3:
		v.MD5Len = src.GetOrFail()
		v.SigClass = src.GetOrFail()
		ts, err := src.ReadUint32()
		if err != nil {
			return v, pgperr.Wrap(pgperr.InvalidPacket, "signature: short timestamp", err)
		}
		v.Timestamp = ts
		hi, err := src.ReadUint32()
		if err != nil {
			return v, pgperr.Wrap(pgperr.InvalidPacket, "signature: short key id", err)
		}
		lo, err := src.ReadUint32()
		if err != nil {
			return v, pgperr.Wrap(pgperr.InvalidPacket, "signature: short key id", err)
		}
		v.KeyIDHi, v.KeyIDLo = hi, lo
	case 4:
		v.SigClass = src.GetOrFail()
	default:
		return nil, pgperr.Newf(pgperr.InvalidPacket, "signature: unsupported version %d", v.Version)
	}

	v.PubkeyAlgo = src.GetOrFail()
	v.DigestAlgo = src.GetOrFail()

	if v.Version == 4 {
		hashed, err := readLengthPrefixedSubpackets(src)
		if err != nil {
			return v, err
		}
		v.HashedData = hashed
		unhashed, err := readLengthPrefixedSubpackets(src)
		if err != nil {
			return v, err
		}
		v.UnhashedData = unhashed

		if payload, ok, err := subpacket.Find(v.HashedData, subpacket.TypeSigCreated); err != nil {
			v.Warnings = append(v.Warnings, "bad SIG_CREATED subpacket: "+err.Error())
		} else if ok {
			v.Timestamp = subpacket.SigCreatedTime(payload)
		} else {
			v.Warnings = append(v.Warnings, "missing SIG_CREATED subpacket")
		}

		if payload, ok, err := subpacket.Find(v.UnhashedData, subpacket.TypeIssuer); err != nil {
			v.Warnings = append(v.Warnings, "bad ISSUER subpacket: "+err.Error())
		} else if ok {
			v.KeyIDHi, v.KeyIDLo = subpacket.IssuerKeyID(payload)
		} else {
			v.Warnings = append(v.Warnings, "missing ISSUER subpacket")
		}
	}

	if err := src.ReadFull(v.DigestStart[:]); err != nil {
		return v, pgperr.Wrap(pgperr.InvalidPacket, "signature: short digest-start", err)
	}

	switch v.PubkeyAlgo {
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
	case PubkeyAlgoDSA:
		r, _, err := ReadMPI(src)
		if err != nil {
			return v, err
		}
		s, _, err := ReadMPI(src)
		if err != nil {
			return v, err
		}
		v.DSAR, v.DSAS = r, s
		printMPI("dsa r", r)
		printMPI("dsa s", s)
	case PubkeyAlgoRSA:
		c, _, err := ReadMPI(src)
		if err != nil {
			return v, err
		}
		v.RSAC = c
		printMPI("rsa c", c)
	default:
		listf(":signature packet: unknown pubkey algorithm %d, signature integers not decoded\n", v.PubkeyAlgo)
	}

	if v.Version == 4 {
		printSubpackets("hashed", v.HashedData)
		printSubpackets("unhashed", v.UnhashedData)
	}
	listf(":signature packet: version %d, class %02x, keyid %08X%08X, digest algo %d\n",
		v.Version, v.SigClass, v.KeyIDHi, v.KeyIDLo, v.DigestAlgo)
	for _, w := range v.Warnings {
		listf("\t%s\n", w)
	}
	return v, nil
}
