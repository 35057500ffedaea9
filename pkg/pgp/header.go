package pgp

import (
	"encoding/binary"
	"io"

	"example.com/pgpcore/pkg/pgp/pgperr"
)

// LengthKind distinguishes how a packet's body length was framed.
type LengthKind int

const (
	// LengthDefinite means N is the exact body length.
	LengthDefinite LengthKind = iota
	// LengthIndeterminate means the body runs until the underlying
	// stream's EOF (old-format length code 3).
	LengthIndeterminate
	// LengthPartial means the body is chunked; N is the first chunk's
	// size and the ByteSource rejoins subsequent chunks transparently.
	LengthPartial
	// LengthCompressedIndeterminate is LengthIndeterminate's old-format
	// exception for Compressed packets: the body also runs to EOF, but
	// the ByteSource must NOT be switched into block mode, because the
	// compression stream delimits its own end (§4.1, §4.7).
	LengthCompressedIndeterminate
)

// BodyLength describes a packet body's length framing.
type BodyLength struct {
	Kind LengthKind
	N    int // definite length, or first partial chunk length
}

// Header is the decoded CTB plus length descriptor for one packet.
type Header struct {
	Tag       byte
	NewFormat bool
	Length    BodyLength
	Raw       []byte // verbatim CTB + length bytes, for re-framing (§4.7)
}

// readNewFormatLength decodes the OpenPGP new-format variable-length
// encoding of a new-format packet header (§4.1). Subpacket size fields use
// the same encoding but are decoded by subpacket.readLength (§4.10).
func readNewFormatLength(src *ByteSource) (BodyLength, []byte, error) {
	c, err := src.Get()
	if err != nil {
		return BodyLength{}, nil, err
	}
	raw := []byte{c}
	switch {
	case c < 192:
		return BodyLength{Kind: LengthDefinite, N: int(c)}, raw, nil
	case c <= 223:
		c2, err := src.Get()
		if err != nil {
			return BodyLength{}, nil, pgperr.Wrap(pgperr.InvalidPacket, "truncated 2-octet length", err)
		}
		raw = append(raw, c2)
		n := int(c-192)<<8 + int(c2) + 192
		return BodyLength{Kind: LengthDefinite, N: n}, raw, nil
	case c == 255:
		var buf [4]byte
		if err := src.ReadFull(buf[:]); err != nil {
			return BodyLength{}, nil, pgperr.Wrap(pgperr.InvalidPacket, "truncated 5-octet length", err)
		}
		raw = append(raw, buf[:]...)
		return BodyLength{Kind: LengthDefinite, N: int(binary.BigEndian.Uint32(buf[:]))}, raw, nil
	default: // 224-254: partial body length, first chunk = 1 << (c & 0x1f)
		return BodyLength{Kind: LengthPartial, N: 1 << (c & 0x1f)}, raw, nil
	}
}

// ReadHeader reads the leading Control Tag Byte and its length encoding,
// selecting old or new format from bit 6 and dispatching to the matching
// length rule (§4.1). It puts src into block mode so the header bytes are
// read unbounded (a fresh ByteSource, or one whose previous body is used
// up, has no budget left), but it does not arm src for the body — the
// caller (PacketDispatcher) does that once it has decided whether to
// decode, skip, or copy the body.
func ReadHeader(src *ByteSource) (*Header, error) {
	src.SetBlockMode(true)
	ctb, err := src.Get()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, pgperr.Wrap(pgperr.ReadError, "reading CTB", err)
	}
	if ctb&0x80 == 0 {
		return nil, pgperr.New(pgperr.InvalidPacket, "invalid CTB: high bit clear")
	}
	raw := []byte{ctb}

	if ctb&0x40 != 0 {
		tag := ctb & 0x3f
		length, lenRaw, err := readNewFormatLength(src)
		if err != nil {
			return nil, err
		}
		raw = append(raw, lenRaw...)
		return &Header{Tag: tag, NewFormat: true, Length: length, Raw: raw}, nil
	}

	tag := (ctb >> 2) & 0x0f
	lengthType := ctb & 0x03
	var length BodyLength
	switch lengthType {
	case 0:
		b, err := src.Get()
		if err != nil {
			return nil, pgperr.Wrap(pgperr.InvalidPacket, "truncated 1-octet length", err)
		}
		raw = append(raw, b)
		length = BodyLength{Kind: LengthDefinite, N: int(b)}
	case 1:
		var buf [2]byte
		if err := src.ReadFull(buf[:]); err != nil {
			return nil, pgperr.Wrap(pgperr.InvalidPacket, "truncated 2-octet length", err)
		}
		raw = append(raw, buf[:]...)
		length = BodyLength{Kind: LengthDefinite, N: int(binary.BigEndian.Uint16(buf[:]))}
	case 2:
		var buf [4]byte
		if err := src.ReadFull(buf[:]); err != nil {
			return nil, pgperr.Wrap(pgperr.InvalidPacket, "truncated 4-octet length", err)
		}
		raw = append(raw, buf[:]...)
		length = BodyLength{Kind: LengthDefinite, N: int(binary.BigEndian.Uint32(buf[:]))}
	case 3:
		if tag == TagCompressed {
			length = BodyLength{Kind: LengthCompressedIndeterminate}
		} else {
			length = BodyLength{Kind: LengthIndeterminate}
		}
	}
	return &Header{Tag: tag, NewFormat: false, Length: length, Raw: raw}, nil
}
