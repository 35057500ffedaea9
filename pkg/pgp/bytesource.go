package pgp

import (
	"bufio"
	"encoding/binary"
	"io"
)

// sourceMode is the active length discipline a ByteSource enforces on reads.
type sourceMode int

const (
	modeFixed sourceMode = iota
	modeBlock
	modePartial
)

// ByteSource is the positioned byte reader every packet body is read
// through. It is the concrete form of the spec's "ByteSource" external
// collaborator: single-byte and bulk reads, a running offset, and the three
// length disciplines a packet body can be framed with (definite length,
// indeterminate/EOF-bounded block mode, and partial-body-length chunking).
// A single ByteSource spans an entire stream; HeaderParser/PacketDispatcher
// retoggle its mode before handing it to a PayloadDecoder.
type ByteSource struct {
	r      *bufio.Reader
	offset uint64

	mode      sourceMode
	remaining int  // bytes left in the current fixed-length or partial chunk
	final     bool // modePartial: current chunk is the terminal definite-length one
	eofUntil  bool // read-until-EOF without being "in block mode" (Compressed exception, §4.1)
}

// NewByteSource wraps r for packet parsing. The initial mode is fixed with a
// zero-byte budget; callers must call SetFixedMode, SetBlockMode or
// SetPartialBlockMode to bound reads of a packet body.
func NewByteSource(r io.Reader) *ByteSource {
	return &ByteSource{r: bufio.NewReaderSize(r, 4096), mode: modeFixed}
}

// Tell reports the number of bytes consumed from the underlying stream.
func (s *ByteSource) Tell() uint64 { return s.offset }

// InBlockMode reports whether the source is in old-format indeterminate-length mode.
func (s *ByteSource) InBlockMode() bool { return s.mode == modeBlock && !s.eofUntil }

// SetFixedMode bounds subsequent reads to exactly n bytes — a definite-length body.
func (s *ByteSource) SetFixedMode(n int) {
	s.mode = modeFixed
	s.remaining = n
}

// SetBlockMode puts the source into (or out of) old-format indeterminate-length
// mode, where the body runs until the underlying stream's EOF.
func (s *ByteSource) SetBlockMode(on bool) {
	s.eofUntil = false
	if on {
		s.mode = modeBlock
	} else {
		s.mode = modeFixed
		s.remaining = 0
	}
}

// SetReadUntilEOF puts the source into the Compressed-packet exception to
// old-format indeterminate length: reads still run until the underlying
// stream's EOF, but InBlockMode reports false, since the compression layer
// (not this ByteSource) delimits the body's true end (§4.1, §9).
func (s *ByteSource) SetReadUntilEOF() {
	s.mode = modeBlock
	s.eofUntil = true
}

// SetPartialBlockMode puts the source into new-format partial-body-length mode
// with the given first chunk size. Chunk boundaries are hidden from callers:
// Get/Read transparently parse the next chunk's length header once the
// current chunk is exhausted, until a final definite-length chunk is seen.
func (s *ByteSource) SetPartialBlockMode(firstChunkLen int) {
	s.mode = modePartial
	s.remaining = firstChunkLen
	s.final = false
}

// ensureChunk refills remaining for partial-body mode when the current chunk
// is exhausted and the stream isn't done, returning io.EOF once the body is
// genuinely finished (the stream's EOF for modeBlock, or the last chunk
// draining to zero for modeFixed/modePartial).
func (s *ByteSource) ensureChunk() error {
	if s.mode != modePartial {
		if s.mode == modeFixed && s.remaining <= 0 {
			return io.EOF
		}
		return nil
	}
	if s.remaining > 0 {
		return nil
	}
	if s.final {
		return io.EOF
	}
	c, err := s.r.ReadByte()
	if err != nil {
		return err
	}
	s.offset++
	switch {
	case c < 192:
		s.remaining = int(c)
		s.final = true
	case c <= 223:
		c2, err := s.r.ReadByte()
		if err != nil {
			return err
		}
		s.offset++
		s.remaining = int(c-192)<<8 + int(c2) + 192
		s.final = true
	case c == 255:
		var buf [4]byte
		if _, err := io.ReadFull(s.r, buf[:]); err != nil {
			return err
		}
		s.offset += 4
		s.remaining = int(binary.BigEndian.Uint32(buf[:]))
		s.final = true
	default: // 224-254: another partial chunk
		s.remaining = 1 << (c & 0x1f)
		s.final = false
	}
	if s.remaining == 0 && s.final {
		return io.EOF
	}
	return nil
}

// Get reads one byte, honoring the active mode's bound.
func (s *ByteSource) Get() (byte, error) {
	if s.mode == modeBlock {
		b, err := s.r.ReadByte()
		if err != nil {
			return 0, err
		}
		s.offset++
		return b, nil
	}
	if err := s.ensureChunk(); err != nil {
		return 0, err
	}
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, err
	}
	s.offset++
	s.remaining--
	return b, nil
}

// GetOrFail reads one byte, treating EOF (or any other read error) as zero.
// Used inside fixed-width field reads (u16/u32/salts) where legacy OpenPGP
// tolerates a short trailing body rather than failing the whole decode.
func (s *ByteSource) GetOrFail() byte {
	b, err := s.Get()
	if err != nil {
		return 0
	}
	return b
}

// Read fills buf as far as the active mode allows, returning the number of
// bytes read. Unlike io.Reader, Read never returns a short read without an
// error unless the mode's bound was reached; callers that need all n bytes
// or an error should use ReadFull.
func (s *ByteSource) Read(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	if s.mode == modeBlock {
		n, err := io.ReadFull(s.r, buf)
		s.offset += uint64(n)
		if err == io.ErrUnexpectedEOF {
			err = nil
		}
		return n, err
	}
	total := 0
	for total < len(buf) {
		if err := s.ensureChunk(); err != nil {
			if total > 0 {
				return total, nil
			}
			return 0, err
		}
		chunk := len(buf) - total
		if chunk > s.remaining {
			chunk = s.remaining
		}
		n, err := io.ReadFull(s.r, buf[total:total+chunk])
		s.offset += uint64(n)
		s.remaining -= n
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadFull reads exactly len(buf) bytes or returns an error, wrapping
// io.ErrUnexpectedEOF the way io.ReadFull does for a short final read.
func (s *ByteSource) ReadFull(buf []byte) error {
	n, err := s.Read(buf)
	if n == len(buf) {
		return nil
	}
	if err == nil || err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ReadUint16 reads a big-endian 16-bit field.
func (s *ByteSource) ReadUint16() (uint16, error) {
	var buf [2]byte
	if err := s.ReadFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// ReadUint32 reads a big-endian 32-bit field.
func (s *ByteSource) ReadUint32() (uint32, error) {
	var buf [4]byte
	if err := s.ReadFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// Drain discards up to n bytes (or, for block/partial mode, until the body
// ends) without retaining them. Returns the number of bytes discarded.
func (s *ByteSource) Drain(n int) (int, error) {
	const bufSize = 4096
	var buf [bufSize]byte
	total := 0
	for n < 0 || total < n {
		want := bufSize
		if n >= 0 && n-total < want {
			want = n - total
		}
		read, err := s.Read(buf[:want])
		total += read
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
		if read == 0 {
			return total, nil
		}
	}
	return total, nil
}

// CopyTo copies up to n bytes (n<0 meaning "until body end") verbatim to w.
func (s *ByteSource) CopyTo(w io.Writer, n int) (int64, error) {
	const bufSize = 4096
	var buf [bufSize]byte
	var total int64
	for n < 0 || int64(n)-total > 0 {
		want := bufSize
		if n >= 0 && int(int64(n)-total) < want {
			want = int(int64(n) - total)
		}
		read, rerr := s.Read(buf[:want])
		if read > 0 {
			if _, werr := w.Write(buf[:read]); werr != nil {
				return total, werr
			}
			total += int64(read)
		}
		if rerr != nil {
			if rerr == io.EOF {
				return total, nil
			}
			return total, rerr
		}
		if read == 0 {
			return total, nil
		}
	}
	return total, nil
}
