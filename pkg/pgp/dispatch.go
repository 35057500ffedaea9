package pgp

import (
	"bytes"
	"io"

	"example.com/pgpcore/pkg/pgp/pgperr"
)

// Sink is the verbatim-copy destination for copy_all/copy_some (§4.2, §4.7).
type Sink interface {
	io.Writer
}

// Dispatcher is the top-level parse loop over one ByteSource: it owns the
// decode/skip/verbatim-copy decision, invokes the header parser, consults
// caller-supplied filters, and dispatches to the matching PayloadDecoder
// (§4.2).
type Dispatcher struct {
	Src *ByteSource
}

// NewDispatcher wraps src for top-level packet operations.
func NewDispatcher(src *ByteSource) *Dispatcher {
	return &Dispatcher{Src: src}
}

// Offset reports the ByteSource's current position — call before ParseOne
// or SearchFor to capture where the next packet begins (§4.2 step 1).
func (d *Dispatcher) Offset() uint64 { return d.Src.Tell() }

// options configures one dispatcher pass; zero value means "decode
// whatever comes next".
type options struct {
	requiredType int // 0 = any
	sink         Sink
	hardSkip     bool
}

// bodyBudget returns the definite byte count a decoder or skip/copy routine
// should treat as its budget, or -1 for indeterminate/partial modes where
// the ByteSource itself enforces the boundary.
func (h *Header) bodyBudget() int {
	switch h.Length.Kind {
	case LengthDefinite:
		return h.Length.N
	default:
		return -1
	}
}

// armSource configures src's mode to match h's length descriptor, ahead of
// a decode, skip, or copy pass (§4.1, §4.7).
func armSource(src *ByteSource, h *Header) {
	switch h.Length.Kind {
	case LengthDefinite:
		src.SetFixedMode(h.Length.N)
	case LengthIndeterminate:
		src.SetBlockMode(true)
	case LengthCompressedIndeterminate:
		src.SetReadUntilEOF()
	case LengthPartial:
		src.SetPartialBlockMode(h.Length.N)
	}
}

// skipPacket drains a packet being skipped, additionally hex-dumping its
// bytes in list mode for any nonzero type (§4.7).
func skipPacket(src *ByteSource, tag byte) error {
	if ListMode() && tag != 0 {
		var buf bytes.Buffer
		if _, err := src.CopyTo(&buf, -1); err != nil && err != io.EOF {
			return err
		}
		hexDumpSkip(tag, buf.Bytes())
		return nil
	}
	_, err := src.Drain(-1)
	if err == io.EOF {
		return nil
	}
	return err
}

// drainRemaining consumes whatever is left of the current packet body after
// a decoder has returned, per the skip_rest policy in §4.7. Streaming
// variants (Plaintext/Compressed/Encrypted) pass drain=false since they
// hand the ByteSource off instead.
func drainRemaining(src *ByteSource, drain bool) error {
	if !drain {
		return nil
	}
	if _, err := src.Drain(-1); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// dispatchOne runs one header-parse-and-decode pass. skip reports whether
// the caller's loop should continue (packet was skipped, not decoded).
func (d *Dispatcher) dispatchOne(opts options) (pkt *Packet, skip bool, err error) {
	hdr, err := ReadHeader(d.Src)
	if err == io.EOF {
		return nil, false, io.EOF
	}
	if err != nil {
		return nil, false, err
	}

	if opts.sink != nil && hdr.Tag != 0 {
		if _, werr := opts.sink.Write(hdr.Raw); werr != nil {
			return nil, false, pgperr.Wrap(pgperr.WriteError, "writing header to sink", werr)
		}
		armSource(d.Src, hdr)
		n := -1
		if hdr.Length.Kind == LengthDefinite {
			n = hdr.Length.N
		}
		if _, cerr := d.Src.CopyTo(opts.sink, n); cerr != nil {
			return nil, false, pgperr.Wrap(pgperr.WriteError, "copying body to sink", cerr)
		}
		return nil, false, nil
	}

	if opts.hardSkip || hdr.Tag == 0 || !isKnownTag(hdr.Tag) || (opts.requiredType != 0 && int(hdr.Tag) != opts.requiredType) {
		armSource(d.Src, hdr)
		if err := skipPacket(d.Src, hdr.Tag); err != nil {
			return nil, false, pgperr.Wrap(pgperr.ReadError, "draining skipped packet", err)
		}
		return nil, true, nil
	}

	armSource(d.Src, hdr)
	pkt, decodeErr := decodePayload(d.Src, hdr)
	if drainErr := drainRemaining(d.Src, needsDrain(pkt)); drainErr != nil && decodeErr == nil {
		decodeErr = pgperr.Wrap(pgperr.ReadError, "draining packet tail", drainErr)
	}
	if decodeErr != nil {
		return pkt, false, decodeErr
	}
	return pkt, false, nil
}

// needsDrain reports whether the dispatcher must drain the remainder of the
// body after a decoder returns. Streaming variants retain the ByteSource
// themselves, so no drain runs for them (§3 Lifecycles, §4.9).
func needsDrain(pkt *Packet) bool {
	if pkt == nil {
		return true
	}
	return pkt.Plaintext == nil && pkt.Compressed == nil && pkt.Encrypted == nil
}

// ParseOne decodes the next packet, transparently skipping packets the
// caller didn't ask for via hard_skip/zero-type/required-type filtering, and
// transparently skipping tags it has no decoder for (Marker, reserved, and
// experimental codes) until one is actually produced (or the stream ends).
func (d *Dispatcher) ParseOne() (*Packet, error) {
	for {
		pkt, skip, err := d.dispatchOne(options{})
		if err != nil {
			return pkt, err
		}
		if skip {
			continue
		}
		return pkt, nil
	}
}

// SearchFor loops parse_one-style until a packet of the requested type is
// produced or the stream ends (§4.2).
func (d *Dispatcher) SearchFor(requiredType int) (*Packet, error) {
	for {
		pkt, skip, err := d.dispatchOne(options{requiredType: requiredType})
		if err != nil {
			return pkt, err
		}
		if skip {
			continue
		}
		return pkt, nil
	}
}

// CopyAll verbatim-copies every packet in the stream to dst until EOF.
func (d *Dispatcher) CopyAll(dst Sink) error {
	for {
		_, _, err := d.dispatchOne(options{sink: dst})
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// CopySome verbatim-copies packets to dst, stopping before reading any
// packet once the source offset reaches stopOffset.
func (d *Dispatcher) CopySome(dst Sink, stopOffset uint64) error {
	for {
		if d.Src.Tell() >= stopOffset {
			return nil
		}
		_, _, err := d.dispatchOne(options{sink: dst})
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// SkipN hard-skips the next n packets.
func (d *Dispatcher) SkipN(n int) error {
	for i := 0; i < n; i++ {
		_, _, err := d.dispatchOne(options{hardSkip: true})
		if err == io.EOF {
			return io.EOF
		}
		if err != nil {
			return err
		}
	}
	return nil
}
