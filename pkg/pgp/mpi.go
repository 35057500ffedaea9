package pgp

import (
	"encoding/binary"
	"math/big"

	"example.com/pgpcore/pkg/pgp/pgperr"
)

// MPI is OpenPGP's length-prefixed big-endian multi-precision integer: a
// 16-bit bit-count followed by ceil(bits/8) magnitude bytes. The bit count is
// retained (not just recomputed from len(Bytes)) so a value can be
// reserialized exactly, matching how encoding/MPI-shaped types are modeled
// across the retrieval pack (e.g. cielavenir's encoding.MPI).
type MPI struct {
	Bytes   []byte
	BitLen  uint16
}

// Big returns the decoded value as a *big.Int.
func (m MPI) Big() *big.Int {
	return new(big.Int).SetBytes(m.Bytes)
}

// EncodedLen is the number of wire bytes this MPI occupies (2-byte bit count
// plus its magnitude bytes).
func (m MPI) EncodedLen() int { return 2 + len(m.Bytes) }

// ReadMPI reads one MPI from src, consuming exactly 2+len(bytes) bytes from
// the active ByteSource budget. This is the concrete form of the spec's
// "MPICodec" external collaborator — only its stream contract (read one MPI
// bounded by whatever budget the ByteSource currently enforces, report bytes
// consumed) is specified, so no full bignum-arithmetic library is needed
// here; math/big only backs the Big() accessor.
func ReadMPI(src *ByteSource) (MPI, int, error) {
	var hdr [2]byte
	if err := src.ReadFull(hdr[:]); err != nil {
		return MPI{}, 0, pgperr.Wrap(pgperr.InvalidPacket, "mpi: short bit-length header", err)
	}
	bitLen := binary.BigEndian.Uint16(hdr[:])
	nbytes := (int(bitLen) + 7) / 8
	buf := make([]byte, nbytes)
	if err := src.ReadFull(buf); err != nil {
		return MPI{}, 0, pgperr.Wrap(pgperr.InvalidPacket, "mpi: truncated magnitude", err)
	}
	return MPI{Bytes: buf, BitLen: bitLen}, 2 + nbytes, nil
}
