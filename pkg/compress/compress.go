// Package compress decompresses a parsed Compressed packet's body (§4.9).
// The packet decoder itself never inflates anything — it only records the
// algorithm byte and hands off the still-compressed ByteSource — so a
// caller that wants the plaintext underneath opts in here explicitly,
// streaming straight off the packet's io.Reader rather than buffering the
// whole body first.
package compress

import (
	"compress/flate"
	"compress/zlib"
	"fmt"
	"io"

	"example.com/pgpcore/pkg/pgp"

	dbz2 "github.com/dsnet/compress/bzip2"
)

// NewReader wraps r, decompressing according to algo (one of the
// pgp.CompressAlgo* ids read from a Compressed packet's header byte).
func NewReader(algo byte, r io.Reader) (io.ReadCloser, error) {
	switch algo {
	case pgp.CompressAlgoUncompressed:
		return io.NopCloser(r), nil
	case pgp.CompressAlgoZIP:
		return flate.NewReader(r), nil
	case pgp.CompressAlgoZLIB:
		return zlib.NewReader(r)
	case pgp.CompressAlgoBZIP2:
		return dbz2.NewReader(r, &dbz2.ReaderConfig{})
	default:
		return nil, fmt.Errorf("compress: unknown algorithm %d", algo)
	}
}

// Decompress fully drains a Compressed packet's body into memory, per its
// Algo field.
func Decompress(pkt *pgp.Compressed) ([]byte, error) {
	r, err := NewReader(pkt.Algo, pkt.Body)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// NewWriter wraps w, compressing according to algo — the inverse
// direction, useful for an encoder that wants to emit a Compressed packet
// of its own rather than only read one.
func NewWriter(algo byte, w io.Writer) (io.WriteCloser, error) {
	switch algo {
	case pgp.CompressAlgoUncompressed:
		return nopWriteCloser{w}, nil
	case pgp.CompressAlgoZIP:
		return flate.NewWriter(w, flate.BestCompression)
	case pgp.CompressAlgoZLIB:
		return zlib.NewWriterLevel(w, zlib.BestCompression)
	case pgp.CompressAlgoBZIP2:
		return dbz2.NewWriter(w, &dbz2.WriterConfig{Level: dbz2.BestCompression})
	default:
		return nil, fmt.Errorf("compress: unknown algorithm %d", algo)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
