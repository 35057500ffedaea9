package compress

import (
	"bytes"
	"io"
	"testing"

	"example.com/pgpcore/pkg/pgp"
)

func roundTrip(t *testing.T, algo byte) {
	t.Helper()
	want := []byte("a compressible payload, repeated a compressible payload")

	var buf bytes.Buffer
	w, err := NewWriter(algo, &buf)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := w.Write(want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	pkt := &pgp.Compressed{Algo: algo, Body: pgp.NewByteSource(bytes.NewReader(buf.Bytes()))}
	pkt.Body.SetFixedMode(buf.Len())

	got, err := Decompress(pkt)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("round trip mismatch: got %q, want %q", got, want)
	}
}

func TestRoundTripUncompressed(t *testing.T) { roundTrip(t, pgp.CompressAlgoUncompressed) }
func TestRoundTripZIP(t *testing.T)          { roundTrip(t, pgp.CompressAlgoZIP) }
func TestRoundTripZLIB(t *testing.T)         { roundTrip(t, pgp.CompressAlgoZLIB) }
func TestRoundTripBZIP2(t *testing.T)        { roundTrip(t, pgp.CompressAlgoBZIP2) }

func TestNewReaderUnknownAlgo(t *testing.T) {
	if _, err := NewReader(99, bytes.NewReader(nil)); err == nil {
		t.Fatal("expected an error for an unknown compression algorithm")
	}
}

func TestNewWriterUnknownAlgo(t *testing.T) {
	if _, err := NewWriter(99, io.Discard); err == nil {
		t.Fatal("expected an error for an unknown compression algorithm")
	}
}
