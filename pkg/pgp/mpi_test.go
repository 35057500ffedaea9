package pgp

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestReadMPI(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		wantLen uint16
		wantHex string
		wantN   int
	}{
		{"zero-length magnitude", []byte{0x00, 0x00}, 0, "", 2},
		{"single byte, bitlen 1", []byte{0x00, 0x01, 0x01}, 1, "01", 3},
		{"two bytes, bitlen 9", []byte{0x00, 0x09, 0x01, 0x00}, 9, "0100", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewByteSource(bytes.NewReader(tt.in))
			src.SetFixedMode(len(tt.in))
			m, n, err := ReadMPI(src)
			if err != nil {
				t.Fatalf("ReadMPI: %v", err)
			}
			if n != tt.wantN {
				t.Errorf("consumed = %d, want %d", n, tt.wantN)
			}
			if m.BitLen != tt.wantLen {
				t.Errorf("BitLen = %d, want %d", m.BitLen, tt.wantLen)
			}
			if got := hex.EncodeToString(m.Bytes); got != tt.wantHex {
				t.Errorf("bytes = %s, want %s", got, tt.wantHex)
			}
			if m.EncodedLen() != tt.wantN {
				t.Errorf("EncodedLen() = %d, want %d", m.EncodedLen(), tt.wantN)
			}
		})
	}
}

func TestReadMPITruncated(t *testing.T) {
	src := NewByteSource(bytes.NewReader([]byte{0x00, 0x09, 0x01}))
	src.SetFixedMode(3)
	if _, _, err := ReadMPI(src); err == nil {
		t.Fatal("expected an error on truncated magnitude")
	}
}
