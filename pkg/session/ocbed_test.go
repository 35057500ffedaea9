package session

import (
	"bytes"
	"crypto/aes"
	"crypto/rand"
	"io"
	"testing"

	pmocb "github.com/ProtonMail/go-crypto/ocb"
)

// buildOCBEDBody constructs an OCBED (tag 20) body: version/cipher/mode/
// chunk bytes, a random 15-byte IV, then a single-chunk OCB ciphertext and
// final tag, matching the layout decryptOCBED expects.
func buildOCBEDBody(symAlg, chunkBits int, cek, plaintext []byte) ([]byte, error) {
	version := byte(1)
	mode := byte(0x02) // OCB
	chunkSize := byte(chunkBits & 0xFF)
	iv := make([]byte, 15)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}

	aad := []byte{0xD4, version, byte(symAlg), mode, chunkSize, 0, 0, 0, 0, 0, 0, 0, 0}

	block, err := aes.NewCipher(cek)
	if err != nil {
		return nil, err
	}
	aead, err := pmocb.NewOCB(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, 15)
	copy(nonce, iv)

	ct := aead.Seal(nil, nonce, plaintext, aad)
	finalAAD := append(aad, u64be(uint64(len(plaintext)))...)
	finalTag := aead.Seal(nil, nonce, nil, finalAAD)

	body := make([]byte, 0, 4+15+len(ct)+len(finalTag))
	body = append(body, version, byte(symAlg), mode, chunkSize)
	body = append(body, iv...)
	body = append(body, ct...)
	body = append(body, finalTag...)
	return body, nil
}

func TestDecryptOCBEDRoundTrip(t *testing.T) {
	cek := make([]byte, 32)
	if _, err := rand.Read(cek); err != nil {
		t.Fatalf("rand: %v", err)
	}
	plaintext := []byte("ocbed plaintext")
	body, err := buildOCBEDBody(SYM_AES256, 22, cek, plaintext)
	if err != nil {
		t.Fatalf("buildOCBEDBody: %v", err)
	}

	pkt := parseOnePacket(t, newFormatPacket(20, body))
	enc := pkt.Encrypted
	if enc == nil {
		t.Fatalf("expected a decoded encrypted packet")
	}
	if len(enc.IV) != 15 {
		t.Fatalf("expected a 15-byte iv, got %d bytes", len(enc.IV))
	}

	got, err := decryptOCBED(enc, cek)
	if err != nil {
		t.Fatalf("decryptOCBED: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("plaintext mismatch: got %q want %q", got, plaintext)
	}
}

func TestDecryptOCBEDRejectsWrongKey(t *testing.T) {
	cek := make([]byte, 32)
	if _, err := rand.Read(cek); err != nil {
		t.Fatalf("rand: %v", err)
	}
	body, err := buildOCBEDBody(SYM_AES256, 22, cek, []byte("secret"))
	if err != nil {
		t.Fatalf("buildOCBEDBody: %v", err)
	}
	pkt := parseOnePacket(t, newFormatPacket(20, body))

	wrongKey := make([]byte, 32)
	if _, err := decryptOCBED(pkt.Encrypted, wrongKey); err == nil {
		t.Fatal("expected an error decrypting with the wrong key")
	}
}
