package session

import (
	"bytes"
	"crypto/aes"
	"crypto/rand"
	"io"
	"testing"

	pmocb "github.com/ProtonMail/go-crypto/ocb"
)

// buildSEIPDv2OCBBody constructs a SEIPDv2 (tag 18, version 2) body:
// version/cipher/aead/chunk bytes, a random salt, then a single-chunk OCB
// ciphertext and final tag, matching the layout decryptSEIPDv2OCB expects.
func buildSEIPDv2OCBBody(symAlg, chunkBits int, sessionKey, plaintext []byte) ([]byte, error) {
	version := byte(2)
	aeadAlg := byte(AEAD_OCB)
	chunkSize := byte(chunkBits & 0xFF)

	salt := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	mk, iv7, err := kdfSEIPDv2HKDF(sessionKey, salt, version, byte(symAlg), aeadAlg, chunkSize)
	if err != nil {
		return nil, err
	}
	aad := []byte{0xD2, version, byte(symAlg), aeadAlg, chunkSize}

	block, err := aes.NewCipher(mk)
	if err != nil {
		return nil, err
	}
	aead, err := pmocb.NewOCB(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, 15)
	copy(nonce[:7], iv7)
	copy(nonce[7:], u64be(0))
	ct := aead.Seal(nil, nonce, plaintext, aad)

	finalAAD := append(append([]byte{}, aad...), u64be(uint64(len(plaintext)))...)
	copy(nonce[:7], iv7)
	copy(nonce[7:], u64be(1))
	finalTag := aead.Seal(nil, nonce, nil, finalAAD)

	body := make([]byte, 0, 4+32+len(ct)+len(finalTag))
	body = append(body, version, byte(symAlg), aeadAlg, chunkSize)
	body = append(body, salt...)
	body = append(body, ct...)
	body = append(body, finalTag...)
	return body, nil
}

func TestDecryptSEIPDv2OCBRoundTrip(t *testing.T) {
	cek := make([]byte, 32)
	if _, err := rand.Read(cek); err != nil {
		t.Fatalf("rand: %v", err)
	}
	plaintext := []byte("test plaintext")
	body, err := buildSEIPDv2OCBBody(SYM_AES256, 22, cek, plaintext)
	if err != nil {
		t.Fatalf("buildSEIPDv2OCBBody: %v", err)
	}

	pkt := parseOnePacket(t, newFormatPacket(18, body))
	enc := pkt.Encrypted
	if enc == nil {
		t.Fatalf("expected a decoded encrypted packet")
	}
	if enc.Version != 2 || enc.CipherAlgo != byte(SYM_AES256) || enc.AEADAlgo != AEAD_OCB {
		t.Fatalf("unexpected framing fields: %+v", enc)
	}
	if len(enc.Salt) != 32 || bytes.Equal(enc.Salt, make([]byte, 32)) {
		t.Fatalf("expected a non-zero 32-byte salt")
	}

	got, err := decryptSEIPDv2OCB(enc, cek)
	if err != nil {
		t.Fatalf("decryptSEIPDv2OCB: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("plaintext mismatch: got %q want %q", got, plaintext)
	}
}

func TestDecryptSEIPDv2OCBRejectsWrongKey(t *testing.T) {
	cek := make([]byte, 32)
	if _, err := rand.Read(cek); err != nil {
		t.Fatalf("rand: %v", err)
	}
	body, err := buildSEIPDv2OCBBody(SYM_AES256, 22, cek, []byte("secret"))
	if err != nil {
		t.Fatalf("buildSEIPDv2OCBBody: %v", err)
	}
	pkt := parseOnePacket(t, newFormatPacket(18, body))

	wrongKey := make([]byte, 32)
	if _, err := decryptSEIPDv2OCB(pkt.Encrypted, wrongKey); err == nil {
		t.Fatal("expected an error decrypting with the wrong key")
	}
}

func TestDecryptSEIPDv2OCBRejectsVersion1(t *testing.T) {
	pkt := parseOnePacket(t, newFormatPacket(18, []byte{1}))
	if _, err := decryptSEIPDv2OCB(pkt.Encrypted, make([]byte, 32)); err == nil {
		t.Fatal("expected an error for seipd version 1")
	}
}
