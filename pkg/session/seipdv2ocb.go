package session

import (
	"bytes"
	"crypto/aes"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"io"

	"example.com/pgpcore/pkg/pgp"
	pmocb "github.com/ProtonMail/go-crypto/ocb"
)

const (
	AEAD_EAX = 1
	AEAD_OCB = 2
	AEAD_GCM = 3
)

const (
	SYM_AES128 = 7
	SYM_AES192 = 8
	SYM_AES256 = 9
)

// decryptSEIPDv2OCB decrypts a SEIPDv2 (tag 18, version 2) Encrypted
// packet. pkg/pgp's decodeEncrypted has already read the version/cipher/
// AEAD/chunk-size bytes and the salt off the wire (Encrypted.Version,
// .CipherAlgo, .AEADAlgo, .ChunkSize, .Salt) and left Body positioned
// right at the ciphertext — this only has to drain that remainder and
// run the AEAD, the adaptation pattern pkg/compress.Decompress uses for
// Compressed.Body (single-chunk variant only).
func decryptSEIPDv2OCB(enc *pgp.Encrypted, sessionKey []byte) ([]byte, error) {
	if enc.Version != 2 {
		return nil, errors.New("session: expected seipd version 2")
	}
	if len(enc.Salt) != 32 {
		return nil, errors.New("session: seipdv2 packet missing salt")
	}
	rest, err := io.ReadAll(enc.Body)
	if err != nil {
		return nil, err
	}
	if len(rest) < 16 {
		return nil, errors.New("session: no ciphertext")
	}
	ct := rest[:len(rest)-16]
	finalTag := rest[len(rest)-16:]

	mk, iv7, err := kdfSEIPDv2HKDF(sessionKey, enc.Salt, enc.Version, enc.CipherAlgo, enc.AEADAlgo, enc.ChunkSize)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(mk)
	if err != nil {
		return nil, err
	}
	aeadOCB, err := pmocb.NewOCB(block)
	if err != nil {
		return nil, err
	}
	aad := []byte{0xD2, enc.Version, enc.CipherAlgo, enc.AEADAlgo, enc.ChunkSize}

	nonce := make([]byte, 15)
	copy(nonce[:7], iv7)
	copy(nonce[7:], u64be(0))

	pt, err := aeadOCB.Open(nil, nonce, ct, aad)
	if err != nil {
		return nil, err
	}

	finalAAD := append(append([]byte{}, aad...), u64be(uint64(len(pt)))...)
	copy(nonce[:7], iv7)
	copy(nonce[7:], u64be(1))
	tag := aeadOCB.Seal(nil, nonce, nil, finalAAD)
	if !bytes.Equal(tag, finalTag) {
		return nil, errors.New("session: final tag mismatch")
	}
	return pt, nil
}

// kdfSEIPDv2HKDF implements the RFC 9580 HKDF (HMAC-SHA256): info = 0xD2 ||
// version || sym || aead || chunkSize. Returns (keyM, iv7).
func kdfSEIPDv2HKDF(ikm, salt []byte, version, sym, aead, chunkSize byte) (key []byte, iv []byte, err error) {
	info := []byte{0xD2, version, sym, aead, chunkSize}
	if len(salt) != 32 {
		tmp := make([]byte, 32)
		copy(tmp, salt)
		salt = tmp
	}
	h := hmac.New(sha256.New, salt)
	h.Write(ikm)
	prk := h.Sum(nil)

	h = hmac.New(sha256.New, prk)
	h.Write(append(info, 0x01))
	t1 := h.Sum(nil)
	h = hmac.New(sha256.New, prk)
	h.Write(append(append(t1, info...), 0x02))
	t2 := h.Sum(nil)
	okm := append(t1, t2...)
	return okm[:32], okm[32:39], nil
}

func u64be(x uint64) []byte {
	return []byte{byte(x >> 56), byte(x >> 48), byte(x >> 40), byte(x >> 32), byte(x >> 24), byte(x >> 16), byte(x >> 8), byte(x)}
}
