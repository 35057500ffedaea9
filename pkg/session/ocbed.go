package session

import (
	"crypto/aes"
	"errors"
	"io"

	"example.com/pgpcore/pkg/pgp"
	pmocb "github.com/ProtonMail/go-crypto/ocb"
)

// decryptOCBED decrypts a LibrePGP OCBED (tag 20) Encrypted packet using
// the given content-encryption key. pkg/pgp's decodeEncrypted has already
// read the version/cipher/mode/chunk-size bytes and the 15-byte IV off the
// wire and left Body positioned at the ciphertext.
func decryptOCBED(enc *pgp.Encrypted, cek []byte) ([]byte, error) {
	if len(enc.IV) != 15 {
		return nil, errors.New("session: ocbed packet missing iv")
	}
	rest, err := io.ReadAll(enc.Body)
	if err != nil {
		return nil, err
	}
	if len(rest) < 16 {
		return nil, errors.New("session: no ciphertext")
	}
	ct := rest[:len(rest)-16]

	block, err := aes.NewCipher(cek)
	if err != nil {
		return nil, err
	}
	aeadOCB, err := pmocb.NewOCB(block)
	if err != nil {
		return nil, err
	}
	aad := []byte{0xD4, enc.Version, enc.CipherAlgo, enc.Mode, enc.ChunkSize, 0, 0, 0, 0, 0, 0, 0, 0}
	nonce := make([]byte, 15)
	copy(nonce, enc.IV)

	pt, err := aeadOCB.Open(nil, nonce, ct, aad)
	if err != nil {
		return nil, err
	}
	return pt, nil
}
