package pgp

import (
	"bytes"
	"math/bits"
	"testing"
)

// mpiBytes encodes a raw magnitude as a wire MPI (2-byte bit count + bytes).
func mpiBytes(mag ...byte) []byte {
	bitLen := 0
	if len(mag) > 0 {
		bitLen = (len(mag)-1)*8 + bits.Len8(mag[0])
	}
	return append([]byte{byte(bitLen >> 8), byte(bitLen)}, mag...)
}

func newFormatPacket(tag byte, body []byte) []byte {
	return buildNewFormat(tag, body)
}

func parseOnePacket(t *testing.T, raw []byte) *Packet {
	t.Helper()
	d := NewDispatcher(NewByteSource(bytes.NewReader(raw)))
	pkt, err := d.ParseOne()
	if err != nil {
		t.Fatalf("ParseOne: %v", err)
	}
	if pkt == nil {
		t.Fatal("ParseOne: nil packet")
	}
	return pkt
}

func TestDecodeCertPublicRSA(t *testing.T) {
	var body []byte
	body = append(body, 4)                   // version 4
	body = append(body, 0, 0, 0, 42)          // created
	body = append(body, PubkeyAlgoRSA)        // algo
	body = append(body, mpiBytes(0x01, 0x00)...) // n
	body = append(body, mpiBytes(0x03)...)       // e

	pkt := parseOnePacket(t, newFormatPacket(TagPublicCert, body))
	if pkt.Cert == nil {
		t.Fatal("expected a Cert packet")
	}
	c := pkt.Cert
	if c.IsSecret || c.IsSubkey {
		t.Errorf("IsSecret=%v IsSubkey=%v, want false,false", c.IsSecret, c.IsSubkey)
	}
	if c.Public.Version != 4 || c.Public.Algo != PubkeyAlgoRSA {
		t.Errorf("unexpected public fields: %+v", c.Public)
	}
	if c.Public.RSAE.Bytes[0] != 0x03 {
		t.Errorf("rsa e = %v", c.Public.RSAE.Bytes)
	}
}

func TestDecodeCertSecretRSALegacyProtection(t *testing.T) {
	var body []byte
	body = append(body, 4)
	body = append(body, 0, 0, 0, 99)
	body = append(body, PubkeyAlgoRSA)
	body = append(body, mpiBytes(0x01, 0x00)...) // n
	body = append(body, mpiBytes(0x03)...)       // e
	body = append(body, CipherAlgoBlowfish160)   // protect algo (legacy, not 255)
	body = append(body, make([]byte, 8)...)      // IV
	body = append(body, mpiBytes(0x05)...)       // d
	body = append(body, mpiBytes(0x02)...)       // p
	body = append(body, mpiBytes(0x02)...)       // q
	body = append(body, mpiBytes(0x01)...)       // u
	body = append(body, 0x00, 0x00)              // checksum

	pkt := parseOnePacket(t, newFormatPacket(TagSecretCert, body))
	c := pkt.Cert
	if c == nil || !c.IsSecret {
		t.Fatalf("expected a secret Cert, got %+v", pkt)
	}
	if !c.IsProtected {
		t.Fatal("expected IsProtected = true")
	}
	if c.Protect.CipherAlgo != CipherAlgoBlowfish160 {
		t.Errorf("cipher algo = %d, want %d", c.Protect.CipherAlgo, CipherAlgoBlowfish160)
	}
	// RSA only stores the IV when cipher == Blowfish-160 (§9 preserved quirk).
	if !c.Protect.HasIV {
		t.Error("expected HasIV = true for Blowfish-160 cipher")
	}
}

func TestDecodeCertSecretRSANonBlowfishHasNoIV(t *testing.T) {
	var body []byte
	body = append(body, 4)
	body = append(body, 0, 0, 0, 99)
	body = append(body, PubkeyAlgoRSA)
	body = append(body, mpiBytes(0x01, 0x00)...)
	body = append(body, mpiBytes(0x03)...)
	body = append(body, 7) // AES-128 legacy cipher byte, not Blowfish-160
	body = append(body, make([]byte, 8)...)
	body = append(body, mpiBytes(0x05)...)
	body = append(body, mpiBytes(0x02)...)
	body = append(body, mpiBytes(0x02)...)
	body = append(body, mpiBytes(0x01)...)
	body = append(body, 0x00, 0x00)

	pkt := parseOnePacket(t, newFormatPacket(TagSecretCert, body))
	c := pkt.Cert
	if c.Protect.HasIV {
		t.Error("expected HasIV = false when cipher != Blowfish-160 (§9 asymmetry preserved)")
	}
}

func TestDecodeCertSecretElGamalExtendedS2K(t *testing.T) {
	var body []byte
	body = append(body, 4)
	body = append(body, 0, 0, 0, 7)
	body = append(body, PubkeyAlgoElGamal)
	body = append(body, mpiBytes(0x01, 0x00)...) // p
	body = append(body, mpiBytes(0x02)...)       // g
	body = append(body, mpiBytes(0x03)...)       // y
	body = append(body, 255)                     // extended protect form
	body = append(body, 7)                       // real cipher algo
	body = append(body, S2KIteratedSalt)
	body = append(body, DigestAlgoMD5)
	body = append(body, make([]byte, 8)...) // salt
	body = append(body, 0, 0, 0, 96)        // count
	body = append(body, make([]byte, 8)...) // IV
	body = append(body, mpiBytes(0x04)...)  // x
	body = append(body, 0x00, 0x00)         // checksum

	pkt := parseOnePacket(t, newFormatPacket(TagSecretCert, body))
	c := pkt.Cert
	if c == nil || !c.IsSecret {
		t.Fatalf("expected a secret Cert, got %+v", pkt)
	}
	if !c.IsProtected || c.Protect.CipherAlgo != 7 {
		t.Errorf("unexpected protection: %+v", c.Protect)
	}
	if c.Protect.S2K.Mode != S2KIteratedSalt || !c.Protect.S2K.HasSalt || !c.Protect.S2K.HasCount {
		t.Errorf("unexpected s2k: %+v", c.Protect.S2K)
	}
	if c.Protect.S2K.Count != 96 {
		t.Errorf("count = %d, want 96", c.Protect.S2K.Count)
	}
	// ElGamal always stores the IV regardless of cipher (§9 preserved quirk).
	if !c.Protect.HasIV {
		t.Error("expected HasIV = true for ElGamal")
	}
}

func TestDecodeCertSecretDSAUnprotected(t *testing.T) {
	var body []byte
	body = append(body, 4)
	body = append(body, 0, 0, 0, 1)
	body = append(body, PubkeyAlgoDSA)
	body = append(body, mpiBytes(0x01, 0x00)...) // p
	body = append(body, mpiBytes(0x02)...)       // q
	body = append(body, mpiBytes(0x02)...)       // g
	body = append(body, mpiBytes(0x03)...)       // y
	body = append(body, 0)                       // protect algo 0: unprotected
	body = append(body, mpiBytes(0x04)...)       // x
	body = append(body, 0x00, 0x00)              // checksum

	pkt := parseOnePacket(t, newFormatPacket(TagSecretCert, body))
	c := pkt.Cert
	if c == nil || !c.IsSecret {
		t.Fatalf("expected a secret Cert, got %+v", pkt)
	}
	if c.IsProtected {
		t.Error("expected IsProtected = false for protect algo 0")
	}
	if c.DSAX.Bytes[0] != 0x04 {
		t.Errorf("dsa x = %v", c.DSAX.Bytes)
	}
}

func TestDecodeCertRFC1991CommentQuirk(t *testing.T) {
	body := append([]byte{'#'}, []byte("a legacy comment")...)
	pkt := parseOnePacket(t, newFormatPacket(TagPublicSubkeyCert, body))
	if pkt.Cert != nil {
		t.Errorf("expected no Cert for an RFC-1991 comment quirk packet, got %+v", pkt.Cert)
	}
}

func TestDecodeCertUnknownVersionIsError(t *testing.T) {
	var body []byte
	body = append(body, 9) // unknown version
	body = append(body, 0, 0, 0, 1)
	body = append(body, PubkeyAlgoRSA)

	d := NewDispatcher(NewByteSource(bytes.NewReader(newFormatPacket(TagPublicCert, body))))
	if _, err := d.ParseOne(); err == nil {
		t.Fatal("expected an error for an unknown cert version")
	}
}

func TestDecodeCertUnknownAlgoLeavesPayloadEmpty(t *testing.T) {
	var body []byte
	body = append(body, 4)
	body = append(body, 0, 0, 0, 1)
	body = append(body, 99) // unknown pubkey algo

	pkt := parseOnePacket(t, newFormatPacket(TagPublicCert, body))
	c := pkt.Cert
	if c == nil {
		t.Fatal("expected a Cert packet even for an unknown algorithm")
	}
	if c.Public.RSAN.Bytes != nil || c.Public.ElGamalP.Bytes != nil || c.Public.DSAP.Bytes != nil {
		t.Error("expected no algorithm-specific fields populated for an unknown algo")
	}
}
