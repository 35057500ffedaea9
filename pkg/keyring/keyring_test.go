package keyring

import (
	"testing"
	"time"

	"example.com/pgpcore/pkg/pgp"
)

func rsaCert(n []byte, version byte) *pgp.Cert {
	return &pgp.Cert{
		Public: pgp.PublicKeyFields{
			Version: version,
			Created: 1000,
			Algo:    pgp.PubkeyAlgoRSA,
			RSAN:    pgp.MPI{Bytes: n, BitLen: uint16(len(n) * 8)},
			RSAE:    pgp.MPI{Bytes: []byte{0x01, 0x00, 0x01}},
		},
	}
}

func TestKeyIDLegacyIsModulusTail(t *testing.T) {
	n := make([]byte, 16)
	for i := range n {
		n[i] = byte(i + 1)
	}
	cert := rsaCert(n, 3)
	id, err := keyID(cert.Public)
	if err != nil {
		t.Fatalf("keyID: %v", err)
	}
	want := "090A0B0C0D0E0F10"
	if id != want {
		t.Errorf("keyID = %s, want %s", id, want)
	}
}

func TestKeyIDLegacyTooShort(t *testing.T) {
	cert := rsaCert([]byte{0x01, 0x02}, 3)
	if _, err := keyID(cert.Public); err == nil {
		t.Fatal("expected an error for a too-short legacy modulus")
	}
}

func TestKeyIDV4Deterministic(t *testing.T) {
	n := make([]byte, 32)
	for i := range n {
		n[i] = byte(i)
	}
	cert := rsaCert(n, 4)
	id1, err := keyID(cert.Public)
	if err != nil {
		t.Fatalf("keyID: %v", err)
	}
	id2, err := keyID(cert.Public)
	if err != nil {
		t.Fatalf("keyID: %v", err)
	}
	if id1 != id2 {
		t.Errorf("keyID not deterministic: %s != %s", id1, id2)
	}
	if len(id1) != 16 {
		t.Errorf("keyID length = %d, want 16 hex chars", len(id1))
	}
}

func TestKeyIDV4UnknownAlgo(t *testing.T) {
	cert := &pgp.Cert{Public: pgp.PublicKeyFields{Version: 4, Algo: 99}}
	if _, err := keyID(cert.Public); err == nil {
		t.Fatal("expected an error for an unknown v4 pubkey algorithm")
	}
}

func TestFormatKeyIDMatchesKeyIDShape(t *testing.T) {
	got := formatKeyID(0x11223344, 0x55667788)
	want := "1122334455667788"
	if got != want {
		t.Errorf("formatKeyID = %s, want %s", got, want)
	}
}

func TestObserveAddsAndUpdatesPreservingRevoked(t *testing.T) {
	s := &Store{}
	n := make([]byte, 16)
	for i := range n {
		n[i] = byte(i + 1)
	}
	cert := rsaCert(n, 3)

	id, err := Observe(s, cert)
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if len(s.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(s.Entries))
	}
	s.Entries[0].Revoked = true

	cert.Public.Created = 2000
	id2, err := Observe(s, cert)
	if err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if id != id2 {
		t.Fatalf("key id changed across Observe calls for the same cert: %s != %s", id, id2)
	}
	if len(s.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1 (update, not append)", len(s.Entries))
	}
	if !s.Entries[0].Revoked {
		t.Error("expected Revoked to be preserved across an Observe update")
	}
	if !s.Entries[0].Created.Equal(time.Unix(2000, 0).UTC()) {
		t.Errorf("Created = %v, want updated timestamp", s.Entries[0].Created)
	}
}

func TestObserveSignatureMarksRevoked(t *testing.T) {
	s := &Store{Entries: []Entry{{KeyID: formatKeyID(0x11223344, 0x55667788)}}}
	sig := &pgp.Signature{SigClass: 0x20, KeyIDHi: 0x11223344, KeyIDLo: 0x55667788}
	ObserveSignature(s, sig)
	if !s.Entries[0].Revoked {
		t.Error("expected key revocation signature to mark the entry revoked")
	}
}

func TestObserveSignatureIgnoresNonRevocationClass(t *testing.T) {
	s := &Store{Entries: []Entry{{KeyID: formatKeyID(0x11223344, 0x55667788)}}}
	sig := &pgp.Signature{SigClass: 0x00, KeyIDHi: 0x11223344, KeyIDLo: 0x55667788}
	ObserveSignature(s, sig)
	if s.Entries[0].Revoked {
		t.Error("expected a non-revocation signature class to leave Revoked false")
	}
}
