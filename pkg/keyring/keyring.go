// Package keyring indexes the certificates a parse pass observes: key id,
// creation time, and subkey/secret flags, plus revocation state learned
// from later key/subkey revocation signatures in the same stream. It holds
// no trust-database semantics of its own (the RingTrust packet itself
// carries none worth keeping — §4.9 decodes and discards it) — revocation
// comes from parsed Signature packets, the only place a real revocation
// claim can come from.
package keyring

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"example.com/pgpcore/pkg/pgp"
	"example.com/pgpcore/pkg/util/perm"
)

// Key revocation signature classes (RFC 4880 §5.2.1).
const (
	sigClassKeyRevocation    = 0x20
	sigClassSubkeyRevocation = 0x28
)

type Entry struct {
	KeyID    string    `json:"key_id"`
	IsSubkey bool      `json:"is_subkey"`
	IsSecret bool      `json:"is_secret"`
	Algo     byte      `json:"algo"`
	Created  time.Time `json:"created"`
	Revoked  bool      `json:"revoked"`
}

type Store struct {
	Entries []Entry `json:"entries"`
}

func Load(path string) (*Store, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Store{}, nil
	}
	if err != nil {
		return nil, err
	}
	var s Store
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the store, first checking path's existing permissions (if
// any) are still owner-only, the way the teacher's Rotate path guarded the
// private key file it pointed at.
func Save(path string, s *Store) error {
	if _, err := os.Stat(path); err == nil {
		if err := perm.Check0600(path); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0600)
}

func (s *Store) find(keyID string) int {
	for i := range s.Entries {
		if s.Entries[i].KeyID == keyID {
			return i
		}
	}
	return -1
}

// Observe records or updates the entry for a decoded Cert packet.
func Observe(s *Store, cert *pgp.Cert) (string, error) {
	if cert == nil {
		return "", errors.New("keyring: nil cert")
	}
	id, err := keyID(cert.Public)
	if err != nil {
		return "", err
	}
	e := Entry{
		KeyID:    id,
		IsSubkey: cert.IsSubkey,
		IsSecret: cert.IsSecret,
		Algo:     cert.Public.Algo,
		Created:  time.Unix(int64(cert.Public.Created), 0).UTC(),
	}
	if i := s.find(id); i >= 0 {
		prev := s.Entries[i].Revoked
		s.Entries[i] = e
		s.Entries[i].Revoked = prev
		return id, nil
	}
	s.Entries = append(s.Entries, e)
	return id, nil
}

// ObserveSignature marks the signing key's entry revoked when sig is a key
// or subkey revocation. Non-revocation signatures are ignored — validating
// that a signature actually applies to a particular key is out of scope
// (spec.md's cross-packet-relationship non-goal), so this only trusts the
// issuer key id already on the signature itself.
func ObserveSignature(s *Store, sig *pgp.Signature) {
	if sig == nil {
		return
	}
	if sig.SigClass != sigClassKeyRevocation && sig.SigClass != sigClassSubkeyRevocation {
		return
	}
	id := formatKeyID(sig.KeyIDHi, sig.KeyIDLo)
	if i := s.find(id); i >= 0 {
		s.Entries[i].Revoked = true
	}
}
