package pgp

// Packet type codes, matching the classic OpenPGP/RFC-1991 tag numbering
// parse-packet.c dispatches on. Tag 0 ("deleted") and unrecognized/reserved
// codes never produce a Packet (§3 invariant 4-5).
const (
	TagPubkeyEnc        = 1
	TagSignature         = 2
	TagSymkeyEnc         = 3
	TagOnepassSig        = 4
	TagSecretCert        = 5
	TagPublicCert        = 6
	TagSecretSubkeyCert  = 7
	TagCompressed        = 8
	TagEncrypted         = 9
	TagMarker            = 10
	TagPlaintext         = 11
	TagRingTrust         = 12
	TagUserId            = 13
	TagPublicSubkeyCert  = 14
	TagOldComment        = 16
	TagComment           = 61

	// TagSEIPD and TagAEADEncrypted are the RFC 9580 / LibrePGP successors
	// to tag 9: still opaque ciphertext containers as far as this parser is
	// concerned, but framed with a few extra cleartext parameter bytes
	// ahead of the ciphertext (§1, §4.9 — the cryptographic algorithms
	// themselves stay out of scope; the wire framing around them doesn't).
	TagSEIPD         = 18
	TagAEADEncrypted = 20
)
