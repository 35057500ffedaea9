package pgp

// S2K describes a string-to-key specifier: the method used to derive a
// symmetric key from a passphrase (§4.4, §4.8).
type S2K struct {
	Mode      byte
	HashAlgo  byte
	Salt      [8]byte
	HasSalt   bool
	Count     uint32
	HasCount  bool
}

// Protection is a secret certificate's protection envelope: the cipher and
// S2K used to encrypt its secret parameters, plus the IV when one was
// actually stored (§4.8; the IV-storage asymmetry is a preserved legacy
// quirk, not a bug in this parser).
type Protection struct {
	CipherAlgo byte
	S2K        S2K
	IV         [8]byte
	HasIV      bool
}

// PublicKeyFields is the public-parameter subtree shared by public and
// secret certificates, expressed by composition rather than inheritance
// (§9 design note).
type PublicKeyFields struct {
	Version    byte
	Created    uint32
	ValidDays  uint16 // 0 for v4
	Algo       byte
	ElGamalP   MPI
	ElGamalG   MPI
	ElGamalY   MPI
	DSAP       MPI
	DSAQ       MPI
	DSAG       MPI
	DSAY       MPI
	RSAN       MPI
	RSAE       MPI
}

// SymkeyEnc is a symmetric-key-encrypted-session-key packet (tag 3, §4.4).
type SymkeyEnc struct {
	Version    byte
	CipherAlgo byte
	S2K        S2K
	SessionKey []byte
}

// PubkeyEnc is a public-key-encrypted-session-key packet (tag 1, §4.5).
// EphemeralKey and WrappedSessionKey are only populated for Version 6: the
// v6 wire shape replaces the classic KeyID+algorithm-MPI layout with an
// algorithm id followed by two length-prefixed opaque blobs, and this
// parser stores them the same opaque way it already stores RSA/ElGamal
// ciphertext as an MPI — framing only, no decryption (§1, §9).
type PubkeyEnc struct {
	Version           byte
	KeyIDHi           uint32
	KeyIDLo           uint32
	Algo              byte
	ElGamalA          MPI
	ElGamalB          MPI
	RSAC              MPI
	EphemeralKey      []byte
	WrappedSessionKey []byte
}

// Signature is a signature packet (tag 2, §4.6). HashedData and
// UnhashedData retain their on-wire form verbatim, including the 2-byte
// length prefix, since that is the representation required for later
// verification.
type Signature struct {
	Version      byte
	SigClass     byte
	MD5Len       byte   // v2/v3 only
	Timestamp    uint32 // v2/v3 only; v4's comes from SIG_CREATED
	KeyIDHi      uint32 // v2/v3 only; v4's comes from ISSUER
	KeyIDLo      uint32
	PubkeyAlgo   byte
	DigestAlgo   byte
	HashedData   []byte // v4 only, with 2-byte length prefix
	UnhashedData []byte // v4 only, with 2-byte length prefix
	DigestStart  [2]byte
	ElGamalA     MPI
	ElGamalB     MPI
	DSAR         MPI
	DSAS         MPI
	RSAC         MPI
	Warnings     []string // soft errors: missing SIG_CREATED/ISSUER (§7)
}

// OnepassSig is a one-pass signature packet (tag 4, §4.9).
type OnepassSig struct {
	Version    byte
	SigClass   byte
	DigestAlgo byte
	PubkeyAlgo byte
	KeyIDHi    uint32
	KeyIDLo    uint32
	Last       byte
}

// Cert is a public or secret certificate, primary or subkey (tag 5/6/7/14,
// §4.8). IsSecret and IsSubkey select the four-way cross-product; the
// secret-only fields are zero when IsSecret is false.
type Cert struct {
	IsSecret   bool
	IsSubkey   bool
	Public     PublicKeyFields
	IsProtected bool
	Protect    Protection
	ElGamalX   MPI
	DSAX       MPI
	RSAD       MPI
	RSAP       MPI
	RSAQ       MPI
	RSAU       MPI
	Checksum   uint16
}

// UserId is a user id packet (tag 13, §4.9).
type UserId struct {
	Bytes []byte
}

// Comment is a comment packet — tag 61 for the v2440 form, or tag 16 for
// the legacy RFC-1991 "old comment" form (§4.9).
type Comment struct {
	Old   bool
	Bytes []byte
}

// Plaintext is a literal-data packet (tag 11, §4.9). Body is a borrowed
// handle to the ByteSource positioned at the start of the streamed
// content; the caller must consume or explicitly discard it before the
// next dispatcher call (§3 Lifecycles, §5).
type Plaintext struct {
	Mode      byte
	Name      []byte
	Timestamp uint32
	Body      *ByteSource
}

// Compressed is a compressed-data packet (tag 8, §4.9). Body is a borrowed
// ByteSource handle to the (still-compressed) stream.
type Compressed struct {
	Algo byte
	Body *ByteSource
}

// Encrypted is an encrypted-data container packet: tag 9 (the original
// MDC-wrapped form), tag 18 (SEIPD, versions 1 and 2), or tag 20 (the
// deprecated LibrePGP AEAD draft). DeclaredLength is -1 when the body
// length is unknown. Version, CipherAlgo, AEADAlgo, Mode, ChunkSize, Salt
// and IV are the cleartext parameter bytes tags 18/20 carry ahead of their
// ciphertext; they are zero/nil for tag 9, which has none. Body is a
// borrowed ByteSource handle positioned at the start of the still-
// encrypted remainder, the same streaming contract Plaintext and
// Compressed use (§4.9).
type Encrypted struct {
	Tag            byte
	DeclaredLength int
	Version        byte
	CipherAlgo     byte
	AEADAlgo       byte
	Mode           byte
	ChunkSize      byte
	Salt           []byte
	IV             []byte
	Body           *ByteSource
}

// Packet is the tagged union the dispatcher produces: shared header
// metadata plus at most one populated variant field selected by Tag. A
// RingTrust packet and the RFC-1991 comment quirk yield a Packet with no
// variant field set.
type Packet struct {
	Tag        byte
	HeaderLen  int
	Length     BodyLength

	SymkeyEnc  *SymkeyEnc
	PubkeyEnc  *PubkeyEnc
	Signature  *Signature
	OnepassSig *OnepassSig
	Cert       *Cert
	UserId     *UserId
	Comment    *Comment
	Plaintext  *Plaintext
	Compressed *Compressed
	Encrypted  *Encrypted
}
