package pgp

// Public-key algorithm ids (RFC 2440 §9.1 plus the legacy GnuPG 1.x set).
const (
	PubkeyAlgoRSA     = 1
	PubkeyAlgoElGamal = 16
	PubkeyAlgoDSA     = 17
)

// Symmetric cipher algorithm ids, including the legacy Blowfish-160 value
// parse-packet.c uses to pick the RIPEMD-160 protection-hash fallback (§4.8).
// Blowfish-160 is GnuPG 1.x's pre-standardization designation for Blowfish
// with a 160-bit key, distinct from the RFC-2440 CAST5/Blowfish ids.
const (
	CipherAlgoPlain       = 0
	CipherAlgoIDEA        = 1
	CipherAlgoTripleDES   = 2
	CipherAlgoCAST5       = 3
	CipherAlgoBlowfish    = 4
	CipherAlgoBlowfish160 = 42
	CipherAlgoAES128      = 7
	CipherAlgoAES192      = 8
	CipherAlgoAES256      = 9
)

// Digest (hash) algorithm ids.
const (
	DigestAlgoMD5     = 1
	DigestAlgoSHA1    = 2
	DigestAlgoRMD160  = 3
	DigestAlgoSHA256  = 8
	DigestAlgoSHA384  = 9
	DigestAlgoSHA512  = 10
	DigestAlgoSHA224  = 11
)

// S2K (string-to-key) specifier modes.
const (
	S2KSimple       = 0
	S2KSalted       = 1
	S2KIteratedSalt = 4
)

// Compression algorithm ids carried by the Compressed packet's one-byte
// header field (§4.9).
const (
	CompressAlgoUncompressed = 0
	CompressAlgoZIP          = 1
	CompressAlgoZLIB         = 2
	CompressAlgoBZIP2        = 3
)
