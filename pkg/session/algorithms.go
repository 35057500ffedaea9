package session

// Public-key algorithm ids used by the v6 PKESK paths this layer decrypts.
// pkg/pgp's decodePubkeyEnc records PubkeyEnc.Algo as an opaque byte for
// every version it parses, including 6; this package is the first thing
// that attaches crypto meaning to it.
const (
	PKALG_X25519 = 25
	PKALG_X448   = 26
)
