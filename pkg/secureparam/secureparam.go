// Package secureparam moves a decoded secret certificate's opaque secret
// MPI bytes into locked, zero-on-destroy memory. The core parser (pkg/pgp)
// only ever copies these bytes around as plain []byte — it makes no
// attempt to unprotect or otherwise touch them (§4.8) — so the sensitive
// handling lives here, one layer up, where a caller that actually intends
// to use the key material opts into it explicitly.
package secureparam

import (
	"example.com/pgpcore/pkg/pgp"
	"example.com/pgpcore/pkg/util/securemem"
)

// SecretParams holds a Cert's secret-MPI bytes in locked memory, keyed by
// the Cert field pkg/pgp's cert.go populates (elg_x, dsa_x, rsa_d, rsa_p, rsa_q,
// rsa_u). Call Destroy once the caller is done with the key material.
type SecretParams struct {
	bufs map[string]*securemem.Secret
}

// Wrap copies cert's populated secret MPI fields into locked buffers. It
// does nothing for a public certificate or an unpopulated secret field.
func Wrap(cert *pgp.Cert) *SecretParams {
	sp := &SecretParams{bufs: make(map[string]*securemem.Secret)}
	if cert == nil || !cert.IsSecret {
		return sp
	}
	add := func(name string, m pgp.MPI) {
		if len(m.Bytes) == 0 {
			return
		}
		sp.bufs[name] = securemem.New(m.Bytes)
	}
	add("elg_x", cert.ElGamalX)
	add("dsa_x", cert.DSAX)
	add("rsa_d", cert.RSAD)
	add("rsa_p", cert.RSAP)
	add("rsa_q", cert.RSAQ)
	add("rsa_u", cert.RSAU)
	return sp
}

// Get returns the locked bytes for a named field, or nil if it wasn't
// populated.
func (sp *SecretParams) Get(name string) []byte {
	b, ok := sp.bufs[name]
	if !ok {
		return nil
	}
	return b.Bytes()
}

// Destroy wipes and releases every locked buffer this SecretParams holds.
func (sp *SecretParams) Destroy() {
	for _, b := range sp.bufs {
		b.Destroy()
	}
}
