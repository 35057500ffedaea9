package main

import (
	"bytes"
	"encoding/base64"
	"flag"

	"example.com/pgpcore/pkg/pgp"
	"example.com/pgpcore/pkg/session"
)

// cmdDecrypt recovers the plaintext of a v6 PubkeyEnc packet followed by a
// SEIPDv2/OCBED Encrypted packet, the modern-algorithm counterpart of
// `list`/`search`: it runs the same pgp.Dispatcher.ParseOne loop those
// subcommands use and hands the two decoded packets to pkg/session, which
// never reparses wire framing of its own (§1 — the cryptographic
// algorithms themselves stay out of the core parser's scope, not the
// framing around them).
func cmdDecrypt(args []string) {
	fs := flag.NewFlagSet("decrypt", flag.ExitOnError)
	var pkalg, pkb64, in string
	fs.StringVar(&pkalg, "pkalg", "x448", "recipient alg: x25519|x448")
	fs.StringVar(&pkb64, "pk", "", "recipient private key (raw) base64")
	fs.StringVar(&in, "in", "", "input file (default: stdin)")
	fs.StringVar(&outPath, "out", "", "output file (default: stdout)")
	fatalIf(fs.Parse(args))

	if pkb64 == "" {
		fatalf("missing -pk (private key base64)")
	}
	priv, err := base64.StdEncoding.DecodeString(pkb64)
	fatalIf(err)

	src := pgp.NewByteSource(bytes.NewReader(readInput(in)))
	d := pgp.NewDispatcher(src)

	first, err := d.ParseOne()
	fatalIf(err)
	if first == nil || first.PubkeyEnc == nil {
		fatalf("expected a pubkeyenc packet first")
	}

	second, err := d.ParseOne()
	fatalIf(err)
	if second == nil || second.Encrypted == nil {
		fatalf("expected an encrypted packet second")
	}

	pt, err := session.DecryptMessage(first.PubkeyEnc, second.Encrypted, pkalg, priv)
	fatalIf(err)
	fatalIf(writeOut(pt))
}
