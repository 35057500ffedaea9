package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"

	"example.com/pgpcore/pkg/keyring"
	"example.com/pgpcore/pkg/pgp"
)

// cmdKeyring walks every packet in the stream, indexing Cert packets and
// folding in revocation signatures, then persists the result to -store.
func cmdKeyring(args []string) {
	fs := flag.NewFlagSet("keyring", flag.ExitOnError)
	var in, store string
	fs.StringVar(&in, "in", "", "input file (default: stdin)")
	fs.StringVar(&store, "store", "", "keyring index JSON path (required)")
	fatalIf(fs.Parse(args))
	if store == "" {
		fatalf("missing -store")
	}

	s, err := keyring.Load(store)
	fatalIf(err)

	src := pgp.NewByteSource(bytes.NewReader(readInput(in)))
	d := pgp.NewDispatcher(src)
	for {
		pkt, err := d.ParseOne()
		if err == io.EOF {
			break
		}
		fatalIf(err)
		if pkt == nil {
			continue
		}
		switch {
		case pkt.Cert != nil:
			id, err := keyring.Observe(s, pkt.Cert)
			fatalIf(err)
			fmt.Printf("observed key %s\n", id)
		case pkt.Signature != nil:
			keyring.ObserveSignature(s, pkt.Signature)
		}
	}

	fatalIf(keyring.Save(store, s))
}
