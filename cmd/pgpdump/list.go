package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"

	"example.com/pgpcore/pkg/compress"
	"example.com/pgpcore/pkg/pgp"
	"example.com/pgpcore/pkg/secureparam"
)

// cmdList runs the parse_one loop in list mode (§4.2, §4.7), the CLI
// equivalent of `gpg --list-packets`. A Compressed packet's body is
// inflated and the packets inside it are listed too, the way gpg recurses
// into a compressed container rather than stopping at its cover packet.
func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var mpi bool
	var in string
	fs.BoolVar(&mpi, "mpi", false, "print full MPI values, not just bit lengths")
	fs.StringVar(&in, "in", "", "input file (default: stdin)")
	fatalIf(fs.Parse(args))

	pgp.SetPacketListMode(true)
	pgp.SetMPIPrintMode(mpi)

	src := pgp.NewByteSource(bytes.NewReader(readInput(in)))
	listStream(src)
}

func listStream(src *pgp.ByteSource) {
	d := pgp.NewDispatcher(src)
	for {
		pkt, err := d.ParseOne()
		if err == io.EOF {
			return
		}
		fatalIf(err)
		if pkt != nil && pkt.Cert != nil && pkt.Cert.IsSecret {
			// Secret MPI bytes move into locked memory the moment the
			// listing is done with them, rather than lingering as plain
			// []byte on the Go heap for the rest of the process.
			sp := secureparam.Wrap(pkt.Cert)
			sp.Destroy()
		}
		if pkt != nil && pkt.Compressed != nil {
			body, err := compress.Decompress(pkt.Compressed)
			if err != nil {
				fmt.Printf("\t[compressed body: %v]\n", err)
				continue
			}
			listStream(pgp.NewByteSource(bytes.NewReader(body)))
		}
	}
}
