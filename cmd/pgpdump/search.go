package main

import (
	"bytes"
	"flag"
	"io"
	"strconv"

	"example.com/pgpcore/pkg/pgp"
)

// cmdSearch scans forward, skipping packets of every other type, until it
// finds one matching the requested tag (§4.2 search_for).
func cmdSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	var in string
	fs.StringVar(&in, "in", "", "input file (default: stdin)")
	fatalIf(fs.Parse(args))

	rest := fs.Args()
	if len(rest) < 1 {
		fatalf("usage: pgpdump search [-in file] <tag>")
	}
	tag, err := strconv.Atoi(rest[0])
	fatalIf(err)

	pgp.SetPacketListMode(true)
	src := pgp.NewByteSource(bytes.NewReader(readInput(in)))
	d := pgp.NewDispatcher(src)

	pkt, err := d.SearchFor(tag)
	if err == io.EOF {
		fatalf("no packet of type %d found", tag)
	}
	fatalIf(err)
	if pkt == nil {
		fatalf("packet of type %d was skipped (soft-skip, no record produced)", tag)
	}
}
