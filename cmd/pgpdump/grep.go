package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"strconv"

	"example.com/pgpcore/pkg/pgp"
	"example.com/pgpcore/pkg/pgp/subpacket"
)

// cmdGrepSubpacket scans every Signature packet in the stream and reports
// whether a subpacket of the requested type is present in its hashed or
// unhashed area (§4.6 subpacket scanner, exposed as a bulk op over the
// whole stream).
func cmdGrepSubpacket(args []string) {
	fs := flag.NewFlagSet("grep-subpacket", flag.ExitOnError)
	var in string
	fs.StringVar(&in, "in", "", "input file (default: stdin)")
	fatalIf(fs.Parse(args))

	rest := fs.Args()
	if len(rest) < 1 {
		fatalf("usage: pgpdump grep-subpacket [-in file] <subpacket-type>")
	}
	wantType, err := strconv.Atoi(rest[0])
	fatalIf(err)

	src := pgp.NewByteSource(bytes.NewReader(readInput(in)))
	d := pgp.NewDispatcher(src)

	found := 0
	for {
		offset := d.Offset()
		pkt, err := d.SearchFor(pgp.TagSignature)
		if err == io.EOF {
			break
		}
		fatalIf(err)
		if pkt == nil || pkt.Signature == nil {
			continue
		}
		sig := pkt.Signature
		if hit, area := subpacketHit(sig, wantType); hit {
			fmt.Printf("offset %d: signature class %02x, keyid %08X%08X: %s subpacket type %d present\n",
				offset, sig.SigClass, sig.KeyIDHi, sig.KeyIDLo, area, wantType)
			found++
		}
	}
	if found == 0 {
		fatalf("no signature carried subpacket type %d", wantType)
	}
}

func subpacketHit(sig *pgp.Signature, wantType int) (bool, string) {
	t := byte(wantType)
	if _, ok, _ := subpacket.Find(sig.HashedData, t); ok {
		return true, "hashed"
	}
	if _, ok, _ := subpacket.Find(sig.UnhashedData, t); ok {
		return true, "unhashed"
	}
	return false, ""
}
