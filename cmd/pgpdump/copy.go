package main

import (
	"bytes"
	"flag"
	"os"
	"strconv"

	"example.com/pgpcore/pkg/armor"
	"example.com/pgpcore/pkg/pgp"
)

// cmdCopy verbatim-copies packets up to the given stream offset (§4.2
// copy_some / copy_all — stop offset 0 copies the whole stream).
func cmdCopy(args []string) {
	fs := flag.NewFlagSet("copy", flag.ExitOnError)
	var in string
	var outArmor bool
	fs.StringVar(&outPath, "out", "", "output file (default: stdout)")
	fs.StringVar(&in, "in", "", "input file (default: stdin)")
	fs.BoolVar(&outArmor, "armor", false, "ASCII-armor the copied packets")
	fatalIf(fs.Parse(args))

	rest := fs.Args()
	stopOffset := uint64(0)
	if len(rest) > 0 {
		n, err := strconv.ParseUint(rest[0], 10, 64)
		fatalIf(err)
		stopOffset = n
	}

	src := pgp.NewByteSource(bytes.NewReader(readInput(in)))
	d := pgp.NewDispatcher(src)

	var out bytes.Buffer
	var err error
	if stopOffset == 0 {
		err = d.CopyAll(&out)
	} else {
		err = d.CopySome(&out, stopOffset)
	}
	fatalIf(err)

	result := out.Bytes()
	if outArmor {
		result = armor.ArmorPGPMessage(result, nil)
	}
	fatalIf(writeOut(result))
}

var outPath string

// writeOut matches the teacher's cmd/gocrypt writeOut: stdout by default, or
// a truncated file at -out.
func writeOut(b []byte) error {
	if outPath == "" {
		_, err := os.Stdout.Write(b)
		return err
	}
	f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(b)
	return err
}
