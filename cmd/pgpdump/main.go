// Command pgpdump exposes the parser core's bulk operations (§4.2) as a CLI,
// the way the teacher's cmd/gocrypt exposes its encrypt/decrypt/keygen
// operations: one flag.NewFlagSet per subcommand.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"example.com/pgpcore/pkg/armor"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func fatalIf(err error) {
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func fatalf(format string, a ...interface{}) {
	logger.Error(fmt.Sprintf(format, a...))
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		fatalf("usage: pgpdump <list|search|copy|grep-subpacket|keyring|decrypt> [args]")
	}
	switch os.Args[1] {
	case "list":
		cmdList(os.Args[2:])
	case "search":
		cmdSearch(os.Args[2:])
	case "copy":
		cmdCopy(os.Args[2:])
	case "grep-subpacket":
		cmdGrepSubpacket(os.Args[2:])
	case "keyring":
		cmdKeyring(os.Args[2:])
	case "decrypt":
		cmdDecrypt(os.Args[2:])
	default:
		fatalf("unknown subcommand %q", os.Args[1])
	}
}

// readInput loads the named file (or stdin for "-"/empty), transparently
// un-armoring a "-----BEGIN PGP MESSAGE-----" block if present (§4.2 external
// interface note — the CLI must accept armored input, the way the teacher's
// own CLI does).
func readInput(path string) []byte {
	var raw []byte
	var err error
	if path == "" || path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	fatalIf(err)

	if body, ok := armor.DecodePGPMessage(raw); ok {
		return body
	}
	return raw
}
