package pgp

import (
	"fmt"
	"io"
	"os"

	"example.com/pgpcore/pkg/pgp/subpacket"
)

// ListOutput is where list-mode lines are written. Tests substitute a
// buffer; the CLI leaves it at the default of os.Stdout.
var ListOutput io.Writer = os.Stdout

func listf(format string, args ...any) {
	if !ListMode() {
		return
	}
	fmt.Fprintf(ListOutput, format, args...)
}

// printMPI renders one MPI's bit length, and its full value when
// mpi_print_mode is set (§5, §6).
func printMPI(label string, m MPI) {
	if !ListMode() {
		return
	}
	if MPIPrintMode() {
		listf("\t%s: [%d bits] %x\n", label, m.BitLen, m.Bytes)
	} else {
		listf("\t%s: [%d bits]\n", label, m.BitLen)
	}
}

func printSubpackets(label string, buf []byte) {
	if !ListMode() {
		return
	}
	listf(":%s subpackets:\n", label)
	_ = subpacket.List(buf, func(e subpacket.Entry) {
		crit := ""
		if e.Critical {
			crit = " (critical)"
		}
		listf("\tsubpkt %d (%s)%s, len %d\n", e.Type, subpacket.TypeName(e.Type), crit, len(e.Payload))
	})
}

// hexDumpSkip implements §4.7's skip_packet hex dump: groups of 8 bytes
// separated by spaces, a newline every 24 bytes, a leading 4-digit decimal
// offset.
func hexDumpSkip(tag byte, buf []byte) {
	if !ListMode() || tag == 0 {
		return
	}
	for i := 0; i < len(buf); i += 24 {
		end := i + 24
		if end > len(buf) {
			end = len(buf)
		}
		listf("%04d ", i)
		for j := i; j < end; j += 8 {
			g := j + 8
			if g > end {
				g = end
			}
			listf("%x ", buf[j:g])
		}
		listf("\n")
	}
}
