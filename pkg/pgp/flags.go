package pgp

import "sync/atomic"

var listMode atomic.Bool
var mpiPrintMode atomic.Bool

// SetPacketListMode toggles the process-wide list-mode flag PayloadDecoders
// and the list printer read, returning the previous value so a caller can
// restore it (§5, §6).
func SetPacketListMode(on bool) bool {
	return listMode.Swap(on)
}

// ListMode reports the current list-mode flag.
func ListMode() bool { return listMode.Load() }

// SetMPIPrintMode toggles the debug flag that asks the list printer to dump
// full MPI values rather than just their bit length.
func SetMPIPrintMode(on bool) bool {
	return mpiPrintMode.Swap(on)
}

// MPIPrintMode reports the current mpi-print-mode flag.
func MPIPrintMode() bool { return mpiPrintMode.Load() }
