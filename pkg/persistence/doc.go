// Package persistence stores probe operational history across process
// restarts.
//
// The store keeps per-probe counters (total pulses, total faults), the
// last applied configuration and a bounded fault history in a versioned
// JSON file. It is written by pkg/session at cycle boundaries and on
// close; losing the file loses history, never safety - validation and
// interlock state are owned by the hardware and catalogs, not by this
// store.
package persistence
