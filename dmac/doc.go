// Package dmac models the descriptor-driven memory-to-memory transfer
// controller that the lookup-table computer runs on.
//
// A transfer record is sixteen little-endian bytes: a control halfword, a
// beat count, source and destination addresses, and a link to the next
// record. Records live in ordinary mapped memory, so a transfer may
// overwrite fields of a record further down its own chain; the Engine
// re-fetches every record from memory when it reaches it, which is what
// makes descriptor chains usable as programs.
//
// The Space type provides the 32-bit byte-addressable memory the records
// and their payloads live in, assembled from named non-overlapping regions.
package dmac
