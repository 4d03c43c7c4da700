// Package microcode compiles arithmetic into transfer record chains.
//
// A compiled chain never computes; it only moves bytes. Early records copy
// operand bytes into the source addresses of later records, turning those
// records into table lookups, and the looked-up bytes are in turn routed
// into the addresses of records further down. Carry propagation is address
// routing too: the low-pass carry byte lands in bit 8..15 of the high-pass
// add record's source address, selecting the no-carry or with-carry plane
// of the add pair.
//
// The Layout type places the lookup tables so this routing works: tables
// indexed by one patched byte sit on 256-byte boundaries, and tables whose
// index spans two patched bytes (the pack table and the add pair) own a
// 64 KiB frame of their own.
package microcode
