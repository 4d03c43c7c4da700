// Package lut builds the lookup tables that stand in for an ALU.
//
// Every table maps a byte-wide index (or, for the pack table, a pair of
// independently sourced index bytes) to a byte-wide output, because the DMA
// engine can concatenate bytes into an address but cannot address anything
// narrower than a byte. Nybble-level operations are therefore simulated by
// first projecting each nybble into a full byte, trading table memory for
// the missing sub-byte addressing.
//
// Tables are pure data: building one never reads the destination buffer,
// and building twice produces identical bytes. Nothing mutates a table once
// it is built. Placement is the caller's problem. The pack table must sit
// on a 64 KiB boundary so that two DMA-written bytes can form the low and
// high halves of its index address, and single-byte-indexed tables must sit
// on a 256 byte boundary so that one DMA-written byte can form the low half.
package lut
