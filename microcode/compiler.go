// Copyright 2025, John Mamish

package microcode

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/johnMamish/samdma21-memputer/dmac"
)

const (
	// CHAIN_RECORDS is the length of a compiled eight-bit add chain.
	CHAIN_RECORDS = 17
	// CHAIN_BYTES is its arena footprint.
	CHAIN_BYTES = CHAIN_RECORDS * dmac.DESC_BYTES
)

var _microcode_defines = map[string]string{
	"CHAIN_RECORDS":  fmt.Sprintf("%#x", CHAIN_RECORDS),
	"CHAIN_BYTES":    fmt.Sprintf("%#x", CHAIN_BYTES),
	"SCRATCH_BYTES":  fmt.Sprintf("%#x", SCRATCH_BYTES),
	"ADD_PAIR_SIZE":  fmt.Sprintf("%#x", ADD_PAIR_SIZE),
	"ADD_PAIR_ALIGN": fmt.Sprintf("%#x", ADD_PAIR_ALIGN),
	"ADD_WITH_CARRY": fmt.Sprintf("%#x", ADD_WITH_CARRY),
}

// Defines returns an iterator of the chain geometry constants, for feeding
// plan scripts.
func Defines() iter.Seq2[string, string] {
	return maps.All(_microcode_defines)
}

// Compiler emits transfer record chains over a fixed table layout.
type Compiler struct {
	Verbose bool   // Set to log each emitted record.
	Layout  Layout // Table placement the chains route through.
}

// Chain is a compiled record list, backed by the caller's arena bytes.
// Running it patches the arena in place; every patched byte is rewritten
// before its consumer record executes, so a chain reruns cleanly.
type Chain struct {
	Head  uint32 // Address of the first record.
	Arena []byte // The records' backing bytes.
}

// Records returns an iterator over the chain's records in arena order,
// decoded from the current (possibly patched) arena bytes.
func (chain *Chain) Records() iter.Seq2[int, dmac.Descriptor] {
	return func(yield func(int, dmac.Descriptor) bool) {
		for at := 0; at+dmac.DESC_BYTES <= len(chain.Arena); at += dmac.DESC_BYTES {
			var desc dmac.Descriptor
			if desc.Unmarshal(chain.Arena[at:]) != nil {
				return
			}
			if !yield(at/dmac.DESC_BYTES, desc) {
				return
			}
		}
	}
}

// String returns the chain as a numbered record listing.
func (chain *Chain) String() (text string) {
	for n, desc := range chain.Records() {
		text += fmt.Sprintf("%2d %08x: %v\n", n, chain.Head+uint32(n*dmac.DESC_BYTES), desc)
	}

	return
}

// LowCarry reports an add chain's low-pass carry, read back out of the
// high-pass add record's patched source address. Meaningful once the chain
// has run.
func (chain *Chain) LowCarry() bool {
	return chain.Arena[15*dmac.DESC_BYTES+dmac.OFF_SRCADDR+1] != 0
}

// Add8 compiles a chain computing *result = *opa + *opb modulo 256.
//
// The arena backs the records and must be mapped at arenaAddr, on a record
// boundary. The operand and result addresses name single bytes; the result
// may alias an operand, since it is written by the final record only. The
// chain reads each operand twice (low pass and high pass), so operands must
// stay put while it runs.
//
// The add is performed entirely by the records: nybble projections of the
// operands index the pack table, the packed pairs index the add and carry
// tables, and the low-pass carry byte is deposited into bits 8..15 of the
// high-pass add record's source address where it selects the with-carry
// plane. Only the structure is checked here; the table contents are
// trusted.
func (comp *Compiler) Add8(arena []byte, arenaAddr uint32, opa, opb, result uint32) (chain *Chain, err error) {
	err = comp.Layout.Validate()
	if err != nil {
		return
	}

	if len(arena) < CHAIN_BYTES {
		err = ErrArenaSize(len(arena))
		return
	}
	if arenaAddr == 0 || arenaAddr%dmac.DESC_ALIGN != 0 {
		err = dmac.ErrAlign{Addr: arenaAddr, Align: dmac.DESC_ALIGN}
		return
	}

	operands := []struct {
		Name string
		Addr uint32
	}{
		{Name: "opa", Addr: opa},
		{Name: "opb", Addr: opb},
		{Name: "result", Addr: result},
	}
	for _, operand := range operands {
		inArena := operand.Addr >= arenaAddr && operand.Addr-arenaAddr < CHAIN_BYTES
		if inArena || comp.Layout.scratchContains(operand.Addr) {
			err = ErrOperand{Name: operand.Name, Addr: operand.Addr}
			return
		}
	}

	// rec(n) is record n's address; src(n, b) is byte b of its source
	// address field, the only field other records are allowed to patch.
	rec := func(n int) uint32 {
		return arenaAddr + uint32(n*dmac.DESC_BYTES)
	}
	src := func(n int, b int) uint32 {
		return rec(n) + dmac.OFF_SRCADDR + uint32(b)
	}

	lay := &comp.Layout
	move := dmac.MakeControlByte(dmac.BLOCK_NOACT)

	records := []dmac.Descriptor{
		// Low pass: project both operands' low nybbles, pack them, and
		// route the packed byte into the add and carry lookups.
		{Control: move, Count: 1, SrcAddr: opa, DstAddr: src(2, 0)},
		{Control: move, Count: 1, SrcAddr: opb, DstAddr: src(3, 0)},
		{Control: move, Count: 1, SrcAddr: lay.ProjLL, DstAddr: src(4, 1)},
		{Control: move, Count: 1, SrcAddr: lay.ProjLL, DstAddr: src(4, 0)},
		{Control: move, Count: 1, SrcAddr: lay.Pack, DstAddr: lay.Scratch + 0},
		{Control: move, Count: 1, SrcAddr: lay.Scratch + 0, DstAddr: src(7, 0)},
		{Control: move, Count: 1, SrcAddr: lay.Scratch + 0, DstAddr: src(8, 0)},
		{Control: move, Count: 1, SrcAddr: lay.AddPair, DstAddr: src(16, 0)},
		{Control: move, Count: 1, SrcAddr: lay.CarryNC, DstAddr: src(15, 1)},

		// High pass: same shape, but the carry byte already deposited in
		// record 15's source address picks the add plane.
		{Control: move, Count: 1, SrcAddr: opa, DstAddr: src(11, 0)},
		{Control: move, Count: 1, SrcAddr: opb, DstAddr: src(12, 0)},
		{Control: move, Count: 1, SrcAddr: lay.ProjHL, DstAddr: src(13, 1)},
		{Control: move, Count: 1, SrcAddr: lay.ProjHL, DstAddr: src(13, 0)},
		{Control: move, Count: 1, SrcAddr: lay.Pack, DstAddr: lay.Scratch + 1},
		{Control: move, Count: 1, SrcAddr: lay.Scratch + 1, DstAddr: src(15, 0)},
		{Control: move, Count: 1, SrcAddr: lay.AddPair, DstAddr: src(16, 1)},

		// Both nybble sums have landed in record 16's source address;
		// one last pack lookup assembles the byte.
		{Control: move, Count: 1, SrcAddr: lay.Pack, DstAddr: result},
	}

	for n := range records {
		records[n].Link = rec(n + 1)
	}

	last := len(records) - 1
	records[last].Control = dmac.MakeControlByte(dmac.BLOCK_INT)
	records[last].Link = rec(last)

	for n, desc := range records {
		err = desc.Marshal(arena[n*dmac.DESC_BYTES:])
		if err != nil {
			return
		}

		if comp.Verbose {
			log.Printf("microcode: %2d %08x: %v", n, rec(n), desc)
		}
	}

	chain = &Chain{
		Head:  arenaAddr,
		Arena: arena[:CHAIN_BYTES],
	}

	return
}
