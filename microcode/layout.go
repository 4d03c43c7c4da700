// Copyright 2025, John Mamish

package microcode

import (
	"iter"

	"github.com/johnMamish/samdma21-memputer/lut"
)

const (
	// SCRATCH_BYTES is the caller-owned working storage a chain uses for
	// intermediate packed bytes.
	SCRATCH_BYTES = 4

	// ADD_WITH_CARRY is the offset of the with-carry plane inside the add
	// pair. A carry byte deposited in address bits 8..15 selects it.
	ADD_WITH_CARRY = uint32(0x100)

	// ADD_PAIR_SIZE covers both add planes.
	ADD_PAIR_SIZE = 2 * lut.TABLE_SIZE

	// ADD_PAIR_ALIGN keeps address bits 0..15 of the pair base zero, so
	// that the two patched index bytes land cleanly.
	ADD_PAIR_ALIGN = uint32(0x10000)
)

// Layout places the lookup tables and scratch in the address space.
type Layout struct {
	Pack    uint32 // Nybble-pair pack table. Owns its 64 KiB frame.
	ProjLL  uint32 // Low nybble kept low.
	ProjLH  uint32 // Low nybble moved high.
	ProjHH  uint32 // High nybble kept high.
	ProjHL  uint32 // High nybble moved low.
	AddPair uint32 // No-carry and with-carry add planes. Owns its frame.
	CarryNC uint32 // Carry out, no carry in.
	CarryWC uint32 // Carry out, carry in.
	Compare uint32 // Compare-equal sentinels.
	Scratch uint32 // SCRATCH_BYTES of chain working storage.
}

// AutoLayout packs everything into two 64 KiB frames above base: the pack
// table, projections, carries, compare and scratch in the first, the add
// pair at the start of the second.
func AutoLayout(base uint32) Layout {
	return Layout{
		Pack:    base,
		ProjLL:  base + 0x1000,
		ProjLH:  base + 0x1100,
		ProjHH:  base + 0x1200,
		ProjHL:  base + 0x1300,
		CarryNC: base + 0x1400,
		CarryWC: base + 0x1500,
		Compare: base + 0x1600,
		Scratch: base + 0x1700,
		AddPair: base + 0x10000,
	}
}

// place is one named extent of the layout.
type place struct {
	Name  string
	Addr  uint32
	Size  uint32
	Align uint32
}

func (layout *Layout) places() []place {
	return []place{
		{Name: "pack", Addr: layout.Pack, Size: lut.PACK_SIZE, Align: lut.PACK_ALIGN},
		{Name: "proj-ll", Addr: layout.ProjLL, Size: lut.TABLE_SIZE, Align: lut.TABLE_ALIGN},
		{Name: "proj-lh", Addr: layout.ProjLH, Size: lut.TABLE_SIZE, Align: lut.TABLE_ALIGN},
		{Name: "proj-hh", Addr: layout.ProjHH, Size: lut.TABLE_SIZE, Align: lut.TABLE_ALIGN},
		{Name: "proj-hl", Addr: layout.ProjHL, Size: lut.TABLE_SIZE, Align: lut.TABLE_ALIGN},
		{Name: "add-pair", Addr: layout.AddPair, Size: ADD_PAIR_SIZE, Align: ADD_PAIR_ALIGN},
		{Name: "carry-nc", Addr: layout.CarryNC, Size: lut.TABLE_SIZE, Align: lut.TABLE_ALIGN},
		{Name: "carry-wc", Addr: layout.CarryWC, Size: lut.TABLE_SIZE, Align: lut.TABLE_ALIGN},
		{Name: "compare", Addr: layout.Compare, Size: lut.TABLE_SIZE, Align: lut.TABLE_ALIGN},
		{Name: "scratch", Addr: layout.Scratch, Size: SCRATCH_BYTES, Align: 1},
	}
}

// Validate checks every placement's alignment and that no two extents
// overlap. Alignment is what makes patched index bytes address arithmetic:
// a base with nonzero low address bytes would be clobbered, not indexed.
func (layout *Layout) Validate() (err error) {
	places := layout.places()

	for n, place := range places {
		if place.Addr%place.Align != 0 {
			err = ErrLayoutAlign{Name: place.Name, Addr: place.Addr, Align: place.Align}
			return
		}

		for _, prior := range places[:n] {
			if place.Addr < prior.Addr+prior.Size && prior.Addr < place.Addr+place.Size {
				err = ErrLayoutOverlap{Name: place.Name, Over: prior.Name}
				return
			}
		}
	}

	return
}

// Placements returns each table kind with its placed base address, in
// build order. The add pair expands to its two planes.
func (layout *Layout) Placements() iter.Seq2[lut.Kind, uint32] {
	table := []struct {
		Kind lut.Kind
		Addr uint32
	}{
		{Kind: lut.LUT_PACK, Addr: layout.Pack},
		{Kind: lut.LUT_LO_TO_LO, Addr: layout.ProjLL},
		{Kind: lut.LUT_LO_TO_HI, Addr: layout.ProjLH},
		{Kind: lut.LUT_HI_TO_HI, Addr: layout.ProjHH},
		{Kind: lut.LUT_HI_TO_LO, Addr: layout.ProjHL},
		{Kind: lut.LUT_ADD_NC, Addr: layout.AddPair},
		{Kind: lut.LUT_ADD_WC, Addr: layout.AddPair + ADD_WITH_CARRY},
		{Kind: lut.LUT_CARRY_NC, Addr: layout.CarryNC},
		{Kind: lut.LUT_CARRY_WC, Addr: layout.CarryWC},
		{Kind: lut.LUT_CMP_EQ, Addr: layout.Compare},
	}

	return func(yield func(lut.Kind, uint32) bool) {
		for _, placed := range table {
			if !yield(placed.Kind, placed.Addr) {
				return
			}
		}
	}
}

// scratchContains reports whether addr falls inside the chain's working
// storage.
func (layout *Layout) scratchContains(addr uint32) bool {
	return addr >= layout.Scratch && addr-layout.Scratch < SCRATCH_BYTES
}
