package lut

import (
	"fmt"
	"iter"
	"maps"
)

const (
	TABLE_SIZE = 256  // Entries in a single-byte-indexed table.
	PACK_SIZE  = 4096 // Entries in the two-byte-indexed pack table.

	TABLE_ALIGN = uint32(0x100)   // Base alignment for single-byte-indexed tables.
	PACK_ALIGN  = uint32(0x10000) // Base alignment for the pack table.
)

var _lut_defines = map[string]string{
	"LUT_TABLE_SIZE":  fmt.Sprintf("%#x", TABLE_SIZE),
	"LUT_PACK_SIZE":   fmt.Sprintf("%#x", PACK_SIZE),
	"LUT_TABLE_ALIGN": fmt.Sprintf("%#x", TABLE_ALIGN),
	"LUT_PACK_ALIGN":  fmt.Sprintf("%#x", PACK_ALIGN),
}

// Defines returns an iterator of the table geometry constants, for feeding
// plan scripts.
func Defines() iter.Seq2[string, string] {
	return maps.All(_lut_defines)
}

// Kind identifies one of the buildable lookup tables.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	LUT_PACK     = Kind(0) // pack
	LUT_LO_TO_LO = Kind(1) // lo2lo
	LUT_LO_TO_HI = Kind(2) // lo2hi
	LUT_HI_TO_HI = Kind(3) // hi2hi
	LUT_HI_TO_LO = Kind(4) // hi2lo
	LUT_ADD_NC   = Kind(5) // addnc
	LUT_ADD_WC   = Kind(6) // addwc
	LUT_CARRY_NC = Kind(7) // carrync
	LUT_CARRY_WC = Kind(8) // carrywc
	LUT_CMP_EQ   = Kind(9) // cmpeq
)

// Size returns the number of entries (and bytes) in a table of this kind.
func (kind Kind) Size() int {
	if kind == LUT_PACK {
		return PACK_SIZE
	}
	return TABLE_SIZE
}

// Align returns the minimum base-address alignment a table of this kind
// needs so that DMA-written index bytes land inside it.
func (kind Kind) Align() uint32 {
	if kind == LUT_PACK {
		return PACK_ALIGN
	}
	return TABLE_ALIGN
}

// Build fills table with the named kind's contents. The compare table takes
// its two sentinel bytes (equal, not-equal) as trailing arguments; no other
// kind accepts them.
func Build(kind Kind, table []byte, sentinels ...byte) (err error) {
	if len(table) != kind.Size() {
		err = ErrTableSize{Kind: kind, Len: len(table)}
		return
	}

	if kind == LUT_CMP_EQ {
		if len(sentinels) != 2 {
			err = ErrSentinels
			return
		}
		BuildCompareEqual((*[TABLE_SIZE]byte)(table), sentinels[0], sentinels[1])
		return
	}

	if len(sentinels) != 0 {
		err = ErrSentinels
		return
	}

	switch kind {
	case LUT_PACK:
		BuildPack((*[PACK_SIZE]byte)(table))
	case LUT_LO_TO_LO:
		BuildLowToLow((*[TABLE_SIZE]byte)(table))
	case LUT_LO_TO_HI:
		BuildLowToHigh((*[TABLE_SIZE]byte)(table))
	case LUT_HI_TO_HI:
		BuildHighToHigh((*[TABLE_SIZE]byte)(table))
	case LUT_HI_TO_LO:
		BuildHighToLow((*[TABLE_SIZE]byte)(table))
	case LUT_ADD_NC:
		BuildAddNoCarry((*[TABLE_SIZE]byte)(table))
	case LUT_ADD_WC:
		BuildAddWithCarry((*[TABLE_SIZE]byte)(table))
	case LUT_CARRY_NC:
		BuildCarryNoCarry((*[TABLE_SIZE]byte)(table))
	case LUT_CARRY_WC:
		BuildCarryWithCarry((*[TABLE_SIZE]byte)(table))
	default:
		err = ErrKind(kind)
	}

	return
}
