package dmac

import (
	"encoding/binary"
	"fmt"
	"iter"
	"maps"
)

const (
	// DESC_BYTES is the wire size of one transfer record.
	DESC_BYTES = 16
	// DESC_ALIGN is the required alignment of a record in memory.
	DESC_ALIGN = uint32(16)

	// Byte offsets of the record fields.
	OFF_BTCTRL   = 0
	OFF_BTCNT    = 2
	OFF_SRCADDR  = 4
	OFF_DSTADDR  = 8
	OFF_DESCADDR = 12
)

var _dmac_defines = map[string]string{
	"DMAC_DESC_BYTES":  fmt.Sprintf("%#x", DESC_BYTES),
	"DMAC_DESC_ALIGN":  fmt.Sprintf("%#x", DESC_ALIGN),
	"DMAC_MAX_RECORDS": fmt.Sprintf("%#x", ENGINE_MAX_RECORDS),
}

// Defines returns an iterator of the record geometry constants, for feeding
// plan scripts.
func Defines() iter.Seq2[string, string] {
	return maps.All(_dmac_defines)
}

// Descriptor is one decoded transfer record.
type Descriptor struct {
	Control Control // Block transfer control.
	Count   uint16  // Beats in this record.
	SrcAddr uint32  // First source beat address.
	DstAddr uint32  // First destination beat address.
	Link    uint32  // Next record address. Zero or self ends the chain.
}

// Marshal encodes the record into its sixteen-byte little-endian wire form.
func (desc *Descriptor) Marshal(data []byte) (err error) {
	if len(data) < DESC_BYTES {
		err = ErrDescriptorSize(len(data))
		return
	}

	binary.LittleEndian.PutUint16(data[OFF_BTCTRL:], uint16(desc.Control))
	binary.LittleEndian.PutUint16(data[OFF_BTCNT:], desc.Count)
	binary.LittleEndian.PutUint32(data[OFF_SRCADDR:], desc.SrcAddr)
	binary.LittleEndian.PutUint32(data[OFF_DSTADDR:], desc.DstAddr)
	binary.LittleEndian.PutUint32(data[OFF_DESCADDR:], desc.Link)

	return
}

// Unmarshal decodes the record from its wire form.
func (desc *Descriptor) Unmarshal(data []byte) (err error) {
	if len(data) < DESC_BYTES {
		err = ErrDescriptorSize(len(data))
		return
	}

	desc.Control = Control(binary.LittleEndian.Uint16(data[OFF_BTCTRL:]))
	desc.Count = binary.LittleEndian.Uint16(data[OFF_BTCNT:])
	desc.SrcAddr = binary.LittleEndian.Uint32(data[OFF_SRCADDR:])
	desc.DstAddr = binary.LittleEndian.Uint32(data[OFF_DSTADDR:])
	desc.Link = binary.LittleEndian.Uint32(data[OFF_DESCADDR:])

	return
}

// String returns the record as a transfer summary.
func (desc Descriptor) String() string {
	return fmt.Sprintf("%08x -> %08x x%d %v link %08x",
		desc.SrcAddr, desc.DstAddr, desc.Count, desc.Control, desc.Link)
}
