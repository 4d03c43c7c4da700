// Copyright 2025, John Mamish

package dmac

import (
	"cmp"
	"fmt"
	"io"
	"iter"
	"slices"
)

// Region is a named span of the modeled address space.
type Region struct {
	Name string
	Base uint32
	Data []byte
}

// Size returns the region length in bytes.
func (region *Region) Size() uint32 {
	return uint32(len(region.Data))
}

// Contains reports whether addr falls inside the region.
func (region *Region) Contains(addr uint32) bool {
	return addr >= region.Base && addr-region.Base < region.Size()
}

// Marshal writes the region's image to a writer.
func (region *Region) Marshal(file io.Writer) (err error) {
	_, err = file.Write(region.Data)

	return
}

// Unmarshal loads a region image from a reader. The image must be exactly
// the mapped size; regions never grow or shrink after mapping.
func (region *Region) Unmarshal(file io.Reader) (err error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return
	}

	if len(data) != len(region.Data) {
		err = ErrRegionSize{Name: region.Name, Want: len(region.Data), Got: len(data)}
		return
	}

	copy(region.Data, data)

	return
}

// Space is a 32-bit byte-addressable memory assembled from named,
// non-overlapping regions. Anything outside a mapped region bus-faults.
type Space struct {
	regions []*Region // Sorted by base address.
}

// Map adds a zero-filled region. The span must not wrap the address space,
// collide with an existing region, or reuse a name.
func (space *Space) Map(name string, base uint32, size uint32) (region *Region, err error) {
	end := uint64(base) + uint64(size)
	if size == 0 || end > 1<<32 {
		err = ErrRegionBounds
		return
	}

	for _, old := range space.regions {
		if old.Name == name {
			err = ErrRegionName(name)
			return
		}
		if uint64(base) < uint64(old.Base)+uint64(old.Size()) && uint64(old.Base) < end {
			err = ErrRegionOverlap{Name: name, Over: old.Name}
			return
		}
	}

	region = &Region{
		Name: name,
		Base: base,
		Data: make([]byte, size),
	}

	at, _ := slices.BinarySearchFunc(space.regions, region, func(a, b *Region) int {
		return cmp.Compare(a.Base, b.Base)
	})
	space.regions = slices.Insert(space.regions, at, region)

	return
}

// Find returns the region containing addr, or nil.
func (space *Space) Find(addr uint32) *Region {
	for _, region := range space.regions {
		if region.Contains(addr) {
			return region
		}
	}

	return nil
}

// Region returns the region with the given name, or nil.
func (space *Space) Region(name string) *Region {
	for _, region := range space.regions {
		if region.Name == name {
			return region
		}
	}

	return nil
}

// Regions returns an iterator over the regions in address order.
func (space *Space) Regions() iter.Seq[*Region] {
	return slices.Values(space.regions)
}

// Slice returns a view of [addr, addr+size). The span must lie inside a
// single region.
func (space *Space) Slice(addr uint32, size uint32) (data []byte, err error) {
	region := space.Find(addr)
	if region == nil {
		err = ErrBusFault(addr)
		return
	}

	from := addr - region.Base
	if uint64(from)+uint64(size) > uint64(len(region.Data)) {
		err = ErrBusFault(addr + size - 1)
		return
	}

	data = region.Data[from : from+size]

	return
}

// Read8 reads one byte.
func (space *Space) Read8(addr uint32) (value uint8, err error) {
	region := space.Find(addr)
	if region == nil {
		err = ErrBusFault(addr)
		return
	}

	value = region.Data[addr-region.Base]

	return
}

// Write8 writes one byte.
func (space *Space) Write8(addr uint32, value uint8) (err error) {
	region := space.Find(addr)
	if region == nil {
		err = ErrBusFault(addr)
		return
	}

	region.Data[addr-region.Base] = value

	return
}

// Read16 reads a little-endian halfword, byte by byte.
func (space *Space) Read16(addr uint32) (value uint16, err error) {
	for n := range uint32(2) {
		var b uint8
		b, err = space.Read8(addr + n)
		if err != nil {
			return
		}
		value |= uint16(b) << (8 * n)
	}

	return
}

// Write16 writes a little-endian halfword, byte by byte.
func (space *Space) Write16(addr uint32, value uint16) (err error) {
	for n := range uint32(2) {
		err = space.Write8(addr+n, uint8(value>>(8*n)))
		if err != nil {
			return
		}
	}

	return
}

// Read32 reads a little-endian word, byte by byte.
func (space *Space) Read32(addr uint32) (value uint32, err error) {
	for n := range uint32(4) {
		var b uint8
		b, err = space.Read8(addr + n)
		if err != nil {
			return
		}
		value |= uint32(b) << (8 * n)
	}

	return
}

// Write32 writes a little-endian word, byte by byte.
func (space *Space) Write32(addr uint32, value uint32) (err error) {
	for n := range uint32(4) {
		err = space.Write8(addr+n, uint8(value>>(8*n)))
		if err != nil {
			return
		}
	}

	return
}

// String returns the memory map, one region per line.
func (space *Space) String() (text string) {
	for _, region := range space.regions {
		text += fmt.Sprintf("%08x..%08x %8d %v\n",
			region.Base, region.Base+region.Size()-1, region.Size(), region.Name)
	}

	return
}
