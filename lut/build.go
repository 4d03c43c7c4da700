package lut

// BuildPack fills the 16x256 nybble-pair pack table.
//
// The index is two concatenated bytes: the high byte carries a nybble in its
// low four bits (the "selector"), the low byte carries a nybble in its low
// four bits with the upper four bits ignored. The output merges them:
//
//	table[0b0000_xxxx][0byyyy_zzzz] = 0bxxxx_zzzz
//
// Used to reassemble two independently transferred nybbles into one byte
// that can index a 16x16 table.
func BuildPack(table *[PACK_SIZE]byte) {
	for hi := range 16 {
		for lo := range 256 {
			table[hi*256+lo] = byte(hi<<4) | byte(lo&0x0f)
		}
	}
}

// BuildLowToLow fills the projection table mapping 0byyyy_xxxx to 0b0000_xxxx.
func BuildLowToLow(table *[TABLE_SIZE]byte) {
	for count := range TABLE_SIZE {
		table[count] = byte(count) & 0x0f
	}
}

// BuildLowToHigh fills the projection table mapping 0byyyy_xxxx to 0bxxxx_0000.
func BuildLowToHigh(table *[TABLE_SIZE]byte) {
	for count := range TABLE_SIZE {
		table[count] = byte(count<<4) & 0xf0
	}
}

// BuildHighToHigh fills the projection table mapping 0byyyy_xxxx to 0byyyy_0000.
func BuildHighToHigh(table *[TABLE_SIZE]byte) {
	for count := range TABLE_SIZE {
		table[count] = byte(count) & 0xf0
	}
}

// BuildHighToLow fills the projection table mapping 0byyyy_xxxx to 0b0000_yyyy.
func BuildHighToLow(table *[TABLE_SIZE]byte) {
	for count := range TABLE_SIZE {
		table[count] = byte(count>>4) & 0x0f
	}
}

// BuildAddNoCarry fills the 16x16 table mapping 0bxxxx_yyyy to the low four
// bits of xxxx + yyyy.
func BuildAddNoCarry(table *[TABLE_SIZE]byte) {
	for count := range TABLE_SIZE {
		table[count] = byte(((count>>4)&0x0f)+(count&0x0f)) & 0x0f
	}
}

// BuildAddWithCarry fills the 16x16 table mapping 0bxxxx_yyyy to the low four
// bits of 1 + xxxx + yyyy.
func BuildAddWithCarry(table *[TABLE_SIZE]byte) {
	for count := range TABLE_SIZE {
		table[count] = byte(((count>>4)&0x0f)+(count&0x0f)+1) & 0x0f
	}
}

// BuildCarryNoCarry fills the 16x16 table mapping 0bxxxx_yyyy to the carry
// bit of xxxx + yyyy, in bit 0.
func BuildCarryNoCarry(table *[TABLE_SIZE]byte) {
	for count := range TABLE_SIZE {
		table[count] = byte((((count>>4)&0x0f)+(count&0x0f))&0x10) >> 4
	}
}

// BuildCarryWithCarry fills the 16x16 table mapping 0bxxxx_yyyy to the carry
// bit of 1 + xxxx + yyyy, in bit 0.
func BuildCarryWithCarry(table *[TABLE_SIZE]byte) {
	for count := range TABLE_SIZE {
		table[count] = byte((((count>>4)&0x0f)+(count&0x0f)+1)&0x10) >> 4
	}
}

// BuildCompareEqual fills the 16x16 table mapping 0bxxxx_yyyy to eq when
// xxxx == yyyy, and to ne otherwise. The sentinels are caller-chosen, which
// lets one table feed either a flag byte or a jump-target byte.
func BuildCompareEqual(table *[TABLE_SIZE]byte, eq byte, ne byte) {
	for count := range TABLE_SIZE {
		if (count>>4)&0x0f == count&0x0f {
			table[count] = eq
		} else {
			table[count] = ne
		}
	}
}
