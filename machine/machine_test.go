package machine

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"

	"github.com/johnMamish/samdma21-memputer/dmac"
	"github.com/johnMamish/samdma21-memputer/microcode"
)

func TestMachine(t *testing.T) {
	assert := assert.New(t)

	mach, err := NewMachine(nil)
	assert.NoError(err)

	assert.False(mach.Verbose)
	assert.Equal(microcode.DefaultPlan(RAM_BASE), mach.Plan)
	assert.False(mach.Engine.Busy())

	ram := mach.Space.Region("ram")
	assert.NotNil(ram)
	assert.Equal(RAM_BASE, ram.Base)
	assert.Equal(mach.Plan.RamSize, ram.Size())
}

func TestMachinePlanErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Name   string
		Mutate func(plan *microcode.Plan)
		Err    error
	}){
		{Name: "arena-unaligned",
			Mutate: func(plan *microcode.Plan) { plan.Arena += 4 },
			Err:    dmac.ErrAlign{Addr: RAM_BASE + 0x2004, Align: dmac.DESC_ALIGN}},
		{Name: "pack-misaligned",
			Mutate: func(plan *microcode.Plan) { plan.Layout.Pack += 0x80 },
			Err:    microcode.ErrLayoutAlign{}},
		{Name: "result-outside-ram",
			Mutate: func(plan *microcode.Plan) { plan.Result = plan.Ram + plan.RamSize },
			Err:    microcode.ErrPlanBounds{}},
		{Name: "ram-too-small",
			Mutate: func(plan *microcode.Plan) { plan.RamSize = 0x1000 },
			Err:    microcode.ErrPlanBounds{}},
	}

	for _, testcase := range table {
		plan := microcode.DefaultPlan(RAM_BASE)
		testcase.Mutate(&plan)

		mach, err := NewMachine(&plan)
		assert.ErrorIs(err, testcase.Err, testcase.Name)
		assert.Nil(mach, testcase.Name)
	}
}

func TestMachineTables(t *testing.T) {
	assert := assert.New(t)

	mach, err := NewMachine(nil)
	assert.NoError(err)

	assert.NoError(mach.BuildTables())

	lay := &mach.Plan.Layout
	table := [](struct {
		Addr uint32
		Want uint8
	}){
		{Addr: lay.ProjLL + 0xab, Want: 0x0b},
		{Addr: lay.ProjLH + 0xab, Want: 0xb0},
		{Addr: lay.ProjHH + 0xab, Want: 0xa0},
		{Addr: lay.ProjHL + 0xab, Want: 0x0a},
		{Addr: lay.Pack + 0x0a*256 + 0xcb, Want: 0xab},
		{Addr: lay.AddPair + 0x77, Want: 0x0e},
		{Addr: lay.AddPair + microcode.ADD_WITH_CARRY + 0x77, Want: 0x0f},
		{Addr: lay.CarryNC + 0x99, Want: 0x01},
		{Addr: lay.CarryWC + 0x78, Want: 0x01},
		{Addr: lay.Compare + 0x55, Want: COMPARE_EQ},
		{Addr: lay.Compare + 0x56, Want: COMPARE_NE},
	}

	for _, testcase := range table {
		var value uint8
		value, err = mach.Space.Read8(testcase.Addr)
		assert.NoError(err)
		assert.Equal(testcase.Want, value, fmt.Sprintf("%+v", testcase))
	}

	// Scribbling over a table and rebuilding restores it.
	err = mach.Space.Write8(lay.ProjLL+0xab, 0xee)
	assert.NoError(err)
	assert.NoError(mach.BuildTables())

	value, err := mach.Space.Read8(lay.ProjLL + 0xab)
	assert.NoError(err)
	assert.Equal(uint8(0x0b), value)
}

func TestMachineAdd8(t *testing.T) {
	assert := assert.New(t)

	mach, err := NewMachine(nil)
	assert.NoError(err)

	table := [](struct {
		Opa   uint8
		Opb   uint8
		Sum   uint8
		Carry bool
	}){
		{Opa: 0x00, Opb: 0x00, Sum: 0x00, Carry: false},
		{Opa: 0x0f, Opb: 0x01, Sum: 0x10, Carry: true},
		{Opa: 0x7f, Opb: 0x01, Sum: 0x80, Carry: true},
		{Opa: 0xff, Opb: 0xff, Sum: 0xfe, Carry: true},
		{Opa: 0x2b, Opb: 0x19, Sum: 0x44, Carry: true},
		{Opa: 0x12, Opb: 0x34, Sum: 0x46, Carry: false},
		{Opa: 0xa0, Opb: 0x0a, Sum: 0xaa, Carry: false},
	}

	for _, testcase := range table {
		sum, err := mach.Add8(testcase.Opa, testcase.Opb)
		assert.NoError(err, fmt.Sprintf("%+v", testcase))
		assert.Equal(testcase.Sum, sum, fmt.Sprintf("%+v", testcase))
		assert.Equal(testcase.Carry, mach.LowCarry(), fmt.Sprintf("%+v", testcase))

		assert.Equal(microcode.CHAIN_RECORDS, mach.Engine.Records)
		assert.Equal(microcode.CHAIN_RECORDS, mach.Engine.Beats)
	}
}

func TestMachineSweep(t *testing.T) {
	assert := assert.New(t)

	mach, err := NewMachine(nil)
	assert.NoError(err)

	for a := range 256 {
		for b := range 256 {
			sum, err := mach.Add8(uint8(a), uint8(b))
			assert.NoError(err)
			assert.Equal(uint8(a+b), sum, fmt.Sprintf("%#02x + %#02x", a, b))
			assert.Equal((a&0x0f)+(b&0x0f) >= 0x10, mach.LowCarry(),
				fmt.Sprintf("%#02x + %#02x", a, b))
		}
	}
}

func TestMachineChainReuse(t *testing.T) {
	assert := assert.New(t)

	mach, err := NewMachine(nil)
	assert.NoError(err)

	assert.Nil(mach.chain)
	assert.False(mach.LowCarry())

	sum, err := mach.Add8(0x01, 0x02)
	assert.NoError(err)
	assert.Equal(uint8(0x03), sum)
	assert.NotNil(mach.chain)

	compiled := mach.chain
	sum, err = mach.Add8(0xf0, 0x13)
	assert.NoError(err)
	assert.Equal(uint8(0x03), sum)
	assert.Same(compiled, mach.chain)
}

type testFS struct {
	files map[string]*bytes.Buffer
}

func (tfs *testFS) Create(name string) (file io.WriteCloser, err error) {
	buffer := &bytes.Buffer{}
	tfs.files[name] = buffer
	file = &testFile{Buffer: buffer}

	return
}

type testFile struct {
	*bytes.Buffer
}

func (tf *testFile) Close() error {
	return nil
}

func TestMachineSnapshot(t *testing.T) {
	assert := assert.New(t)

	mach, err := NewMachine(nil)
	assert.NoError(err)

	sum, err := mach.Add8(0x12, 0x34)
	assert.NoError(err)
	assert.Equal(uint8(0x46), sum)

	tfs := &testFS{files: map[string]*bytes.Buffer{}}
	assert.NoError(mach.Snapshot(tfs))

	image, ok := tfs.files["ram.bin"]
	assert.True(ok)
	if !ok {
		return
	}
	assert.Equal(int(mach.Plan.RamSize), image.Len())

	// A fresh machine restored from the snapshot holds the run's leftovers.
	other, err := NewMachine(nil)
	assert.NoError(err)

	err = other.Restore(fstest.MapFS{
		"ram.bin": &fstest.MapFile{Data: image.Bytes()},
	})
	assert.NoError(err)

	value, err := other.Space.Read8(other.Plan.Result)
	assert.NoError(err)
	assert.Equal(uint8(0x46), value)

	sum, err = other.Add8(0x40, 0x02)
	assert.NoError(err)
	assert.Equal(uint8(0x42), sum)

	// Restores are strict about the image.
	err = other.Restore(fstest.MapFS{})
	assert.ErrorIs(err, fs.ErrNotExist)

	err = other.Restore(fstest.MapFS{
		"ram.bin": &fstest.MapFile{Data: []byte{1, 2, 3}},
	})
	assert.ErrorIs(err, dmac.ErrRegionSize{Name: "ram", Want: int(mach.Plan.RamSize), Got: 3})
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	found := map[string]string{}
	for key, value := range Defines() {
		found[key] = value
	}

	assert.Equal(fmt.Sprintf("%#x", RAM_BASE), found["RAM_BASE"])
	assert.Contains(found, "LUT_PACK_SIZE")
	assert.Contains(found, "DMAC_DESC_BYTES")
	assert.Contains(found, "CHAIN_RECORDS")
}
