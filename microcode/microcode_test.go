package microcode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnMamish/samdma21-memputer/dmac"
	"github.com/johnMamish/samdma21-memputer/lut"
)

const test_base = uint32(0x20000000)

func TestLayoutValidate(t *testing.T) {
	assert := assert.New(t)

	layout := AutoLayout(test_base)
	assert.NoError(layout.Validate())

	table := [](struct {
		Name   string
		Mutate func(*Layout)
		Err    error
	}){
		{Name: "pack-align", Mutate: func(l *Layout) { l.Pack += 0x100 },
			Err: ErrLayoutAlign{Name: "pack", Addr: test_base + 0x100, Align: lut.PACK_ALIGN}},
		{Name: "proj-align", Mutate: func(l *Layout) { l.ProjLH += 4 },
			Err: ErrLayoutAlign{Name: "proj-lh", Addr: test_base + 0x1104, Align: lut.TABLE_ALIGN}},
		{Name: "pair-align", Mutate: func(l *Layout) { l.AddPair += 0x100 },
			Err: ErrLayoutAlign{Name: "add-pair", Addr: test_base + 0x10100, Align: ADD_PAIR_ALIGN}},
		{Name: "pair-in-pack-frame", Mutate: func(l *Layout) { l.AddPair = l.Pack },
			Err: ErrLayoutOverlap{Name: "add-pair", Over: "pack"}},
		{Name: "carry-on-carry", Mutate: func(l *Layout) { l.CarryWC = l.CarryNC },
			Err: ErrLayoutOverlap{Name: "carry-wc", Over: "carry-nc"}},
		{Name: "scratch-in-table", Mutate: func(l *Layout) { l.Scratch = l.Compare + 8 },
			Err: ErrLayoutOverlap{Name: "scratch", Over: "compare"}},
	}

	for _, testcase := range table {
		broken := AutoLayout(test_base)
		testcase.Mutate(&broken)
		assert.ErrorIs(broken.Validate(), testcase.Err, testcase.Name)
	}
}

func TestLayoutPlacements(t *testing.T) {
	assert := assert.New(t)

	layout := AutoLayout(test_base)

	placed := map[lut.Kind]uint32{}
	for kind, addr := range layout.Placements() {
		placed[kind] = addr
	}

	assert.Len(placed, 10)
	assert.Equal(test_base, placed[lut.LUT_PACK])
	assert.Equal(test_base+0x1000, placed[lut.LUT_LO_TO_LO])
	assert.Equal(test_base+0x1300, placed[lut.LUT_HI_TO_LO])
	assert.Equal(test_base+0x10000, placed[lut.LUT_ADD_NC])
	assert.Equal(test_base+0x10100, placed[lut.LUT_ADD_WC])
	assert.Equal(test_base+0x1400, placed[lut.LUT_CARRY_NC])
	assert.Equal(test_base+0x1600, placed[lut.LUT_CMP_EQ])

	// Both add planes stay inside the pair's frame.
	assert.Equal(placed[lut.LUT_ADD_NC]+ADD_WITH_CARRY, placed[lut.LUT_ADD_WC])
}

func testCompile(t *testing.T) (chain *Chain, plan Plan) {
	t.Helper()
	assert := assert.New(t)

	plan = DefaultPlan(test_base)
	comp := &Compiler{Layout: plan.Layout}

	arena := make([]byte, CHAIN_BYTES)
	chain, err := comp.Add8(arena, plan.Arena, plan.Opa, plan.Opb, plan.Result)
	assert.NoError(err)
	assert.NotNil(chain)

	return
}

func TestAdd8Compile(t *testing.T) {
	assert := assert.New(t)

	chain, plan := testCompile(t)
	assert.NoError(Lint(chain))

	records := []dmac.Descriptor{}
	for n, desc := range chain.Records() {
		assert.Equal(len(records), n)
		records = append(records, desc)
	}
	assert.Len(records, CHAIN_RECORDS)

	src := func(n int, b int) uint32 {
		return chain.Head + uint32(n*dmac.DESC_BYTES) + dmac.OFF_SRCADDR + uint32(b)
	}

	for n, desc := range records {
		assert.True(desc.Control.Valid(), fmt.Sprintf("record %d", n))
		assert.Equal(uint16(1), desc.Count, fmt.Sprintf("record %d", n))
		assert.Equal(dmac.BEAT_BYTE, desc.Control.Size(), fmt.Sprintf("record %d", n))
	}

	// The operands feed the projection lookups of both passes.
	assert.Equal(plan.Opa, records[0].SrcAddr)
	assert.Equal(src(2, 0), records[0].DstAddr)
	assert.Equal(plan.Opb, records[1].SrcAddr)
	assert.Equal(plan.Opa, records[9].SrcAddr)
	assert.Equal(plan.Opb, records[10].SrcAddr)

	// The pack lookups take one patched byte per nybble.
	assert.Equal(plan.Layout.Pack, records[4].SrcAddr)
	assert.Equal(src(4, 1), records[2].DstAddr)
	assert.Equal(src(4, 0), records[3].DstAddr)

	// The carry byte lands in bits 8..15 of the high add's source.
	assert.Equal(plan.Layout.CarryNC, records[8].SrcAddr)
	assert.Equal(src(15, 1), records[8].DstAddr)
	assert.Equal(plan.Layout.AddPair, records[15].SrcAddr)

	// Both sum nybbles land in the final pack lookup's source.
	assert.Equal(src(16, 0), records[7].DstAddr)
	assert.Equal(src(16, 1), records[15].DstAddr)
	assert.Equal(plan.Result, records[16].DstAddr)

	// Only the final record interrupts, parking on itself.
	for n, desc := range records[:CHAIN_RECORDS-1] {
		assert.Equal(dmac.BLOCK_NOACT, desc.Control.Act(), fmt.Sprintf("record %d", n))
		assert.Equal(chain.Head+uint32((n+1)*dmac.DESC_BYTES), desc.Link, fmt.Sprintf("record %d", n))
	}
	final := records[CHAIN_RECORDS-1]
	assert.Equal(dmac.BLOCK_INT, final.Control.Act())
	assert.Equal(chain.Head+uint32((CHAIN_RECORDS-1)*dmac.DESC_BYTES), final.Link)
}

func TestAdd8Errors(t *testing.T) {
	assert := assert.New(t)

	plan := DefaultPlan(test_base)
	comp := &Compiler{Layout: plan.Layout}
	arena := make([]byte, CHAIN_BYTES)

	_, err := comp.Add8(make([]byte, CHAIN_BYTES-1), plan.Arena, plan.Opa, plan.Opb, plan.Result)
	assert.ErrorIs(err, ErrArenaSize(CHAIN_BYTES-1))

	_, err = comp.Add8(arena, plan.Arena+4, plan.Opa, plan.Opb, plan.Result)
	assert.ErrorIs(err, dmac.ErrAlign{Addr: plan.Arena + 4, Align: dmac.DESC_ALIGN})

	_, err = comp.Add8(arena, plan.Arena, plan.Arena+0x20, plan.Opb, plan.Result)
	assert.ErrorIs(err, ErrOperand{Name: "opa", Addr: plan.Arena + 0x20})

	_, err = comp.Add8(arena, plan.Arena, plan.Opa, plan.Layout.Scratch+1, plan.Result)
	assert.ErrorIs(err, ErrOperand{Name: "opb", Addr: plan.Layout.Scratch + 1})

	_, err = comp.Add8(arena, plan.Arena, plan.Opa, plan.Opb, plan.Arena+CHAIN_BYTES-1)
	assert.ErrorIs(err, ErrOperand{Name: "result", Addr: plan.Arena + CHAIN_BYTES - 1})

	// The result may alias an operand.
	_, err = comp.Add8(arena, plan.Arena, plan.Opa, plan.Opb, plan.Opa)
	assert.NoError(err)

	broken := &Compiler{Layout: plan.Layout}
	broken.Layout.Pack += 4
	_, err = broken.Add8(arena, plan.Arena, plan.Opa, plan.Opb, plan.Result)
	assert.ErrorIs(err, ErrLayoutAlign{Name: "pack", Addr: plan.Layout.Pack + 4, Align: lut.PACK_ALIGN})
}

func TestLint(t *testing.T) {
	assert := assert.New(t)

	mutate := func(chain *Chain, n int, fn func(*dmac.Descriptor)) {
		var desc dmac.Descriptor
		assert.NoError(desc.Unmarshal(chain.Arena[n*dmac.DESC_BYTES:]))
		fn(&desc)
		assert.NoError(desc.Marshal(chain.Arena[n*dmac.DESC_BYTES:]))
	}

	table := [](struct {
		Name   string
		Record int
		Mutate func(*dmac.Descriptor)
		Err    error
	}){
		{Name: "invalid", Record: 3,
			Mutate: func(desc *dmac.Descriptor) { desc.Control &^= 1 },
			Err:    dmac.ErrRecordInvalid},
		{Name: "link-gap", Record: 5,
			Mutate: func(desc *dmac.Descriptor) { desc.Link += dmac.DESC_BYTES },
			Err:    ErrLintLink},
		{Name: "tail-escape", Record: CHAIN_RECORDS - 1,
			Mutate: func(desc *dmac.Descriptor) { desc.Link -= dmac.DESC_BYTES },
			Err:    ErrLintLink},
		{Name: "patch-wide", Record: 0,
			Mutate: func(desc *dmac.Descriptor) { desc.Count = 2 },
			Err:    ErrLintPatchWide},
		{Name: "patch-control", Record: 0,
			Mutate: func(desc *dmac.Descriptor) { desc.DstAddr -= dmac.OFF_SRCADDR },
			Err:    ErrLintPatchField},
		{Name: "patch-link", Record: 0,
			Mutate: func(desc *dmac.Descriptor) { desc.DstAddr += 8 },
			Err:    ErrLintPatchField},
		{Name: "patch-executed", Record: 9,
			Mutate: func(desc *dmac.Descriptor) {
				desc.DstAddr = test_base + 0x2000 + 2*dmac.DESC_BYTES + dmac.OFF_SRCADDR
			},
			Err: ErrLintPatchOrder},
	}

	for _, testcase := range table {
		chain, _ := testCompile(t)
		mutate(chain, testcase.Record, testcase.Mutate)

		err := Lint(chain)
		assert.ErrorIs(err, testcase.Err, testcase.Name)

		var located ErrLint
		assert.ErrorAs(err, &located, testcase.Name)
		assert.Equal(testcase.Record, located.Record, testcase.Name)
	}

	// Two records writing the same patch byte.
	chain, _ := testCompile(t)
	mutate(chain, 1, func(desc *dmac.Descriptor) { desc.DstAddr = chain.Head + 2*dmac.DESC_BYTES + dmac.OFF_SRCADDR })
	assert.ErrorIs(Lint(chain), ErrLintPatchDup)

	// Arenas must hold whole records.
	chain, _ = testCompile(t)
	chain.Arena = chain.Arena[:CHAIN_BYTES-4]
	assert.ErrorIs(Lint(chain), ErrArenaSize(CHAIN_BYTES-4))
}

// Compile a chain over real tables and let the transfer engine do the
// arithmetic end to end.
func TestAdd8Runs(t *testing.T) {
	assert := assert.New(t)

	plan := DefaultPlan(test_base)

	space := &dmac.Space{}
	_, err := space.Map("ram", plan.Ram, plan.RamSize)
	assert.NoError(err)

	for kind, addr := range plan.Layout.Placements() {
		table, err := space.Slice(addr, uint32(kind.Size()))
		assert.NoError(err)

		if kind == lut.LUT_CMP_EQ {
			assert.NoError(lut.Build(kind, table, 0x01, 0x00))
		} else {
			assert.NoError(lut.Build(kind, table))
		}
	}

	arena, err := space.Slice(plan.Arena, CHAIN_BYTES)
	assert.NoError(err)

	comp := &Compiler{Layout: plan.Layout}
	chain, err := comp.Add8(arena, plan.Arena, plan.Opa, plan.Opb, plan.Result)
	assert.NoError(err)
	assert.NoError(Lint(chain))

	eng := dmac.NewEngine(space)

	assert.NoError(space.Write8(plan.Opa, 0x2b))
	assert.NoError(space.Write8(plan.Opb, 0x19))

	assert.NoError(eng.Start(chain.Head))
	assert.NoError(eng.Run())

	sum, err := space.Read8(plan.Result)
	assert.NoError(err)
	assert.Equal(uint8(0x44), sum)

	// The low-pass carry (0xb + 0x9 overflows) is visible in the patched
	// high add record.
	carry := chain.Arena[15*dmac.DESC_BYTES+dmac.OFF_SRCADDR+1]
	assert.Equal(uint8(0x01), carry)

	assert.Equal(CHAIN_RECORDS, eng.Records)
	assert.Equal(CHAIN_RECORDS, eng.Beats)
	assert.Len(eng.Complete, 1)
}
