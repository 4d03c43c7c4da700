// Copyright 2025, John Mamish

package machine

import (
	"fmt"
	"iter"
	"maps"

	"github.com/johnMamish/samdma21-memputer/dmac"
	"github.com/johnMamish/samdma21-memputer/internal"
	"github.com/johnMamish/samdma21-memputer/lut"
	"github.com/johnMamish/samdma21-memputer/microcode"
)

const (
	// RAM_BASE is the default RAM region base, the SAMD21 SRAM window.
	RAM_BASE = uint32(0x20000000)

	// COMPARE_EQ and COMPARE_NE are the sentinels built into the machine's
	// compare table.
	COMPARE_EQ = byte(0x01)
	COMPARE_NE = byte(0x00)
)

var _machine_defines = map[string]string{
	"RAM_BASE":   fmt.Sprintf("%#x", RAM_BASE),
	"COMPARE_EQ": fmt.Sprintf("%#x", COMPARE_EQ),
	"COMPARE_NE": fmt.Sprintf("%#x", COMPARE_NE),
}

// Defines returns an iterator over every geometry constant in the module.
// This is the predeclared vocabulary of memory plan scripts.
func Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_machine_defines),
		lut.Defines(),
		dmac.Defines(),
		microcode.Defines(),
	)
}

// Machine state. One mapped RAM region holding the tables, the chain arena
// and the operand bytes, plus the engine that runs chains over it.
type Machine struct {
	Verbose bool // If set, enables compiler and engine logging.

	Plan     microcode.Plan     // Memory plan the machine was mapped from.
	Space    *dmac.Space        // The modeled address space.
	Engine   *dmac.Engine       // The transfer sequencer.
	Compiler microcode.Compiler // Chain compiler over the plan's layout.

	chain  *microcode.Chain // Compiled add chain; the plan's addresses never move.
	tables bool
}

// NewMachine maps a machine over the given plan. A nil plan gets the
// default placement at RAM_BASE.
func NewMachine(plan *microcode.Plan) (mach *Machine, err error) {
	if plan == nil {
		auto := microcode.DefaultPlan(RAM_BASE)
		plan = &auto
	}

	err = plan.Validate()
	if err != nil {
		return
	}

	space := &dmac.Space{}
	_, err = space.Map("ram", plan.Ram, plan.RamSize)
	if err != nil {
		return
	}

	mach = &Machine{
		Plan:     *plan,
		Space:    space,
		Engine:   dmac.NewEngine(space),
		Compiler: microcode.Compiler{Layout: plan.Layout},
	}

	return
}

// BuildTables fills every table the plan places. Rebuilding is harmless;
// the builders overwrite their buffers end to end.
func (mach *Machine) BuildTables() (err error) {
	for kind, addr := range mach.Plan.Layout.Placements() {
		var table []byte
		table, err = mach.Space.Slice(addr, uint32(kind.Size()))
		if err != nil {
			return
		}

		if kind == lut.LUT_CMP_EQ {
			err = lut.Build(kind, table, COMPARE_EQ, COMPARE_NE)
		} else {
			err = lut.Build(kind, table)
		}
		if err != nil {
			return
		}
	}

	mach.tables = true

	return
}

// chainFor compiles and lints the add chain on first use. The chain is a
// pure function of the plan's addresses, and it rewrites every byte it
// patches, so one compiled copy serves every run.
func (mach *Machine) chainFor() (chain *microcode.Chain, err error) {
	if mach.chain != nil {
		chain = mach.chain
		return
	}

	arena, err := mach.Space.Slice(mach.Plan.Arena, microcode.CHAIN_BYTES)
	if err != nil {
		return
	}

	mach.Compiler.Verbose = mach.Verbose
	chain, err = mach.Compiler.Add8(arena, mach.Plan.Arena,
		mach.Plan.Opa, mach.Plan.Opb, mach.Plan.Result)
	if err != nil {
		return
	}

	err = microcode.Lint(chain)
	if err != nil {
		chain = nil
		return
	}

	mach.chain = chain

	return
}

// Add8 computes opa+opb modulo 256 through the transfer engine: operands
// into RAM, chain started, engine run to completion, result read back.
func (mach *Machine) Add8(opa uint8, opb uint8) (sum uint8, err error) {
	if !mach.tables {
		err = mach.BuildTables()
		if err != nil {
			return
		}
	}

	err = mach.Space.Write8(mach.Plan.Opa, opa)
	if err != nil {
		return
	}
	err = mach.Space.Write8(mach.Plan.Opb, opb)
	if err != nil {
		return
	}

	chain, err := mach.chainFor()
	if err != nil {
		return
	}

	mach.Engine.Verbose = mach.Verbose
	err = mach.Engine.Start(chain.Head)
	if err != nil {
		return
	}
	err = mach.Engine.Run()
	if err != nil {
		return
	}

	// Acknowledge the completion interrupt.
	select {
	case <-mach.Engine.Complete:
	default:
	}

	sum, err = mach.Space.Read8(mach.Plan.Result)

	return
}

// LowCarry reports the low-nybble carry of the last Add8, as captured in
// the patched chain.
func (mach *Machine) LowCarry() bool {
	if mach.chain == nil {
		return false
	}

	return mach.chain.LowCarry()
}

// Chain returns the compiled add chain, or nil before the first Add8.
func (mach *Machine) Chain() *microcode.Chain {
	return mach.chain
}
