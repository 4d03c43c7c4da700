// Copyright 2025, John Mamish

package microcode

import (
	"iter"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/johnMamish/samdma21-memputer/dmac"
)

// Plan is a complete memory plan: one RAM region, the table layout inside
// it, the chain arena, and the operand bytes.
type Plan struct {
	Ram     uint32 // RAM region base.
	RamSize uint32 // RAM region size in bytes.
	Layout  Layout // Table and scratch placement.
	Arena   uint32 // Chain arena, CHAIN_BYTES long.
	Opa     uint32 // First addend byte.
	Opb     uint32 // Second addend byte.
	Result  uint32 // Sum byte.
}

// DefaultPlan lays everything out above base: two table frames per
// AutoLayout, the arena after the first frame's tables, and the operand
// bytes after that.
func DefaultPlan(base uint32) Plan {
	return Plan{
		Ram:     base,
		RamSize: 0x20000,
		Layout:  AutoLayout(base),
		Arena:   base + 0x2000,
		Opa:     base + 0x3000,
		Opb:     base + 0x3001,
		Result:  base + 0x3002,
	}
}

// Validate checks the layout, the arena's placement, and that every
// placement falls inside the RAM region.
func (plan *Plan) Validate() (err error) {
	err = plan.Layout.Validate()
	if err != nil {
		return
	}

	if plan.Arena == 0 || plan.Arena%dmac.DESC_ALIGN != 0 {
		err = dmac.ErrAlign{Addr: plan.Arena, Align: dmac.DESC_ALIGN}
		return
	}

	for _, placed := range plan.Layout.places() {
		if plan.Arena < placed.Addr+placed.Size && placed.Addr < plan.Arena+CHAIN_BYTES {
			err = ErrLayoutOverlap{Name: "arena", Over: placed.Name}
			return
		}
	}

	spans := append(plan.Layout.places(),
		place{Name: "arena", Addr: plan.Arena, Size: CHAIN_BYTES},
		place{Name: "opa", Addr: plan.Opa, Size: 1},
		place{Name: "opb", Addr: plan.Opb, Size: 1},
		place{Name: "result", Addr: plan.Result, Size: 1},
	)

	ramEnd := uint64(plan.Ram) + uint64(plan.RamSize)
	for _, span := range spans {
		if span.Addr < plan.Ram || uint64(span.Addr)+uint64(span.Size) > ramEnd {
			err = ErrPlanBounds{Name: span.Name, Addr: span.Addr}
			return
		}
	}

	return
}

// LoadPlan evaluates a starlark memory plan script. The script sees the
// geometry defines as predeclared integers and must define every plan
// field as a module global:
//
//	ram, ram_size,
//	pack, proj_ll, proj_lh, proj_hh, proj_hl,
//	add_pair, carry_nc, carry_wc, compare, scratch,
//	arena, opa, opb, result
//
// src follows starlark's ExecFile convention: nil reads the named file,
// otherwise a string, byte slice or reader supplies the text.
func LoadPlan(name string, src any, defines iter.Seq2[string, string]) (plan *Plan, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	pred := starlark.StringDict{}
	for key, str := range defines {
		value64, bad := strconv.ParseUint(str, 0, 32)
		if bad != nil {
			// Non-integer defines are of no use to a plan script.
			continue
		}
		pred[key] = starlark.MakeInt(int(value64))
	}

	dict, err := starlark.ExecFileOptions(&opts, &thread, name, src, pred)
	if err != nil {
		return
	}

	value := func(symbol string) (addr uint32) {
		if err != nil {
			return
		}
		st_value, ok := dict[symbol]
		if !ok {
			err = ErrPlanSymbol(symbol)
			return
		}
		st_int, ok := st_value.(starlark.Int)
		if !ok {
			err = ErrPlanValue(symbol)
			return
		}
		st_int64, ok := st_int.Int64()
		if !ok || st_int64 < 0 || st_int64 > 0xffffffff {
			err = ErrPlanValue(symbol)
			return
		}
		addr = uint32(st_int64)
		return
	}

	loaded := Plan{
		Ram:     value("ram"),
		RamSize: value("ram_size"),
		Layout: Layout{
			Pack:    value("pack"),
			ProjLL:  value("proj_ll"),
			ProjLH:  value("proj_lh"),
			ProjHH:  value("proj_hh"),
			ProjHL:  value("proj_hl"),
			AddPair: value("add_pair"),
			CarryNC: value("carry_nc"),
			CarryWC: value("carry_wc"),
			Compare: value("compare"),
			Scratch: value("scratch"),
		},
		Arena:  value("arena"),
		Opa:    value("opa"),
		Opb:    value("opb"),
		Result: value("result"),
	}
	if err != nil {
		return
	}

	err = loaded.Validate()
	if err != nil {
		return
	}

	plan = &loaded

	return
}
