package microcode

import (
	"errors"

	"github.com/johnMamish/samdma21-memputer/translate"
)

var f = translate.From

var (
	// Lint violations
	ErrLintLink       = errors.New(f("link breaks the chain"))
	ErrLintPatchWide  = errors.New(f("patch wider than one byte"))
	ErrLintPatchField = errors.New(f("patch outside a source address"))
	ErrLintPatchOrder = errors.New(f("patch targets an executed record"))
	ErrLintPatchDup   = errors.New(f("patched byte has two writers"))
)

// ErrArenaSize indicates an arena that cannot hold a whole chain.
type ErrArenaSize int

func (err ErrArenaSize) Error() string {
	return f("arena needs %d bytes, got %d", CHAIN_BYTES, int(err))
}

// ErrLint locates a lint violation at its record.
type ErrLint struct {
	Record int
	Err    error
}

func (err ErrLint) Error() string {
	return f("record %d %v", err.Record, err.Err)
}

func (err ErrLint) Unwrap() error {
	return err.Err
}

// ErrOperand indicates an operand placed inside the chain's working
// storage, where running the chain would corrupt it.
type ErrOperand struct {
	Name string
	Addr uint32
}

func (err ErrOperand) Error() string {
	return f("%v at %#08x inside working storage", err.Name, err.Addr)
}

func (err ErrOperand) Is(target error) (ok bool) {
	_, ok = target.(ErrOperand)
	return
}

// ErrLayoutAlign indicates a table placed off its required alignment.
type ErrLayoutAlign struct {
	Name  string
	Addr  uint32
	Align uint32
}

func (err ErrLayoutAlign) Error() string {
	return f("%v at %#08x needs %d-byte alignment", err.Name, err.Addr, err.Align)
}

func (err ErrLayoutAlign) Is(target error) (ok bool) {
	_, ok = target.(ErrLayoutAlign)
	return
}

// ErrLayoutOverlap indicates two placements claiming the same addresses.
type ErrLayoutOverlap struct {
	Name string
	Over string
}

func (err ErrLayoutOverlap) Error() string {
	return f("%v overlaps %v", err.Name, err.Over)
}

func (err ErrLayoutOverlap) Is(target error) (ok bool) {
	_, ok = target.(ErrLayoutOverlap)
	return
}

// ErrPlanBounds indicates a placement outside the plan's RAM region.
type ErrPlanBounds struct {
	Name string
	Addr uint32
}

func (err ErrPlanBounds) Error() string {
	return f("%v at %#08x outside ram", err.Name, err.Addr)
}

func (err ErrPlanBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrPlanBounds)
	return
}

// ErrPlanSymbol indicates a required plan script global that is missing.
type ErrPlanSymbol string

func (err ErrPlanSymbol) Error() string {
	return f("plan symbol %v missing", string(err))
}

// ErrPlanValue indicates a plan script global that is not a 32-bit address.
type ErrPlanValue string

func (err ErrPlanValue) Error() string {
	return f("plan symbol %v is not an address", string(err))
}
