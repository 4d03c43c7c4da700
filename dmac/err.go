package dmac

import (
	"errors"

	"github.com/johnMamish/samdma21-memputer/translate"
)

var f = translate.From

var (
	// Engine errors
	ErrEngineBusy      = errors.New(f("engine busy"))
	ErrEngineIdle      = errors.New(f("engine idle"))
	ErrEngineSuspended = errors.New(f("engine suspended"))
	ErrEngineRunaway   = errors.New(f("record limit hit"))

	// Record decode errors
	ErrRecordInvalid  = errors.New(f("record not valid"))
	ErrRecordBeatSize = errors.New(f("beat size reserved"))

	// Mapping errors
	ErrRegionBounds = errors.New(f("region outside address space"))
)

// ErrBusFault indicates an access to an unmapped address.
type ErrBusFault uint32

func (err ErrBusFault) Error() string {
	return f("bus fault at %#08x", uint32(err))
}

func (err ErrBusFault) Is(target error) (ok bool) {
	_, ok = target.(ErrBusFault)
	return
}

// ErrAlign indicates an address that misses its required alignment.
type ErrAlign struct {
	Addr  uint32
	Align uint32
}

func (err ErrAlign) Error() string {
	return f("address %#08x not %d-byte aligned", err.Addr, err.Align)
}

func (err ErrAlign) Is(target error) (ok bool) {
	_, ok = target.(ErrAlign)
	return
}

// ErrRecord locates an engine error at the record that raised it.
type ErrRecord struct {
	Addr uint32
	Err  error
}

func (err *ErrRecord) Error() string {
	return f("record %#08x %v", err.Addr, err.Err)
}

func (err *ErrRecord) Unwrap() error {
	return err.Err
}

// ErrRegionName indicates a region name already in use.
type ErrRegionName string

func (err ErrRegionName) Error() string {
	return f("region %v already mapped", string(err))
}

// ErrRegionOverlap indicates two regions claiming the same addresses.
type ErrRegionOverlap struct {
	Name string
	Over string
}

func (err ErrRegionOverlap) Error() string {
	return f("region %v overlaps %v", err.Name, err.Over)
}

func (err ErrRegionOverlap) Is(target error) (ok bool) {
	_, ok = target.(ErrRegionOverlap)
	return
}

// ErrRegionSize indicates a region image of the wrong length.
type ErrRegionSize struct {
	Name string
	Want int
	Got  int
}

func (err ErrRegionSize) Error() string {
	return f("region %v image needs %d bytes, got %d", err.Name, err.Want, err.Got)
}

// ErrDescriptorSize indicates a record buffer shorter than the wire size.
type ErrDescriptorSize int

func (err ErrDescriptorSize) Error() string {
	return f("record needs %d bytes, got %d", DESC_BYTES, int(err))
}
