// Copyright 2025, John Mamish

package dmac

import (
	"log"
)

// ENGINE_MAX_RECORDS is the default runaway guard. A well-formed chain ends
// in a self-link or zero link long before this.
const ENGINE_MAX_RECORDS = 4096

// Engine is the software transfer sequencer. It walks one linked list of
// transfer records at a time, fetching each record from the Space as it
// reaches it, so records patched by earlier transfers execute in their
// patched form.
type Engine struct {
	Verbose bool   // Set to enable transfer tracing.
	Space   *Space // Memory the records and payloads live in.

	MaxRecords int // Records allowed per Start before a runaway error.

	Complete chan Descriptor // Records whose block action raised an interrupt.
	Event    chan Descriptor // Event pulses; dropped when nobody listens.

	head    uint32 // Next record address.
	running bool
	suspend bool

	Records int // Records executed since Start.
	Beats   int // Beats moved since Start.
}

// NewEngine creates an idle engine over the given space.
func NewEngine(space *Space) (eng *Engine) {
	eng = &Engine{
		Space:      space,
		MaxRecords: ENGINE_MAX_RECORDS,
		Complete:   make(chan Descriptor, 8),
		Event:      make(chan Descriptor, 8),
	}

	return
}

// Busy reports whether a chain is underway.
func (eng *Engine) Busy() bool {
	return eng.running
}

// Suspended reports whether the chain hit a suspending block action and is
// waiting for Resume.
func (eng *Engine) Suspended() bool {
	return eng.running && eng.suspend
}

// Head returns the address of the next record to execute.
func (eng *Engine) Head() uint32 {
	return eng.head
}

// Start points the engine at the first record of a chain. Only one chain
// runs at a time; starting a busy engine fails.
func (eng *Engine) Start(head uint32) (err error) {
	if eng.running {
		err = ErrEngineBusy
		return
	}
	if head == 0 || head%DESC_ALIGN != 0 {
		err = ErrAlign{Addr: head, Align: DESC_ALIGN}
		return
	}

	eng.head = head
	eng.running = true
	eng.suspend = false
	eng.Records = 0
	eng.Beats = 0

	if eng.Verbose {
		log.Printf("dmac: start %08x", head)
	}

	return
}

// Abort stops the chain between records. Memory keeps whatever the executed
// records already wrote; nothing is rolled back.
func (eng *Engine) Abort() {
	if eng.Verbose && eng.running {
		log.Printf("dmac: abort at %08x", eng.head)
	}

	eng.running = false
	eng.suspend = false
	eng.head = 0
}

// Resume clears a suspension so Tick can continue the chain.
func (eng *Engine) Resume() {
	eng.suspend = false
}

// Tick executes the record at the head and follows its link. A self-link or
// zero link completes the chain. Errors stop the engine with the head still
// naming the failed record.
func (eng *Engine) Tick() (done bool, err error) {
	if !eng.running {
		err = ErrEngineIdle
		return
	}
	if eng.suspend {
		err = ErrEngineSuspended
		return
	}

	addr := eng.head
	defer func() {
		if err != nil {
			eng.running = false
			err = &ErrRecord{Addr: addr, Err: err}
		}
	}()

	if eng.Records >= eng.MaxRecords {
		err = ErrEngineRunaway
		return
	}

	data, err := eng.Space.Slice(addr, DESC_BYTES)
	if err != nil {
		return
	}

	var desc Descriptor
	err = desc.Unmarshal(data)
	if err != nil {
		return
	}

	if eng.Verbose {
		log.Printf("dmac: %08x: %v", addr, desc)
	}

	if !desc.Control.Valid() {
		err = ErrRecordInvalid
		return
	}

	width := desc.Control.Size().Bytes()
	if width == 0 {
		err = ErrRecordBeatSize
		return
	}

	err = eng.transfer(desc, width)
	if err != nil {
		return
	}

	eng.Records++

	act := desc.Control.Act()
	if act == BLOCK_INT || act == BLOCK_BOTH {
		select {
		case eng.Complete <- desc:
		default:
		}
	}
	if desc.Control.Event() == EVENT_BLOCK {
		select {
		case eng.Event <- desc:
		default:
		}
	}

	if desc.Link == 0 || desc.Link == addr {
		done = true
		eng.running = false
		eng.head = 0

		if eng.Verbose {
			log.Printf("dmac: done, %d records %d beats", eng.Records, eng.Beats)
		}

		return
	}

	if desc.Link%DESC_ALIGN != 0 {
		err = ErrAlign{Addr: desc.Link, Align: DESC_ALIGN}
		return
	}

	if act == BLOCK_SUSPEND || act == BLOCK_BOTH {
		eng.suspend = true
	}

	eng.head = desc.Link

	return
}

// transfer moves the record's beats. Source and destination advance
// independently; the side selected by the step select advances by the beat
// width shifted by the step size, the other side by the plain width.
func (eng *Engine) transfer(desc Descriptor, width uint32) (err error) {
	src := desc.SrcAddr
	dst := desc.DstAddr

	if src%width != 0 {
		err = ErrAlign{Addr: src, Align: width}
		return
	}
	if dst%width != 0 {
		err = ErrAlign{Addr: dst, Align: width}
		return
	}

	srcStep := width
	dstStep := width
	switch desc.Control.StepSel() {
	case STEP_SRC:
		srcStep = width << desc.Control.StepSize()
	case STEP_DST:
		dstStep = width << desc.Control.StepSize()
	}

	for range desc.Count {
		switch width {
		case 1:
			var value uint8
			value, err = eng.Space.Read8(src)
			if err != nil {
				return
			}
			err = eng.Space.Write8(dst, value)
		case 2:
			var value uint16
			value, err = eng.Space.Read16(src)
			if err != nil {
				return
			}
			err = eng.Space.Write16(dst, value)
		case 4:
			var value uint32
			value, err = eng.Space.Read32(src)
			if err != nil {
				return
			}
			err = eng.Space.Write32(dst, value)
		}
		if err != nil {
			return
		}

		if desc.Control.SrcInc() {
			src += srcStep
		}
		if desc.Control.DstInc() {
			dst += dstStep
		}

		eng.Beats++

		if desc.Control.Event() == EVENT_BEAT {
			select {
			case eng.Event <- desc:
			default:
			}
		}
	}

	return
}

// Run ticks the engine until the chain completes. A suspension surfaces as
// ErrEngineSuspended; Resume and call Run again to continue.
func (eng *Engine) Run() (err error) {
	for {
		var done bool
		done, err = eng.Tick()
		if err != nil || done {
			return
		}
	}
}
