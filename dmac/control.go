package dmac

import (
	"fmt"
)

// BeatSize selects the width of a single beat.
type BeatSize int

//go:generate go tool stringer -linecomment -type=BeatSize
const (
	BEAT_BYTE  = BeatSize(0) // byte
	BEAT_HWORD = BeatSize(1) // hword
	BEAT_WORD  = BeatSize(2) // word
)

// Bytes returns the beat width in bytes, or 0 for the reserved encoding.
func (size BeatSize) Bytes() uint32 {
	if size < BEAT_BYTE || size > BEAT_WORD {
		return 0
	}
	return 1 << size
}

// BlockAct selects what the sequencer does after the last beat of a record.
type BlockAct int

//go:generate go tool stringer -linecomment -type=BlockAct
const (
	BLOCK_NOACT   = BlockAct(0) // noact
	BLOCK_INT     = BlockAct(1) // int
	BLOCK_SUSPEND = BlockAct(2) // suspend
	BLOCK_BOTH    = BlockAct(3) // both
)

// EventSel selects when a record pulses the event output. The encoding
// between block and beat is reserved.
type EventSel int

//go:generate go tool stringer -linecomment -type=EventSel
const (
	EVENT_NONE  = EventSel(0) // none
	EVENT_BLOCK = EventSel(1) // block
	EVENT_BEAT  = EventSel(3) // beat
)

// StepSel selects which address the step size multiplies.
type StepSel int

//go:generate go tool stringer -linecomment -type=StepSel
const (
	STEP_DST = StepSel(0) // dst
	STEP_SRC = StepSel(1) // src
)

// Control is the BTCTRL halfword of a transfer record.
//
//	bit  0     valid
//	bits 1-2   event select
//	bits 3-4   block action
//	bits 8-9   beat size
//	bit  10    source increment
//	bit  11    destination increment
//	bit  12    step select
//	bits 13-15 step size (log2 of the beat multiple)
//
// The zero value is an invalid (never-executed) record.
type Control uint16

// MakeControl packs a control halfword.
func MakeControl(valid bool, event EventSel, act BlockAct, size BeatSize, srcinc bool, dstinc bool, sel StepSel, step int) (ctrl Control) {
	if valid {
		ctrl |= 1 << 0
	}
	ctrl |= Control(event&0x3) << 1
	ctrl |= Control(act&0x3) << 3
	ctrl |= Control(size&0x3) << 8
	if srcinc {
		ctrl |= 1 << 10
	}
	if dstinc {
		ctrl |= 1 << 11
	}
	ctrl |= Control(sel&0x1) << 12
	ctrl |= Control(step&0x7) << 13

	return
}

// MakeControlByte packs the single-byte no-increment control halfword that
// table lookups and patch transfers use.
func MakeControlByte(act BlockAct) Control {
	return MakeControl(true, EVENT_NONE, act, BEAT_BYTE, false, false, STEP_DST, 0)
}

// Valid reports whether the record may be executed.
func (ctrl Control) Valid() bool {
	return (ctrl & 1) != 0
}

// Event returns the event select field.
func (ctrl Control) Event() EventSel {
	return EventSel((ctrl >> 1) & 0x3)
}

// Act returns the block action field.
func (ctrl Control) Act() BlockAct {
	return BlockAct((ctrl >> 3) & 0x3)
}

// Size returns the beat size field.
func (ctrl Control) Size() BeatSize {
	return BeatSize((ctrl >> 8) & 0x3)
}

// SrcInc reports whether the source address advances per beat.
func (ctrl Control) SrcInc() bool {
	return (ctrl & (1 << 10)) != 0
}

// DstInc reports whether the destination address advances per beat.
func (ctrl Control) DstInc() bool {
	return (ctrl & (1 << 11)) != 0
}

// StepSel returns which address the step size applies to.
func (ctrl Control) StepSel() StepSel {
	return StepSel((ctrl >> 12) & 0x1)
}

// StepSize returns the step exponent; the stepped address advances by the
// beat width shifted left this much.
func (ctrl Control) StepSize() int {
	return int((ctrl >> 13) & 0x7)
}

// String returns the decoded control halfword.
func (ctrl Control) String() (out string) {
	out = fmt.Sprintf("%v.%v.%v", ctrl.Size(), ctrl.Act(), ctrl.Event())

	if ctrl.SrcInc() {
		out += ".src+"
		if ctrl.StepSel() == STEP_SRC && ctrl.StepSize() != 0 {
			out += fmt.Sprintf("x%d", 1<<ctrl.StepSize())
		}
	}
	if ctrl.DstInc() {
		out += ".dst+"
		if ctrl.StepSel() == STEP_DST && ctrl.StepSize() != 0 {
			out += fmt.Sprintf("x%d", 1<<ctrl.StepSize())
		}
	}

	if !ctrl.Valid() {
		out = "invalid." + out
	}

	return
}
