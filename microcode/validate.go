package microcode

import (
	"github.com/retroenv/retrogolib/set"

	"github.com/johnMamish/samdma21-memputer/dmac"
)

// Lint checks the structural invariants a compiled chain relies on, before
// any transfer runs. The computational contract is not checked; a chain
// routed through wrong table contents lints clean and sums wrong.
//
// A clean chain has:
//   - an arena that is a whole number of records
//   - every record valid
//   - record n linking to record n+1, and the last record parking on
//     itself or linking to zero
//   - every transfer landing inside the arena (a patch edge) writing one
//     byte into the source address field of a record that has not executed
//     yet, with no byte patched twice
func Lint(chain *Chain) (err error) {
	if len(chain.Arena) < dmac.DESC_BYTES || len(chain.Arena)%dmac.DESC_BYTES != 0 {
		err = ErrArenaSize(len(chain.Arena))
		return
	}
	if chain.Head == 0 || chain.Head%dmac.DESC_ALIGN != 0 {
		err = dmac.ErrAlign{Addr: chain.Head, Align: dmac.DESC_ALIGN}
		return
	}

	count := len(chain.Arena) / dmac.DESC_BYTES
	last := count - 1
	patched := set.New[uint32]()

	for n, desc := range chain.Records() {
		if !desc.Control.Valid() {
			err = ErrLint{Record: n, Err: dmac.ErrRecordInvalid}
			return
		}

		self := chain.Head + uint32(n*dmac.DESC_BYTES)
		switch {
		case n < last && desc.Link != self+dmac.DESC_BYTES:
			err = ErrLint{Record: n, Err: ErrLintLink}
			return
		case n == last && desc.Link != self && desc.Link != 0:
			err = ErrLint{Record: n, Err: ErrLintLink}
			return
		}

		err = lintPatch(chain, n, desc, patched)
		if err != nil {
			return
		}
	}

	return
}

// lintPatch checks one record's destination against the patch edge rules
// when it lands inside the arena.
func lintPatch(chain *Chain, n int, desc dmac.Descriptor, patched set.Set[uint32]) (err error) {
	into := desc.DstAddr - chain.Head
	if desc.DstAddr < chain.Head || into >= uint32(len(chain.Arena)) {
		return
	}

	if desc.Count != 1 || desc.Control.Size() != dmac.BEAT_BYTE ||
		desc.Control.SrcInc() || desc.Control.DstInc() {
		err = ErrLint{Record: n, Err: ErrLintPatchWide}
		return
	}

	field := into % dmac.DESC_BYTES
	if field < dmac.OFF_SRCADDR || field >= dmac.OFF_DSTADDR {
		err = ErrLint{Record: n, Err: ErrLintPatchField}
		return
	}

	target := int(into / dmac.DESC_BYTES)
	if target <= n {
		err = ErrLint{Record: n, Err: ErrLintPatchOrder}
		return
	}

	if patched.Contains(desc.DstAddr) {
		err = ErrLint{Record: n, Err: ErrLintPatchDup}
		return
	}
	patched.Add(desc.DstAddr)

	return
}
