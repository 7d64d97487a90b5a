package powblock

import (
	"github.com/probeum/pow-consensus/powsdk"
)

// Ancestors lazily walks predecessor blocks starting at (and including) the
// block named by startID, via repeated previous_id lookups through svc
// (§4.3). It is a pull-style iterator: nothing is fetched until Next is
// called, nothing is fetched past what the caller consumes, and it never
// revisits the starting block — the first call to Next yields the block
// named by startID itself.
type Ancestors struct {
	svc     powsdk.Service
	next    powsdk.BlockId
	done    bool
}

// NewAncestors begins an ancestor walk at startID.
func NewAncestors(startID powsdk.BlockId, svc powsdk.Service) *Ancestors {
	return &Ancestors{svc: svc, next: startID}
}

// Next returns the next header in the walk, or (nil, false) once the walk
// has terminated — either because a lookup or parse failed, which silently
// truncates the iteration (§7: UnknownBlock is terminal for ancestor walks).
func (a *Ancestors) Next() (*BlockHeader, bool) {
	if a.done {
		return nil, false
	}
	block, err := powsdk.GetBlock(a.svc, a.next)
	if err != nil {
		a.done = true
		return nil, false
	}
	header, err := NewBlockHeader(block)
	if err != nil {
		a.done = true
		return nil, false
	}
	a.next = header.PreviousId
	return header, true
}

// Take collects up to n headers from the walk, stopping early if the walk
// terminates first.
func (a *Ancestors) Take(n int) []*BlockHeader {
	out := make([]*BlockHeader, 0, n)
	for i := 0; i < n; i++ {
		h, ok := a.Next()
		if !ok {
			break
		}
		out = append(out, h)
	}
	return out
}

// TakeUpToWhilePoW collects up to n headers from the walk, stopping early at
// the first non-PoW header or at walk termination — the
// `.take(n).take_while(pow)` composition resolveFork uses to gather orphan
// ancestors (§4.7's resolve_fork).
func (a *Ancestors) TakeUpToWhilePoW(n int) []*BlockHeader {
	out := make([]*BlockHeader, 0, n)
	for i := 0; i < n; i++ {
		h, ok := a.Next()
		if !ok || !h.Consensus.IsPoW() {
			break
		}
		out = append(out, h)
	}
	return out
}
