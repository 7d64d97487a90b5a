package powblock

import "github.com/probeum/pow-consensus/powsdk"

// PairedFork walks two chains in lockstep, advancing each side to its
// previous_id on every step (§4.3). It yields pairs; iteration ends the
// moment either side fails to load or parse.
type PairedFork struct {
	svc   powsdk.Service
	left  powsdk.BlockId
	right powsdk.BlockId
	done  bool
}

// NewPairedFork begins a lockstep walk from leftHead and rightHead.
func NewPairedFork(leftHead, rightHead powsdk.BlockId, svc powsdk.Service) *PairedFork {
	return &PairedFork{svc: svc, left: leftHead, right: rightHead}
}

// Next advances both sides by one step and returns the pair, or (nil, nil,
// false) once either side can't be loaded and parsed.
func (p *PairedFork) Next() (*BlockHeader, *BlockHeader, bool) {
	if p.done {
		return nil, nil, false
	}

	left, ok := p.advance(p.left)
	if !ok {
		p.done = true
		return nil, nil, false
	}
	right, ok := p.advance(p.right)
	if !ok {
		p.done = true
		return nil, nil, false
	}

	p.left = left.PreviousId
	p.right = right.PreviousId
	return left, right, true
}

func (p *PairedFork) advance(id powsdk.BlockId) (*BlockHeader, bool) {
	block, err := powsdk.GetBlock(p.svc, id)
	if err != nil {
		return nil, false
	}
	header, err := NewBlockHeader(block)
	if err != nil {
		return nil, false
	}
	return header, true
}

// TakeWhileDivergent walks pairs while (a) the two sides' ids differ, (b)
// neither is genesis, and (c) both carry PoW consensus — the three
// take_while predicates resolveFork composes to find the common ancestor
// (§4.3, §4.7).
func (p *PairedFork) TakeWhileDivergent() (left, right []*BlockHeader) {
	for {
		l, r, ok := p.Next()
		if !ok {
			return left, right
		}
		if l.BlockId.Equal(r.BlockId) {
			return left, right
		}
		if l.IsGenesis() || r.IsGenesis() {
			return left, right
		}
		if !l.Consensus.IsPoW() || !r.Consensus.IsPoW() {
			return left, right
		}
		left = append(left, l)
		right = append(right, r)
	}
}
