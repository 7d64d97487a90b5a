package pownode

import (
	"github.com/holiman/uint256"

	"github.com/probeum/pow-consensus/powblock"
)

// compareForks decides what to do with a newly valid block relative to the
// current chain head (§4.7).
func (n *Node) compareForks(cur, candidate *powblock.BlockHeader) error {
	if !candidate.Consensus.IsPoW() {
		return n.svc.IgnoreBlock(candidate.BlockId)
	}

	if !cur.Consensus.IsPoW() {
		return n.switchFromNonPoW(cur, candidate)
	}

	if candidate.BlockNum == cur.BlockNum+1 && candidate.PreviousId.Equal(cur.BlockId) {
		return n.svc.CommitBlock(candidate.BlockId)
	}

	return n.resolveFork(cur, candidate)
}

// switchFromNonPoW handles the consensus-mode-switch case: cur predates PoW
// (or isn't running it), so candidate is accepted only if cur is literally
// one of candidate's PoW ancestors.
func (n *Node) switchFromNonPoW(cur, candidate *powblock.BlockHeader) error {
	ancestors := powblock.NewAncestors(candidate.PreviousId, n.svc)
	for {
		h, ok := ancestors.Next()
		if !ok {
			return n.svc.IgnoreBlock(candidate.BlockId)
		}
		if h.BlockId.Equal(cur.BlockId) {
			return n.svc.CommitBlock(candidate.BlockId)
		}
		if !h.Consensus.IsPoW() {
			return n.svc.IgnoreBlock(candidate.BlockId)
		}
	}
}

// resolveFork compares the summed work of two divergent chains and commits
// whichever side accumulates strictly more, ties going to cur (§4.7). The
// per-side fork head defaults to that side's own header when its orphan
// collection comes up empty — the non-swapped variant spec.md's design
// notes call out as the correct one.
func (n *Node) resolveFork(cur, candidate *powblock.BlockHeader) error {
	deltaCur := heightDelta(cur.BlockNum, candidate.BlockNum)
	deltaNew := heightDelta(candidate.BlockNum, cur.BlockNum)

	curOrphans := powblock.NewAncestors(cur.PreviousId, n.svc).TakeUpToWhilePoW(int(deltaCur))
	newOrphans := powblock.NewAncestors(candidate.PreviousId, n.svc).TakeUpToWhilePoW(int(deltaNew))

	curForkHead := lastOr(curOrphans, cur)
	newForkHead := lastOr(newOrphans, candidate)

	pairedCur, pairedNew := powblock.NewPairedFork(curForkHead.BlockId, newForkHead.BlockId, n.svc).TakeWhileDivergent()

	curWork := sumWork(curOrphans)
	curWork.Add(curWork, sumWork(pairedCur))

	newWork := sumWork(newOrphans)
	newWork.Add(newWork, sumWork(pairedNew))

	if newWork.Cmp(curWork) > 0 {
		return n.svc.CommitBlock(candidate.BlockId)
	}
	return n.svc.IgnoreBlock(candidate.BlockId)
}

// heightDelta returns max(0, a-b).
func heightDelta(a, b uint64) uint64 {
	if a <= b {
		return 0
	}
	return a - b
}

func lastOr(orphans []*powblock.BlockHeader, fallback *powblock.BlockHeader) *powblock.BlockHeader {
	if len(orphans) == 0 {
		return fallback
	}
	return orphans[len(orphans)-1]
}

func sumWork(headers []*powblock.BlockHeader) *uint256.Int {
	total := uint256.NewInt(0)
	for _, h := range headers {
		total.Add(total, h.Work())
	}
	return total
}
