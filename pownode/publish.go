package pownode

import (
	"errors"

	"github.com/probeum/pow-consensus/powsdk"
)

// TryPublish advances the publishing pipeline by at most one guard per
// stage whose precondition is met, and is safe to call repeatedly: each
// call either makes forward progress or returns Pending without any side
// effect beyond the consensus-cache check (§4.7, §8 scenario 5). A
// non-BlockNotReady error from summarize/finalize propagates to the caller,
// which the orchestrator treats as fatal (§7).
func (n *Node) TryPublish() (PublishOutcome, error) {
	if n.guards.has(GuardFinalized) {
		return Pending, nil
	}

	if n.consensus == nil {
		payload, ok := n.miner.TryCreateConsensus()
		if !ok {
			return Pending, nil
		}
		n.consensus = payload
		n.guards.add(GuardConsensus)
	}

	if !n.guards.has(GuardSummarized) {
		if _, err := n.svc.SummarizeBlock(); err != nil {
			if errors.Is(err, powsdk.ErrBlockNotReady) {
				return Pending, nil
			}
			return Pending, err
		}
		n.guards.add(GuardSummarized)
	}

	if _, err := n.svc.FinalizeBlock(n.consensus); err != nil {
		if errors.Is(err, powsdk.ErrBlockNotReady) {
			return Pending, nil
		}
		return Pending, err
	}

	n.guards.add(GuardFinalized)
	n.guards.remove(GuardConsensus)
	n.guards.remove(GuardSummarized)
	n.consensus = nil
	return Published, nil
}
