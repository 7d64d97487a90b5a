package powblock

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/probeum/pow-consensus/powsdk"
	"github.com/probeum/pow-consensus/powwork"
)

// BlockHeader is a validator Block plus its parsed PoW consensus.
// Constructed from either an owned or borrowed Block — Go values are copied
// by assignment either way, so there is no separate owned/borrowed
// constructor; NewBlockHeader covers both uses.
type BlockHeader struct {
	powsdk.Block
	Consensus BlockConsensus
}

// NewBlockHeader parses block's consensus payload. Height 0 (genesis) always
// gets the zero-value consensus regardless of payload contents (§3's
// genesis invariant); any other height must parse as a PoW payload.
func NewBlockHeader(block powsdk.Block) (*BlockHeader, error) {
	if block.BlockNum == 0 {
		return &BlockHeader{Block: block}, nil
	}
	consensus, err := DeserializeConsensus(block.Payload)
	if err != nil {
		return nil, err
	}
	return &BlockHeader{Block: block, Consensus: consensus}, nil
}

// IsGenesis reports whether this header is the chain's genesis block.
func (h *BlockHeader) IsGenesis() bool {
	return h.BlockNum == 0
}

// Validate checks that the header's proof-of-work meets requiredDifficulty.
// The genesis block is unconditionally valid. There is no shortcut path that
// bypasses this check — see SPEC_FULL.md's §9 design-note decision.
func (h *BlockHeader) Validate(requiredDifficulty uint32) error {
	if h.IsGenesis() {
		return nil
	}
	_, err := h.validateProofOfWork(requiredDifficulty)
	return err
}

// Work returns 2^realized_difficulty, the metric fork choice sums over a
// candidate chain. A realized difficulty near the top of the byte range
// (up to 256) overflows a uint64 long before it overflows a 256-bit word,
// so the accumulator type is uint256.Int rather than a machine integer.
func (h *BlockHeader) Work() *uint256.Int {
	realized, err := h.validateProofOfWork(0)
	if err != nil {
		// The minimum difficulty of 0 can never fail IsValid; a non-nil error
		// here means the header was constructed without ever being validated.
		panic(fmt.Sprintf("powblock: Work() called on unvalidated header: %v", err))
	}
	work := uint256.NewInt(1)
	return work.Lsh(work, uint(realized))
}

func (h *BlockHeader) validateProofOfWork(requiredDifficulty uint32) (uint32, error) {
	hash := powwork.Hash(h.PreviousId, h.SignerId, h.Consensus.Nonce)
	valid, realized := powwork.IsValid(hash[:], requiredDifficulty)
	if !valid {
		return 0, &ConsensusError{
			Kind:   "invalid-hash",
			Detail: fmt.Sprintf("expected %d, got %d", requiredDifficulty, realized),
		}
	}
	return realized, nil
}
