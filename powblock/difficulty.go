package powblock

import "github.com/probeum/pow-consensus/powsdk"

// NextDifficulty computes the minimum difficulty the block following parent
// must meet (§4.6). Genesis always requires the configured initial
// difficulty. Tuning epochs (height % TuningBlockCount == 0) take
// precedence over adjustment epochs when both apply; outside either epoch
// the parent's declared difficulty carries forward unchanged.
//
// The ancestor walk used to measure elapsed time stops early — using
// whatever count it has accumulated so far — at the first non-PoW ancestor
// or the first ancestor the service fails to produce; both are ordinary,
// expected truncations, not failures of the controller itself.
func NextDifficulty(parent *BlockHeader, now float64, svc powsdk.Service, cfg Config) uint32 {
	if parent.IsGenesis() {
		return cfg.InitialDifficulty
	}

	switch {
	case parent.BlockNum%cfg.DifficultyTuningBlockCount == 0:
		return retarget(parent, now, svc, cfg.DifficultyTuningBlockCount, cfg.SecondsBetweenBlocks, looseFactor(1))
	case parent.BlockNum%cfg.DifficultyAdjustmentBlockCount == 0:
		return retarget(parent, now, svc, cfg.DifficultyAdjustmentBlockCount, cfg.SecondsBetweenBlocks, looseFactor(2))
	default:
		return parent.Consensus.Difficulty
	}
}

// looseFactor expresses the epoch's retarget bandwidth: 1 for a tuning
// epoch's tight 1:1 thresholds, 2 for an adjustment epoch's loose 2x/0.5x
// thresholds (§4.6).
type looseFactor float64

func retarget(parent *BlockHeader, now float64, svc powsdk.Service, count, interval uint64, factor looseFactor) uint32 {
	timeTaken, timeExpected := elapsedTime(parent, svc, now, count, interval)
	difficulty := parent.Consensus.Difficulty

	lowThreshold := timeExpected / float64(factor)
	highThreshold := timeExpected * float64(factor)

	switch {
	case timeTaken < lowThreshold && difficulty < 255:
		return difficulty + 1
	case timeTaken > highThreshold && difficulty > 0:
		return difficulty - 1
	default:
		return difficulty
	}
}

func elapsedTime(parent *BlockHeader, svc powsdk.Service, now float64, totalCount, expectedInterval uint64) (timeTaken, timeExpected float64) {
	count := uint64(1)
	previousTime := parent.Consensus.Timestamp
	blockID := parent.PreviousId

	for {
		block, err := powsdk.GetBlock(svc, blockID)
		if err != nil {
			break
		}
		if !IsPoWConsensus(block.Payload) {
			break
		}
		consensus, err := DeserializeConsensus(block.Payload)
		if err != nil {
			break
		}

		count++
		blockID = block.PreviousId
		previousTime = consensus.Timestamp

		if count >= totalCount {
			break
		}
	}

	timeTaken = now - previousTime
	timeExpected = float64(count * expectedInterval)
	return timeTaken, timeExpected
}
