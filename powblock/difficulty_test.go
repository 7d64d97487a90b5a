package powblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probeum/pow-consensus/powsdk"
)

func TestNextDifficultyGenesisUsesInitial(t *testing.T) {
	svc := newFakeService()
	genesis := powsdk.Block{BlockId: powsdk.BlockId("genesis"), BlockNum: 0}
	header, err := NewBlockHeader(genesis)
	require.NoError(t, err)

	cfg := Config{InitialDifficulty: 22, SecondsBetweenBlocks: 60, DifficultyAdjustmentBlockCount: 10, DifficultyTuningBlockCount: 100}
	assert.Equal(t, uint32(22), NextDifficulty(header, 0, svc, cfg))
}

func TestNextDifficultyUnchangedOutsideEpoch(t *testing.T) {
	svc := newFakeService()
	ids := chain(svc, 3) // heights 0..3, none divisible by adjustment(10)/tuning(100)

	parentBlock := svc.blocks[string(ids[3])]
	parent, err := NewBlockHeader(parentBlock)
	require.NoError(t, err)

	cfg := Config{InitialDifficulty: 22, SecondsBetweenBlocks: 60, DifficultyAdjustmentBlockCount: 10, DifficultyTuningBlockCount: 100}
	// parent's own declared difficulty is 0, from chain()'s SerializeConsensus(0, ...).
	assert.Equal(t, uint32(0), NextDifficulty(parent, float64(parent.Consensus.Timestamp), svc, cfg))
}

func TestNextDifficultyAdjustmentEpochIncreasesWhenFast(t *testing.T) {
	svc := newFakeService()
	ids := chain(svc, 10) // parent at height 10, adjustment boundary

	parentBlock := svc.blocks[string(ids[10])]
	parent, err := NewBlockHeader(parentBlock)
	require.NoError(t, err)

	cfg := Config{InitialDifficulty: 22, SecondsBetweenBlocks: 60, DifficultyAdjustmentBlockCount: 10, DifficultyTuningBlockCount: 1000}

	// chain() stamps block i with timestamp i; 10 blocks "took" far less
	// than the 600s the interval would expect at 60s/block, so difficulty
	// should tick up.
	now := float64(10)
	got := NextDifficulty(parent, now, svc, cfg)
	assert.Equal(t, parent.Consensus.Difficulty+1, got)
}

func TestNextDifficultyNeverExceedsByteRange(t *testing.T) {
	svc := newFakeService()
	genesis := powsdk.Block{BlockId: powsdk.BlockId("genesis"), BlockNum: 0}
	header, _ := NewBlockHeader(genesis)
	cfg := Config{InitialDifficulty: 255, SecondsBetweenBlocks: 60, DifficultyAdjustmentBlockCount: 10, DifficultyTuningBlockCount: 100}

	got := NextDifficulty(header, 0, svc, cfg)
	assert.LessOrEqual(t, got, uint32(255))
}
