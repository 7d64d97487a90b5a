package powminer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probeum/pow-consensus/powblock"
)

func TestTryCreateConsensusConsumesOnRead(t *testing.T) {
	m := &Miner{worker: &worker{out: make(chan fromWorker, 4)}}

	m.worker.out <- fromWorker{started: true}
	m.worker.out <- fromWorker{answer: &Answer{
		Challenge: Challenge{Difficulty: 10, Timestamp: 5},
		Nonce:     42,
	}}

	payload, ok := m.TryCreateConsensus()
	require.True(t, ok)

	got, err := powblock.DeserializeConsensus(payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), got.Difficulty)
	assert.Equal(t, uint64(42), got.Nonce)

	// A second call with nothing new pending returns false.
	_, ok = m.TryCreateConsensus()
	assert.False(t, ok)
}

func TestTryCreateConsensusStartedClearsPendingAnswer(t *testing.T) {
	m := &Miner{worker: &worker{out: make(chan fromWorker, 4)}}

	m.worker.out <- fromWorker{answer: &Answer{Challenge: Challenge{Difficulty: 1}, Nonce: 1}}
	m.worker.out <- fromWorker{started: true} // a new challenge superseded the old answer

	_, ok := m.TryCreateConsensus()
	assert.False(t, ok)
}

func TestResetDiscardsPendingAnswer(t *testing.T) {
	m := &Miner{worker: &worker{out: make(chan fromWorker, 4)}}
	m.current = &Answer{Challenge: Challenge{Difficulty: 1}, Nonce: 1}

	m.Reset()

	_, ok := m.TryCreateConsensus()
	assert.False(t, ok)
}
