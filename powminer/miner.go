package powminer

import (
	"fmt"

	"github.com/probeum/pow-consensus/internal/powlog"
	"github.com/probeum/pow-consensus/powblock"
	"github.com/probeum/pow-consensus/powsdk"
)

// Miner is the facade the node talks to (§4.5). It owns the background
// worker and a single-slot cache of the best answer found for the current
// challenge; TryCreateConsensus consumes that cache on read.
type Miner struct {
	worker *worker
	log    powlog.Logger

	current *Answer
	armed   bool
}

// NewMiner starts the background worker and returns a facade over it.
func NewMiner() *Miner {
	return &Miner{
		worker: newWorker(),
		log:    powlog.New("component", "miner"),
	}
}

// Mine issues a fresh Challenge to extend blockID, at the difficulty the
// controller computes for the block that would follow parent (§4.5, §4.6).
func (m *Miner) Mine(blockID powsdk.BlockId, peerID powsdk.PeerId, parent *powblock.BlockHeader, now float64, svc powsdk.Service, cfg powblock.Config) {
	difficulty := powblock.NextDifficulty(parent, now, svc, cfg)
	m.current = nil
	m.armed = false
	m.worker.send(Challenge{
		BlockId:    blockID,
		PeerId:     peerID,
		Difficulty: difficulty,
		Timestamp:  now,
	})
	m.log.Debug("Mining", "block", blockID.String(), "difficulty", difficulty)
}

// TryCreateConsensus drains every pending worker message and, if a solved
// answer is currently held, consumes it and returns its serialized
// consensus payload. It returns false when no answer is ready yet — the
// worker has started but not yet solved the current challenge.
func (m *Miner) TryCreateConsensus() ([]byte, bool) {
	for {
		msg, ok := m.worker.tryRecv()
		if !ok {
			break
		}
		if msg.started {
			m.armed = true
			m.current = nil
			continue
		}
		if msg.answer != nil {
			m.current = msg.answer
		}
	}

	if m.current == nil {
		return nil, false
	}

	answer := m.current
	m.current = nil
	return powblock.SerializeConsensus(answer.Challenge.Difficulty, answer.Nonce, answer.Challenge.Timestamp), true
}

// Hashrate reports the worker's current one-minute hashrate estimate, for
// the status endpoint.
func (m *Miner) Hashrate() float64 {
	return m.worker.rate1()
}

// Reset discards any pending answer without issuing a new challenge, the
// way a cancelled block forces the miner to drop stale work (§4.5).
func (m *Miner) Reset() {
	m.current = nil
	m.armed = false
}

// Shutdown stops the worker goroutine and waits for it to exit. Join
// failures are logged, not propagated — there's nothing a caller could do
// about a goroutine that won't stop besides leak it, which logging at
// least makes visible.
func (m *Miner) Shutdown() {
	defer func() {
		if r := recover(); r != nil {
			m.log.Warn("Miner worker already stopped", "panic", fmt.Sprint(r))
		}
	}()
	m.worker.shutdown()
}
