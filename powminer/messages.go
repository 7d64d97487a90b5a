// Package powminer implements the background mining worker and the
// facade that owns it: a single goroutine searching for a nonce, talking
// to its owner only through a duplex channel pair.
package powminer

import "github.com/probeum/pow-consensus/powsdk"

// Challenge is the mining task handed to the worker: extend blockID with a
// solution meeting at least the required difficulty (§3).
type Challenge struct {
	BlockId    powsdk.BlockId
	PeerId     powsdk.PeerId
	Difficulty uint32
	Timestamp  float64
}

// Answer is one candidate solution to a Challenge (§3).
type Answer struct {
	Challenge Challenge
	Nonce     uint64
}

// toWorker messages flow from the facade's goroutine to the worker.
type toWorker struct {
	shutdown  bool
	challenge *Challenge
}

// fromWorker messages flow from the worker back to the facade.
type fromWorker struct {
	started bool
	answer  *Answer
}
