package powminer

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"

	"github.com/probeum/pow-consensus/internal/powlog"
	"github.com/probeum/pow-consensus/internal/powmetrics"
	"github.com/probeum/pow-consensus/powwork"
)

// hashrateMarkInterval batches hashrate meter updates to every 2^15
// attempts rather than marking on every hash.
const hashrateMarkInterval = 1 << 15

// worker runs the search loop on a dedicated goroutine. It communicates
// with Miner only through the in/out channels — no shared state crosses
// the goroutine boundary.
type worker struct {
	in  chan toWorker
	out chan fromWorker

	log   powlog.Logger
	meter *powmetrics.Meter
}

func newWorker() *worker {
	w := &worker{
		in:    make(chan toWorker),
		out:   make(chan fromWorker, 8),
		log:   powlog.New("component", "miner-worker"),
		meter: powmetrics.NewMeter(),
	}
	go w.run()
	return w
}

func (w *worker) send(c Challenge) {
	w.in <- toWorker{challenge: &c}
}

func (w *worker) shutdown() {
	w.in <- toWorker{shutdown: true}
}

// rate1 reports the worker's one-minute hashrate EWMA. Safe to call from
// any goroutine: it reads the meter's single atomic field.
func (w *worker) rate1() float64 {
	return w.meter.Rate1()
}

// tryRecv drains one pending message, non-blocking.
func (w *worker) tryRecv() (fromWorker, bool) {
	select {
	case m := <-w.out:
		return m, true
	default:
		return fromWorker{}, false
	}
}

func (w *worker) run() {
	w.log.Trace("Waiting for challenge")
	msg, ok := <-w.in
	if !ok || msg.shutdown || msg.challenge == nil {
		return
	}
	challenge := *msg.challenge
	nonce := randomNonce()
	w.out <- fromWorker{started: true}
	isFirst := true
	var bestRealized uint32

	var attempts int64
	for {
		hash := powwork.Hash(challenge.BlockId, challenge.PeerId, nonce)
		// valid is checked against the challenge's constant required
		// difficulty, which is also what gets embedded in the answer —
		// a block's declared difficulty is the target it was mined
		// under, not however much the miner happened to overshoot it.
		valid, realized := powwork.IsValid(hash[:], challenge.Difficulty)
		if valid && (isFirst || realized > bestRealized) {
			answer := Answer{Challenge: challenge, Nonce: nonce}
			w.out <- fromWorker{answer: &answer}
			isFirst = false
			bestRealized = realized
		}

		attempts++
		if attempts%hashrateMarkInterval == 0 {
			// Tick is called only from this goroutine; Rate1 is the only
			// part of Meter a different goroutine (the status endpoint)
			// ever touches, and it's the one atomic field.
			w.meter.Mark(hashrateMarkInterval)
			w.meter.Tick()
		}

		select {
		case next := <-w.in:
			if next.shutdown {
				return
			}
			if next.challenge != nil {
				challenge = *next.challenge
				nonce = randomNonce()
				w.out <- fromWorker{started: true}
				isFirst = true
				continue
			}
		default:
		}

		nonce++
	}
}

// randomNonce draws a uniform starting nonce from a crypto/rand-sourced
// seed feeding a fast PRNG, since math/rand alone is reseeded from the
// same low-entropy clock on every worker restart otherwise.
func randomNonce() uint64 {
	var seedBytes [8]byte
	if _, err := crand.Read(seedBytes[:]); err != nil {
		// crypto/rand failing is effectively unrecoverable on any real
		// platform; fall back to a fixed seed rather than panicking the
		// mining goroutine.
		return 0
	}
	seed := int64(binary.LittleEndian.Uint64(seedBytes[:]) >> 1)
	r := rand.New(rand.NewSource(seed))
	return uint64(r.Int63())<<1 | uint64(r.Int63()&1)
}
