package pownode

import (
	"context"
	"fmt"
	"time"

	"github.com/probeum/pow-consensus/internal/powlog"
	"github.com/probeum/pow-consensus/powminer"
	"github.com/probeum/pow-consensus/powsdk"
)

// version is the engine's own release version; Version() reports only its
// major.minor per §6.5.
const version = "1.4.0"

// Engine is the top-level object a validator host constructs: it owns the
// Node and Orchestrator and exposes the metadata the validator queries
// before starting consensus (§6.5).
type Engine struct {
	node         *Node
	orchestrator *Orchestrator
	log          powlog.Logger
}

// NewEngine wires a Node and Orchestrator together over svc and updates.
func NewEngine(svc powsdk.Service, updates <-chan powsdk.Update, peerID powsdk.PeerId) *Engine {
	node := NewNode(svc, powminer.NewMiner(), peerID)
	return &Engine{
		node:         node,
		orchestrator: NewOrchestrator(node, updates, time.Duration(node.cfg.SecondsBetweenBlocks)*time.Second),
		log:          powlog.New("component", "engine"),
	}
}

// Name is the consensus engine's registered name (§6.5).
func (e *Engine) Name() string { return "PoW" }

// Version reports the major.minor of the module version, patch dropped
// (§6.5).
func (e *Engine) Version() string {
	var major, minor int
	if _, err := fmt.Sscanf(version, "%d.%d", &major, &minor); err != nil {
		return version
	}
	return fmt.Sprintf("%d.%d", major, minor)
}

// AdditionalProtocols reports no extra wire protocols beyond the validator's
// own (§6.5).
func (e *Engine) AdditionalProtocols() []string { return nil }

// Start runs the startup sequence and then blocks running the orchestrator
// until it terminates or ctx is cancelled.
func (e *Engine) Start(ctx context.Context, state powsdk.StartupState) error {
	if err := e.node.Start(state); err != nil {
		return fmt.Errorf("engine startup: %w", err)
	}
	// LoadConfig during Start may have changed seconds_between_blocks; the
	// orchestrator's scheduler interval was fixed at construction, so pick
	// it up again here before the first tick.
	e.orchestrator.secondsBetweenBlocks = time.Duration(e.node.cfg.SecondsBetweenBlocks) * time.Second
	return e.orchestrator.Run(ctx)
}

// Node exposes the underlying node for status reporting.
func (e *Engine) Node() *Node { return e.node }
