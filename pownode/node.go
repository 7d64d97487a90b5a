// Package pownode implements the PoW node's event-driven state machine,
// its async orchestrator, and its config loader.
package pownode

import (
	"time"

	"github.com/probeum/pow-consensus/internal/powlog"
	"github.com/probeum/pow-consensus/powblock"
	"github.com/probeum/pow-consensus/powminer"
	"github.com/probeum/pow-consensus/powsdk"
)

// Outcome is what HandleUpdate asks its caller to do next (§4.7).
type Outcome struct {
	kind       outcomeKind
	didPublish bool
}

type outcomeKind int

const (
	outcomeContinue outcomeKind = iota
	outcomeShutdown
	outcomeRestart
)

// Continue asks the orchestrator to keep pumping events.
var Continue = Outcome{kind: outcomeContinue}

// Shutdown asks the orchestrator to stop.
var Shutdown = Outcome{kind: outcomeShutdown}

// Restart asks the orchestrator to re-arm its chain-head flag, having just
// re-initialized a new block on top of a commit. didPublish reports whether
// an opportunistic try_publish succeeded during BlockCommit handling.
func Restart(didPublish bool) Outcome {
	return Outcome{kind: outcomeRestart, didPublish: didPublish}
}

func (o Outcome) IsContinue() bool { return o.kind == outcomeContinue }
func (o Outcome) IsShutdown() bool { return o.kind == outcomeShutdown }
func (o Outcome) IsRestart() (didPublish bool, ok bool) {
	return o.didPublish, o.kind == outcomeRestart
}

// PublishOutcome is the result of one TryPublish call (§4.7).
type PublishOutcome int

const (
	Pending PublishOutcome = iota
	Published
)

// Node is the PoW engine's event handler (C8): it owns the validator
// service handle exclusively, the miner facade, and the publishing guards.
type Node struct {
	svc    powsdk.Service
	miner  *powminer.Miner
	cfg    powblock.Config
	peerID powsdk.PeerId
	guards *guards
	log    powlog.Logger

	// consensus holds the payload pulled from the miner once the Consensus
	// guard is set; TryCreateConsensus itself is consumed-on-read, so this
	// is where TryPublish keeps it across the guard transitions of a single
	// call and across repeated Pending calls.
	consensus []byte
}

// NewNode constructs a Node with default config and empty guards; Start
// then hands it the validator's startup state.
func NewNode(svc powsdk.Service, miner *powminer.Miner, peerID powsdk.PeerId) *Node {
	return &Node{
		svc:    svc,
		miner:  miner,
		cfg:    powblock.DefaultConfig(),
		peerID: peerID,
		guards: newGuards(),
		log:    powlog.New("component", "node"),
	}
}

// Start runs the one-time startup sequence (§8 scenario 1): initialize a
// block atop the chain head and load configuration.
func (n *Node) Start(state powsdk.StartupState) error {
	if err := n.svc.InitializeBlock(nil); err != nil {
		return err
	}
	if err := LoadConfig(n.svc, state.ChainHead.BlockId, &n.cfg); err != nil {
		return err
	}
	return n.mine(state.ChainHead.BlockId)
}

// mine fetches headID's header and issues the miner a fresh challenge to
// extend it, at the difficulty the controller computes for the block that
// would follow.
func (n *Node) mine(headID powsdk.BlockId) error {
	headBlock, err := powsdk.GetBlock(n.svc, headID)
	if err != nil {
		return err
	}
	head, err := powblock.NewBlockHeader(headBlock)
	if err != nil {
		return err
	}
	now := float64(time.Now().UnixNano()) / 1e9
	n.miner.Mine(headID, n.peerID, head, now, n.svc, n.cfg)
	return nil
}

// GuardsSnapshot reports the publishing guards currently set, in the order
// they were added, for the status endpoint.
func (n *Node) GuardsSnapshot() []Guard {
	return n.guards.snapshot()
}

// Config returns the node's current on-chain settings snapshot.
func (n *Node) Config() powblock.Config {
	return n.cfg
}

// Hashrate reports the miner's current one-minute hashrate estimate.
func (n *Node) Hashrate() float64 {
	return n.miner.Hashrate()
}

// HandleUpdate dispatches one validator event (§4.7).
func (n *Node) HandleUpdate(update powsdk.Update) (Outcome, error) {
	switch update.Kind {
	case powsdk.UpdateBlockNew:
		return n.onBlockNew(update.Block)
	case powsdk.UpdateBlockValid:
		return n.onBlockValid(update.BlockId)
	case powsdk.UpdateBlockInvalid:
		return Continue, nil
	case powsdk.UpdateBlockCommit:
		return n.onBlockCommit(update.BlockId)
	case powsdk.UpdateShutdown:
		return Shutdown, nil
	default:
		// Peer events are no-ops (§4.7).
		return Continue, nil
	}
}

func (n *Node) onBlockNew(block powsdk.Block) (Outcome, error) {
	if len(block.PreviousId) == 0 || block.PreviousId.Equal(powsdk.NullBlockIdentifier) {
		if err := n.svc.FailBlock(block.BlockId); err != nil {
			return Continue, err
		}
		return Continue, nil
	}

	if _, err := powblock.NewBlockHeader(block); err != nil {
		n.log.Debug("Rejecting unparsable block", "block", block.BlockId.String(), "err", err)
		if ferr := n.svc.FailBlock(block.BlockId); ferr != nil {
			return Continue, ferr
		}
		return Continue, nil
	}

	if err := n.svc.CheckBlocks([]powsdk.BlockId{block.BlockId}); err != nil {
		return Continue, err
	}
	return Continue, nil
}

func (n *Node) onBlockValid(id powsdk.BlockId) (Outcome, error) {
	curBlock, err := n.svc.GetChainHead()
	if err != nil {
		return Continue, err
	}
	cur, err := powblock.NewBlockHeader(curBlock)
	if err != nil {
		return Continue, err
	}

	newBlock, err := powsdk.GetBlock(n.svc, id)
	if err != nil {
		return Continue, err
	}
	newHeader, err := powblock.NewBlockHeader(newBlock)
	if err != nil {
		return Continue, err
	}

	if err := n.compareForks(cur, newHeader); err != nil {
		return Continue, err
	}
	return Continue, nil
}

func (n *Node) onBlockCommit(id powsdk.BlockId) (Outcome, error) {
	didPublish := false

	if !n.guards.has(GuardFinalized) {
		outcome, err := n.TryPublish()
		if err != nil {
			return Continue, err
		}
		didPublish = outcome == Published
	}

	if !n.guards.has(GuardFinalized) {
		if err := n.svc.CancelBlock(); err != nil {
			return Continue, err
		}
	}

	if err := LoadConfig(n.svc, id, &n.cfg); err != nil {
		return Continue, err
	}

	n.guards.clear()
	n.consensus = nil
	n.miner.Reset()

	if err := n.svc.InitializeBlock(&id); err != nil {
		return Continue, err
	}
	if err := n.mine(id); err != nil {
		return Continue, err
	}

	return Restart(didPublish), nil
}
