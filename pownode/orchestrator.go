package pownode

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/probeum/pow-consensus/internal/powlog"
	"github.com/probeum/pow-consensus/powsdk"
)

const reactorPollInterval = 10 * time.Millisecond
const updaterIdleInterval = 10 * time.Millisecond

// Orchestrator runs the three cooperative goroutines described in §4.8: a
// one-shot publishing-timer scheduler, a chain-head reactor, and the event
// pump that drives Node. Coordination is through two atomic flags rather
// than channels, because the pump already polls every tick and would just
// be selecting on an extra channel otherwise (§9's design note).
type Orchestrator struct {
	node    *Node
	updates <-chan powsdk.Update

	secondsBetweenBlocks time.Duration

	publishing   atomic.Bool
	newChainHead atomic.Bool

	log powlog.Logger
}

// NewOrchestrator builds an Orchestrator pumping events from updates into
// node.
func NewOrchestrator(node *Node, updates <-chan powsdk.Update, secondsBetweenBlocks time.Duration) *Orchestrator {
	return &Orchestrator{
		node:                 node,
		updates:              updates,
		secondsBetweenBlocks: secondsBetweenBlocks,
		log:                  powlog.New("component", "orchestrator"),
	}
}

// Run drives all three goroutines until the updater observes Shutdown, an
// event-channel disconnect, or a fatal service error, then returns.
func (o *Orchestrator) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	armed := make(chan struct{}, 1)
	armed <- struct{}{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return o.scheduler(ctx, armed) })
	g.Go(func() error { return o.reactor(ctx, armed) })
	g.Go(func() error {
		err := o.updater(ctx)
		cancel()
		return err
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// scheduler sleeps for secondsBetweenBlocks, then sets the publishing flag.
// It is one-shot per arm signal, re-arming only when the reactor signals a
// new round has begun.
func (o *Orchestrator) scheduler(ctx context.Context, armed <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-armed:
		}

		timer := time.NewTimer(o.secondsBetweenBlocks)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			o.publishing.Store(true)
		}
	}
}

// reactor polls the chain-head flag every 10ms; once it turns true, it
// clears both flags and re-arms the scheduler for the next round.
func (o *Orchestrator) reactor(ctx context.Context, armed chan<- struct{}) error {
	ticker := time.NewTicker(reactorPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if o.newChainHead.Swap(false) {
				o.publishing.Store(false)
				select {
				case armed <- struct{}{}:
				default:
				}
			}
		}
	}
}

// updater is the event pump: on each iteration it gives try_publish a
// chance to run, then non-blockingly drains one validator event.
func (o *Orchestrator) updater(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if o.publishing.Load() {
			outcome, err := o.node.TryPublish()
			if err != nil {
				return err
			}
			if outcome == Published {
				o.publishing.Store(false)
			}
		}

		select {
		case update, ok := <-o.updates:
			if !ok {
				return nil
			}
			result, err := o.node.HandleUpdate(update)
			if err != nil {
				return err
			}
			if result.IsShutdown() {
				return nil
			}
			if didPublish, ok := result.IsRestart(); ok {
				o.newChainHead.Store(true)
				if didPublish {
					o.publishing.Store(false)
				}
			}
		default:
			time.Sleep(updaterIdleInterval)
		}
	}
}
