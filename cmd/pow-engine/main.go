// Command pow-engine runs the PoW consensus engine as a standalone process.
// Wiring the actual validator transport (the ZMQ/RPC connection that backs
// powsdk.Service in production) is the validator SDK's job and out of
// scope here; --dev instead runs the engine against a local, in-memory
// chain so the rest of the stack — logging, the publishing loop, the
// status endpoint — can be exercised standalone.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mattn/go-colorable"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/probeum/pow-consensus/internal/powlog"
	"github.com/probeum/pow-consensus/powblock"
	"github.com/probeum/pow-consensus/pownode"
	"github.com/probeum/pow-consensus/powsdk"
)

var (
	devFlag = cli.BoolFlag{
		Name:  "dev",
		Usage: "run against a local in-memory chain instead of a validator connection",
	}
	statusAddrFlag = cli.StringFlag{
		Name:  "status-addr",
		Usage: "address to serve the GET /status introspection endpoint on; empty disables it",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "log verbosity: 0=crit 1=error 2=warn 3=info 4=debug 5=trace",
		Value: int(powlog.LvlInfo),
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "pow-engine"
	app.Usage = "proof-of-work consensus engine"
	app.Flags = []cli.Flag{devFlag, statusAddrFlag, verbosityFlag}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("fatal:"), err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	handler := powlog.LvlFilterHandler(powlog.Lvl(c.Int(verbosityFlag.Name)),
		powlog.StreamHandler(colorable.NewColorable(os.Stderr), powlog.TerminalFormat()))
	powlog.Root().SetHandler(handler)
	log := powlog.New("component", "main")

	if !c.Bool(devFlag.Name) {
		return fmt.Errorf("pow-engine: no validator transport is wired; pass --dev to run against a local chain")
	}

	instanceID := uuid.New()
	peerID := powsdk.PeerId(instanceID[:])

	updates := make(chan powsdk.Update, 64)
	svc := powblock.NewCachingService(newDevService(peerID, updates))
	engine := pownode.NewEngine(svc, updates, peerID)

	log.Info("Starting PoW engine", "instance", instanceID.String(), "mode", "dev")

	if addr := c.String(statusAddrFlag.Name); addr != "" {
		go func() {
			if err := runStatusServer(addr, engine, instanceID, powlog.New("component", "status")); err != nil {
				log.Error("Status server stopped", "err", err)
			}
		}()
	}

	head, err := svc.GetChainHead()
	if err != nil {
		return err
	}
	return engine.Start(context.Background(), powsdk.StartupState{
		ChainHead:     head,
		LocalPeerInfo: powsdk.PeerInfo{PeerId: peerID},
	})
}
