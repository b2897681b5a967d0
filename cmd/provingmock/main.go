// Command provingmock runs the mock Aggregator+Subblock cluster from
// SPEC_FULL.md's supplemented features: a standalone test harness that
// echoes a canned CompleteProvingResult back to a configured proof service
// after a fixed latency.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/brevis-network/pico-ethproofs/internal/provingmock"
)

func main() {
	app := &cli.App{
		Name:  "provingmock",
		Usage: "mock Aggregator+Subblock gRPC cluster that echoes proving results after a fixed delay",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address for the mock Aggregator/Subblock gRPC server", Value: "127.0.0.1:50100"},
			&cli.StringFlag{Name: "proof-service-url", Usage: "address of the proof service to call back with completions", Required: true},
			&cli.IntFlag{Name: "max-grpc-msg-bytes", Usage: "max gRPC message size in both directions", Value: 1 << 30},
			&cli.DurationFlag{Name: "latency", Usage: "fixed delay before echoing the canned completion", Value: 500 * time.Millisecond},
			&cli.BoolFlag{Name: "success", Usage: "whether the canned completion reports success", Value: true},
			&cli.Uint64Flag{Name: "cycles", Usage: "canned cycle count reported on completion", Value: 1_000_000},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Crit("provingmock: fatal error", "err", err)
	}
}

func run(cctx *cli.Context) error {
	log.SetDefault(log.NewLogger(log.NewTerminalHandler(os.Stderr, true)))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cluster := provingmock.New(provingmock.Config{
		Addr:            cctx.String("addr"),
		ProofServiceURL: cctx.String("proof-service-url"),
		MaxGRPCMsgBytes: cctx.Int("max-grpc-msg-bytes"),
		Latency:         cctx.Duration("latency"),
		Success:         cctx.Bool("success"),
		Cycles:          cctx.Uint64("cycles"),
	})
	return cluster.Serve(ctx)
}
