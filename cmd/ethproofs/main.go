// Command ethproofs runs the full coordination plane: the fetch service,
// the proof service, the fetcher, the proving client, the reporter, and the
// scheduler that wires them together, mirroring the Rust prototype's
// coordinator binary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/brevis-network/pico-ethproofs/internal/config"
	"github.com/brevis-network/pico-ethproofs/internal/fetcher"
	"github.com/brevis-network/pico-ethproofs/internal/fetchservice"
	"github.com/brevis-network/pico-ethproofs/internal/messages"
	"github.com/brevis-network/pico-ethproofs/internal/proofservice"
	"github.com/brevis-network/pico-ethproofs/internal/provingclient"
	"github.com/brevis-network/pico-ethproofs/internal/reporter"
	"github.com/brevis-network/pico-ethproofs/internal/scheduler"
)

var (
	envFileFlag = &cli.StringFlag{
		Name:  "env-file",
		Usage: "path to a .env file loaded before resolving configuration",
		Value: ".env",
	}
	recoveryCommandFlag = &cli.StringFlag{
		Name:  "recovery-command",
		Usage: "shell command run to restart wedged provers when the proving watchdog expires",
		Value: "./scripts/docker-multi-control.sh retry",
	}
)

func main() {
	app := &cli.App{
		Name:   "ethproofs",
		Usage:  "coordinates block fetching and remote ZK proving",
		Flags:  []cli.Flag{envFileFlag, recoveryCommandFlag},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Crit("ethproofs: fatal error", "err", err)
	}
}

func run(cctx *cli.Context) error {
	if err := config.LoadDotEnv(cctx.String(envFileFlag.Name)); err != nil {
		return err
	}
	cfg, err := config.Load(config.OSEnv{})
	if err != nil {
		return err
	}
	setupLogger(cfg.RustLogger)

	printBanner()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	executor, err := fetcher.NewEthSubblockExecutor(ctx, cfg.RPCHTTPURL, cfg.SubblockVKDigestPath)
	if err != nil {
		return fmt.Errorf("ethproofs: build subblock executor: %w", err)
	}
	headerSource, err := fetcher.NewWSHeaderSource(ctx, cfg.RPCWSURL)
	if err != nil {
		return fmt.Errorf("ethproofs: build header source: %w", err)
	}

	fetchServiceOut := messages.NewBlockMsgQueue()
	proofServiceOut := messages.NewBlockMsgQueue()
	fetcherInbound := messages.NewBlockMsgQueue()
	fetcherOut := messages.NewBlockMsgQueue()
	reporterInbound := messages.NewBlockMsgQueue()
	schedulerEnd, provingClientEnd := messages.NewProvingEndpointPair()

	fromStartQueue := messages.NewFetchMsgQueue()
	latestQueue := messages.NewFetchMsgQueue()
	reproduceQueue := messages.NewFetchMsgQueue()

	fetchRouter := fetcher.NewRouter(fetcherInbound, fromStartQueue, latestQueue, reproduceQueue)
	fromStart := fetcher.NewFromStartFetcher(fromStartQueue, fetcherOut, executor, cfg.DumpRoot)
	latest := fetcher.NewLatestFetcher(latestQueue, fetcherOut, executor, headerSource, cfg.DumpRoot)
	reproduce := fetcher.NewReproduceFetcher(reproduceQueue, fetcherOut, cfg.DumpRoot)

	recoveryCommand := strings.Fields(cctx.String(recoveryCommandFlag.Name))
	pc := provingclient.New(provingclient.Config{
		AggURL:          cfg.ProvingAggURL,
		SubblockURLs:    cfg.ProvingSubblockURLs,
		MaxGRPCMsgBytes: cfg.MaxGRPCMsgBytes,
		RecoveryCommand: recoveryCommand,
	}, provingClientEnd, nil, nil)

	rep := reporter.New(reporterInbound)

	sched := scheduler.New(fetchServiceOut, proofServiceOut, fetcherOut, schedulerEnd, fetcherInbound, reporterInbound)

	fetchSvc := fetchservice.New(fetchServiceOut)
	fetchServer := fetchservice.NewServer(cfg.FetchServiceAddr, fetchSvc)

	proofSvc := proofservice.New(proofServiceOut)
	proofServer := proofservice.NewServer(cfg.ProofServiceAddr, proofSvc, cfg.MaxGRPCMsgBytes)

	go fetchRouter.Run(ctx)
	go fromStart.Run(ctx)
	go latest.Run(ctx)
	go reproduce.Run(ctx)
	go rep.Run(ctx)
	go sched.Run(ctx)

	errCh := make(chan error, 3)
	go func() { errCh <- pc.Run(ctx) }()
	go func() { errCh <- fetchServer.Serve(ctx) }()
	go func() { errCh <- proofServer.Serve(ctx) }()

	log.Info("ethproofs: all components started",
		"fetch_service_addr", cfg.FetchServiceAddr,
		"proof_service_addr", cfg.ProofServiceAddr)

	select {
	case <-ctx.Done():
		log.Info("ethproofs: shutdown signal received")
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ethproofs: component exited: %w", err)
		}
		return nil
	}
}

// setupLogger wires go-ethereum's slog-based logger per the configured
// format: flat is line-oriented JSON suited to log aggregation; forest and
// forest-all are the human-readable terminal handler, the latter at debug
// verbosity. There is no tree-structured span view in go-ethereum/log, so
// forest/forest-all only differ in verbosity here.
func setupLogger(logger config.Logger) {
	switch logger {
	case config.LoggerFlat:
		log.SetDefault(log.NewLogger(log.NewJSONHandler(os.Stderr)))
	case config.LoggerForestAll:
		log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LevelDebug, true)))
	default:
		log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LevelInfo, true)))
	}
}

func printBanner() {
	c := color.New(color.FgHiCyan, color.Bold)
	c.Println("ethproofs coordination plane")
}
