// Command testclient is the reference HTTP+WebSocket client from
// SPEC_FULL.md's supplemented features: it issues one of the three fetch
// requests, then collects the requested number of reports off the
// WebSocket route and writes them to a CSV file, mirroring
// bin/test-clients/prove_block_by_number.rs and friends.
package main

import (
	"context"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "testclient",
		Usage: "reference client exercising the fetch service's HTTP and WebSocket routes",
		Commands: []*cli.Command{
			proveBlockByNumberCommand,
			proveLatestBlockCommand,
			reproduceBlockByNumberCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Crit("testclient: fatal error", "err", err)
	}
}

var addrFlag = &cli.StringFlag{
	Name:  "fetch-service-addr",
	Usage: "host:port of the fetch service",
	Value: "127.0.0.1:8080",
}

var countFlag = &cli.Uint64Flag{
	Name:  "count",
	Usage: "number of blocks to request",
	Value: 1,
}

var csvFlag = &cli.StringFlag{
	Name:  "csv-output",
	Usage: "path to append received reports to as CSV; empty disables writing",
}

var startBlockNumFlag = &cli.Uint64Flag{
	Name:     "start-block-num",
	Usage:    "first block number to fetch",
	Required: true,
}

var proveBlockByNumberCommand = &cli.Command{
	Name:  "prove-block-by-number",
	Usage: "request proving of a contiguous range of blocks starting at a fixed block number",
	Flags: []cli.Flag{addrFlag, startBlockNumFlag, countFlag, csvFlag},
	Action: func(cctx *cli.Context) error {
		return runFetchCommand(cctx, "/prove_block_by_number", true)
	},
}

var proveLatestBlockCommand = &cli.Command{
	Name:  "prove-latest-block",
	Usage: "request proving of the next N blocks as they arrive",
	Flags: []cli.Flag{addrFlag, countFlag, csvFlag},
	Action: func(cctx *cli.Context) error {
		return runFetchCommand(cctx, "/prove_latest_block", false)
	},
}

var reproduceBlockByNumberCommand = &cli.Command{
	Name:  "reproduce-block-by-number",
	Usage: "request re-proving of a contiguous range of blocks from previously dumped inputs",
	Flags: []cli.Flag{addrFlag, startBlockNumFlag, countFlag, csvFlag},
	Action: func(cctx *cli.Context) error {
		return runFetchCommand(cctx, "/reproduce_block_by_number", true)
	},
}

func runFetchCommand(cctx *cli.Context, path string, requireStart bool) error {
	log.SetDefault(log.NewLogger(log.NewTerminalHandler(os.Stderr, true)))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	count := cctx.Uint64(countFlag.Name)

	values := url.Values{}
	if requireStart {
		values.Set("start_block_num", strconv.FormatUint(cctx.Uint64(startBlockNumFlag.Name), 10))
	}
	values.Set("count", strconv.FormatUint(count, 10))

	return issueAndCollect(ctx, cctx.String(addrFlag.Name), path, values, count, cctx.String(csvFlag.Name))
}
