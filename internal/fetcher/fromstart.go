package fetcher

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/brevis-network/pico-ethproofs/internal/common/report"
	"github.com/brevis-network/pico-ethproofs/internal/messages"
)

// FromStartFetcher processes ProveFromStart requests, generating inputs for
// a contiguous range of blocks in order, per §4.3's from-start sub-fetcher.
type FromStartFetcher struct {
	queue    *messages.FetchMsgQueue
	upstream *messages.BlockMsgQueue
	executor SubblockExecutor

	// dumpRoot, if non-empty, receives a copy of every generated
	// ProvingInputs under <dumpRoot>/block<N>/gas10000000/, per §4.2 step
	// 5's optional artifact dump. A dump failure is logged, never fatal.
	dumpRoot string
}

// NewFromStartFetcher builds a FromStartFetcher reading from queue and
// emitting Proving messages on upstream. dumpRoot may be empty to disable
// dumping.
func NewFromStartFetcher(queue *messages.FetchMsgQueue, upstream *messages.BlockMsgQueue, executor SubblockExecutor, dumpRoot string) *FromStartFetcher {
	return &FromStartFetcher{queue: queue, upstream: upstream, executor: executor, dumpRoot: dumpRoot}
}

// Run blocks, processing ProveFromStart requests until the queue closes or
// ctx is done.
func (f *FromStartFetcher) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		msg, err := f.queue.Recv()
		if err != nil {
			log.Info("from-start fetcher: queue closed, exiting")
			return
		}
		f.processRange(ctx, msg.StartBlockNumber, msg.Count)
	}
}

func (f *FromStartFetcher) processRange(ctx context.Context, start, count uint64) {
	for n := start; n < start+count; n++ {
		if ctx.Err() != nil {
			return
		}
		begin := time.Now()
		inputs, err := f.executor.GenerateInputs(ctx, n, false)
		if err != nil {
			log.Error("from-start fetcher: generate_inputs failed, skipping block", "block_number", n, "err", err)
			continue
		}
		elapsedMs := uint64(time.Since(begin).Milliseconds())
		rep := report.New(n, elapsedMs)

		if f.dumpRoot != "" {
			if err := inputs.DumpToDir(f.dumpRoot); err != nil {
				log.Error("from-start fetcher: dump_to_dir failed", "block_number", n, "err", err)
			}
		}

		f.upstream.Send(messages.NewProving(messages.ProvingMsg{FetchReport: rep, ProvingInputs: inputs}))
	}
}
