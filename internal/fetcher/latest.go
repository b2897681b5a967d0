package fetcher

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/brevis-network/pico-ethproofs/internal/common/report"
	"github.com/brevis-network/pico-ethproofs/internal/messages"
)

// NumBlocksPerBatch bounds how many consecutive latest blocks one
// subscription serves before the latest sub-fetcher drops it and
// reconnects, per §4.3.
const NumBlocksPerBatch = 10

// subscribeRetryInterval is how long the latest sub-fetcher waits before
// retrying a failed subscription attempt, the same cadence the proving
// client uses for its connect-with-retry loop (CLIENT_RETRY_INTERVAL).
const subscribeRetryInterval = 2 * time.Second

// LatestFetcher implements §4.3's latest sub-fetcher: an Idle/Draining
// state machine over an RPC block-subscription stream, coalescing
// overlapping ProveLatest requests by max rather than summing them.
type LatestFetcher struct {
	queue     *messages.FetchMsgQueue
	upstream  *messages.BlockMsgQueue
	executor  SubblockExecutor
	source    HeaderSource
	remaining uint64

	// dumpRoot, if non-empty, receives a copy of every generated
	// ProvingInputs, matching FromStartFetcher's optional dump.
	dumpRoot string
}

// NewLatestFetcher builds a LatestFetcher reading ProveLatest requests from
// queue and subscribing to new heads via source. dumpRoot may be empty to
// disable dumping.
func NewLatestFetcher(queue *messages.FetchMsgQueue, upstream *messages.BlockMsgQueue, executor SubblockExecutor, source HeaderSource, dumpRoot string) *LatestFetcher {
	return &LatestFetcher{queue: queue, upstream: upstream, executor: executor, source: source, dumpRoot: dumpRoot}
}

// Run blocks, alternating between Idle (blocked on the queue) and Draining
// (multiplexing the queue and the header subscription) until the queue
// closes or ctx is done.
func (f *LatestFetcher) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		if f.remaining == 0 {
			msg, err := f.queue.Recv()
			if err != nil {
				log.Info("latest fetcher: queue closed, exiting")
				return
			}
			f.coalesce(msg.Count)
			continue
		}
		f.drain(ctx)
	}
}

// coalesce applies ProveLatest's "remaining <- max(remaining, count)"
// semantics: overlapping requests do not add up.
func (f *LatestFetcher) coalesce(count uint64) {
	if count > f.remaining {
		f.remaining = count
	}
}

// drain owns one subscription lifetime: up to NumBlocksPerBatch blocks, or
// fewer if remaining drops to zero first.
func (f *LatestFetcher) drain(ctx context.Context) {
	headers, sub, err := f.source.SubscribeNewHead(ctx)
	if err != nil {
		log.Error("latest fetcher: subscribe failed, retrying", "err", err)
		select {
		case <-time.After(subscribeRetryInterval):
		case <-ctx.Done():
		}
		return
	}
	defer sub.Unsubscribe()

	batchCount := 0
	for batchCount < NumBlocksPerBatch && f.remaining > 0 {
		select {
		case <-ctx.Done():
			return
		case err := <-sub.Err():
			log.Error("latest fetcher: subscription error, reconnecting", "err", err)
			return
		case <-f.queue.NotifyChan():
			if msg, ok := f.queue.TryRecv(); ok {
				f.coalesce(msg.Count)
			}
		case header := <-headers:
			blockNumber := header.Number.Uint64()
			begin := time.Now()
			inputs, err := f.executor.GenerateInputs(ctx, blockNumber, false)
			if err != nil {
				log.Error("latest fetcher: generate_inputs failed, skipping block", "block_number", blockNumber, "err", err)
				f.remaining--
				batchCount++
				continue
			}
			elapsedMs := uint64(time.Since(begin).Milliseconds())
			rep := report.New(blockNumber, elapsedMs)

			if f.dumpRoot != "" {
				if err := inputs.DumpToDir(f.dumpRoot); err != nil {
					log.Error("latest fetcher: dump_to_dir failed", "block_number", blockNumber, "err", err)
				}
			}

			f.upstream.Send(messages.NewProving(messages.ProvingMsg{FetchReport: rep, ProvingInputs: inputs}))
			f.remaining--
			batchCount++
		}
	}
}
