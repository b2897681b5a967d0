package fetcher

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/brevis-network/pico-ethproofs/internal/common/inputs"
	"github.com/brevis-network/pico-ethproofs/internal/common/report"
	"github.com/brevis-network/pico-ethproofs/internal/messages"
)

// ReproduceFetcher processes ReproduceFromStart requests, loading
// previously dumped inputs from disk instead of calling the subblock
// executor, per §4.3's reproduce sub-fetcher.
type ReproduceFetcher struct {
	queue    *messages.FetchMsgQueue
	upstream *messages.BlockMsgQueue
	dumpRoot string
}

// NewReproduceFetcher builds a ReproduceFetcher reading dumped inputs from
// dumpRoot.
func NewReproduceFetcher(queue *messages.FetchMsgQueue, upstream *messages.BlockMsgQueue, dumpRoot string) *ReproduceFetcher {
	return &ReproduceFetcher{queue: queue, upstream: upstream, dumpRoot: dumpRoot}
}

// Run blocks, processing ReproduceFromStart requests until the queue closes
// or ctx is done.
func (f *ReproduceFetcher) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		msg, err := f.queue.Recv()
		if err != nil {
			log.Info("reproduce fetcher: queue closed, exiting")
			return
		}
		f.processRange(ctx, msg.StartBlockNumber, msg.Count)
	}
}

func (f *ReproduceFetcher) processRange(ctx context.Context, start, count uint64) {
	for n := start; n < start+count; n++ {
		if ctx.Err() != nil {
			return
		}
		begin := time.Now()
		p, err := inputs.LoadFromDir(n, f.dumpRoot)
		if err != nil {
			log.Error("reproduce fetcher: load_from_dir failed, skipping block", "block_number", n, "err", err)
			continue
		}
		elapsedMs := uint64(time.Since(begin).Milliseconds())
		rep := report.New(n, elapsedMs)
		f.upstream.Send(messages.NewProving(messages.ProvingMsg{FetchReport: rep, ProvingInputs: p}))
	}
}
