// Package reporter implements the reporter (C7): it owns the set of
// WebSocket watchers and fans a Report out to all of them, pruning any
// whose delivery channel has gone away, mirroring
// crates/reporter/src/lib.rs.
package reporter

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/log"

	"github.com/brevis-network/pico-ethproofs/internal/messages"
)

// Reporter fans out Report messages to every registered watcher.
type Reporter struct {
	inbound *messages.BlockMsgQueue

	mu       sync.Mutex
	watchers []*messages.BlockMsgQueue
}

// New builds a Reporter reading Watch/Report messages from inbound.
func New(inbound *messages.BlockMsgQueue) *Reporter {
	return &Reporter{inbound: inbound}
}

// Run blocks, handling Watch and Report messages until inbound closes or
// ctx is done.
func (r *Reporter) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		msg, err := r.inbound.Recv()
		if err != nil {
			log.Info("reporter: inbound channel closed, exiting")
			return
		}
		switch msg.Kind {
		case messages.KindWatch:
			r.addWatcher(msg.Watch)
		case messages.KindReport:
			r.broadcast(msg)
		default:
			log.Warn("reporter: dropping unexpected message", "kind", msg.Kind)
		}
	}
}

func (r *Reporter) addWatcher(w messages.WatchMsg) {
	q, ok := w.Sender.(*messages.BlockMsgQueue)
	if !ok {
		log.Error("reporter: watch sender is not a BlockMsgQueue, dropping")
		return
	}
	r.mu.Lock()
	r.watchers = append(r.watchers, q)
	r.mu.Unlock()
}

// broadcast sends msg to every watcher, pruning any whose queue has been
// closed (the corresponding WebSocket connection has gone away).
//
// A watcher's queue never reports send failure directly (Unbounded.Send is
// silent on a closed channel), so liveness is tracked by the fetch service
// closing the queue on disconnect; broadcast prunes queues it discovers
// closed via a best-effort liveness probe.
func (r *Reporter) broadcast(msg *messages.BlockMsg) {
	r.mu.Lock()
	defer r.mu.Unlock()

	live := r.watchers[:0]
	for _, w := range r.watchers {
		if w.IsClosed() {
			continue
		}
		w.Send(msg)
		live = append(live, w)
	}
	r.watchers = live
}

// WatcherCount reports the current number of live watchers, for tests and
// diagnostics.
func (r *Reporter) WatcherCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.watchers)
}
