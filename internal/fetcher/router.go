package fetcher

import (
	"context"

	"github.com/ethereum/go-ethereum/log"

	"github.com/brevis-network/pico-ethproofs/internal/messages"
)

// Router reads BlockMsg::Fetch off its inbound queue and forwards the
// carried FetchMsg to the matching sub-fetcher's private queue, per §4.3.
// Any other BlockMsg variant is logged and dropped.
type Router struct {
	inbound *messages.BlockMsgQueue

	fromStart *messages.FetchMsgQueue
	latest    *messages.FetchMsgQueue
	reproduce *messages.FetchMsgQueue
}

// NewRouter wires a Router reading from inbound and fanning out to the three
// sub-fetcher queues supplied.
func NewRouter(inbound *messages.BlockMsgQueue, fromStart, latest, reproduce *messages.FetchMsgQueue) *Router {
	return &Router{inbound: inbound, fromStart: fromStart, latest: latest, reproduce: reproduce}
}

// Run blocks, routing messages until the inbound queue closes or ctx is
// done.
func (r *Router) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		msg, err := r.inbound.Recv()
		if err != nil {
			log.Info("fetcher router: inbound channel closed, exiting")
			return
		}
		if msg.Kind != messages.KindFetch {
			log.Warn("fetcher router: dropping unexpected message", "kind", msg.Kind)
			continue
		}
		switch msg.Fetch.Kind {
		case messages.FetchKindProveFromStart:
			r.fromStart.Send(msg.Fetch)
		case messages.FetchKindProveLatest:
			r.latest.Send(msg.Fetch)
		case messages.FetchKindReproduceFromStart:
			r.reproduce.Send(msg.Fetch)
		default:
			log.Warn("fetcher router: dropping unknown fetch variant", "kind", msg.Fetch.Kind)
		}
	}
}
