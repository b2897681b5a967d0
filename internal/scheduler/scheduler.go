// Package scheduler implements the scheduler (C8): the pure multiplexer
// owning every edge of the message graph in §4.8, mirroring
// crates/scheduler/src/lib.rs. It holds no per-block state; each of its
// four source loops just routes by BlockMsg variant and forwards.
package scheduler

import (
	"context"

	"github.com/ethereum/go-ethereum/log"

	"github.com/brevis-network/pico-ethproofs/internal/messages"
)

// Scheduler owns the four inbound edges and the three outbound queues they
// fan into, per §4.8's table.
type Scheduler struct {
	// Inbound sources.
	fetchServiceIn *messages.BlockMsgQueue // Fetch, Watch
	proofServiceIn *messages.BlockMsgQueue // Proved
	fetcherIn      *messages.BlockMsgQueue // Proving
	provingClient  *messages.ProvingEndpoint

	// Outbound destinations.
	fetcherOut  *messages.BlockMsgQueue
	reporterOut *messages.BlockMsgQueue
}

// New wires a Scheduler. fetchServiceIn and proofServiceIn are the queues
// the fetch and proof services send onto; fetcherIn is the queue the
// fetcher's Proving messages arrive on; provingClient is the scheduler's
// end of the duplex channel to the proving client (see
// messages.NewProvingEndpointPair); fetcherOut and reporterOut are the
// fetcher's and reporter's inbound queues.
func New(fetchServiceIn, proofServiceIn, fetcherIn *messages.BlockMsgQueue, provingClient *messages.ProvingEndpoint, fetcherOut, reporterOut *messages.BlockMsgQueue) *Scheduler {
	return &Scheduler{
		fetchServiceIn: fetchServiceIn,
		proofServiceIn: proofServiceIn,
		fetcherIn:      fetcherIn,
		provingClient:  provingClient,
		fetcherOut:     fetcherOut,
		reporterOut:    reporterOut,
	}
}

// Run starts all four routing loops and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	go s.routeFetchService(ctx)
	go s.routeProofService(ctx)
	go s.routeFetcher(ctx)
	go s.routeProvingClient(ctx)
	<-ctx.Done()
}

// routeFetchService reads Fetch/Watch messages off fetchServiceIn: Fetch
// goes to the fetcher, Watch goes to the reporter.
func (s *Scheduler) routeFetchService(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		msg, err := s.fetchServiceIn.Recv()
		if err != nil {
			log.Info("scheduler: fetch service channel closed, exiting route")
			return
		}
		switch msg.Kind {
		case messages.KindFetch:
			s.fetcherOut.Send(msg)
		case messages.KindWatch:
			s.reporterOut.Send(msg)
		default:
			log.Warn("scheduler: dropping unexpected message from fetch service", "kind", msg.Kind)
		}
	}
}

// routeProofService reads Proved messages off proofServiceIn and forwards
// them to the proving client.
func (s *Scheduler) routeProofService(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		msg, err := s.proofServiceIn.Recv()
		if err != nil {
			log.Info("scheduler: proof service channel closed, exiting route")
			return
		}
		if msg.Kind != messages.KindProved {
			log.Warn("scheduler: dropping unexpected message from proof service", "kind", msg.Kind)
			continue
		}
		s.provingClient.Send(msg)
	}
}

// routeFetcher reads Proving messages off fetcherIn and forwards them to
// the proving client.
func (s *Scheduler) routeFetcher(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		msg, err := s.fetcherIn.Recv()
		if err != nil {
			log.Info("scheduler: fetcher channel closed, exiting route")
			return
		}
		if msg.Kind != messages.KindProving {
			log.Warn("scheduler: dropping unexpected message from fetcher", "kind", msg.Kind)
			continue
		}
		s.provingClient.Send(msg)
	}
}

// routeProvingClient reads Report messages off the proving client's
// duplex endpoint and forwards them to the reporter.
func (s *Scheduler) routeProvingClient(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		msg, err := s.provingClient.Recv()
		if err != nil {
			log.Info("scheduler: proving client channel closed, exiting route")
			return
		}
		if msg.Kind != messages.KindReport {
			log.Warn("scheduler: dropping unexpected message from proving client", "kind", msg.Kind)
			continue
		}
		s.reporterOut.Send(msg)
	}
}
