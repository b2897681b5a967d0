// Package provingmock implements the mock proving cluster from
// SPEC_FULL.md's supplemented features: an Aggregator + N Subblock gRPC
// server pair that, after a configurable fixed latency, calls back into a
// configured proof-service URL with a canned CompleteProvingResult. It is
// the harness the end-to-end scenarios in spec.md's examples are phrased
// against ("mock proving service that echoes success after tau ms").
package provingmock

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"google.golang.org/grpc"

	"github.com/brevis-network/pico-ethproofs/internal/rpcapi"
)

// Config bundles the mock cluster's static behavior.
type Config struct {
	Addr            string
	ProofServiceURL string
	MaxGRPCMsgBytes int
	Latency         time.Duration
	Success         bool
	Cycles          uint64
	Proof           []byte
}

// Cluster embeds a single gRPC server exposing both Aggregator and
// Subblock; a real deployment runs one aggregator process and N subblock
// processes, but a single listener is enough to exercise the proving
// client end to end.
type Cluster struct {
	cfg        Config
	grpcServer *grpc.Server

	proofConn   *grpc.ClientConn
	proofClient rpcapi.ProofClient
}

// New builds an unstarted Cluster. Dial happens in Serve so construction
// never fails on proof-service availability.
func New(cfg Config) *Cluster {
	return &Cluster{cfg: cfg}
}

// Serve dials the proof service, registers both mock services, and blocks
// accepting connections until ctx is done.
func (c *Cluster) Serve(ctx context.Context) error {
	proofConn, err := rpcapi.Dial(c.cfg.ProofServiceURL, c.cfg.MaxGRPCMsgBytes)
	if err != nil {
		return fmt.Errorf("provingmock: dial proof service: %w", err)
	}
	defer proofConn.Close()
	c.proofConn = proofConn
	c.proofClient = rpcapi.NewProofClient(proofConn)

	c.grpcServer = grpc.NewServer(rpcapi.ServerOptions(c.cfg.MaxGRPCMsgBytes)...)
	rpcapi.RegisterAggregatorServer(c.grpcServer, c)
	rpcapi.RegisterSubblockServer(c.grpcServer, c)

	ln, err := net.Listen("tcp", c.cfg.Addr)
	if err != nil {
		return fmt.Errorf("provingmock: listen %s: %w", c.cfg.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("provingmock: listening", "addr", c.cfg.Addr, "latency", c.cfg.Latency)
		errCh <- c.grpcServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		log.Info("provingmock: shutting down")
		c.grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		return fmt.Errorf("provingmock: serve: %w", err)
	}
}

// ProveAggregation implements rpcapi.AggregatorServer. It acks immediately
// and schedules the canned completion callback after cfg.Latency; the
// dispatcher sends exactly one aggregation request per block dispatch (the
// first request, before the subblock ones), so triggering off it alone
// gives one echo per dispatch.
func (c *Cluster) ProveAggregation(ctx context.Context, in *rpcapi.ProveAggregationRequest) (*rpcapi.Empty, error) {
	log.Debug("provingmock: received aggregation request", "block_number", in.BlockNumber)
	go c.scheduleCompletion(in.BlockNumber)
	return &rpcapi.Empty{}, nil
}

// ProveSubblock implements rpcapi.SubblockServer. It just acknowledges; the
// canned completion is driven entirely by ProveAggregation.
func (c *Cluster) ProveSubblock(ctx context.Context, in *rpcapi.ProveSubblockRequest) (*rpcapi.Empty, error) {
	log.Debug("provingmock: received subblock request", "block_number", in.BlockNumber, "subblock_index", in.SubblockIndex)
	return &rpcapi.Empty{}, nil
}

func (c *Cluster) scheduleCompletion(blockNumber uint64) {
	time.Sleep(c.cfg.Latency)

	result := &rpcapi.CompleteProvingResult{
		BlockNumber:         blockNumber,
		Success:             c.cfg.Success,
		Cycles:              c.cfg.Cycles,
		ProvingMilliseconds: uint64(c.cfg.Latency.Milliseconds()),
		Proof:               c.cfg.Proof,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := c.proofClient.CompleteProving(ctx, result); err != nil {
		log.Error("provingmock: complete_proving callback failed", "block_number", blockNumber, "err", err)
	}
}
