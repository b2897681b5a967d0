package provingmock

import (
	"context"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc"

	"github.com/brevis-network/pico-ethproofs/internal/rpcapi"
)

type recordingProofClient struct {
	mu      sync.Mutex
	results []*rpcapi.CompleteProvingResult
	done    chan struct{}
}

func newRecordingProofClient() *recordingProofClient {
	return &recordingProofClient{done: make(chan struct{}, 1)}
}

func (r *recordingProofClient) CompleteProving(ctx context.Context, in *rpcapi.CompleteProvingResult, opts ...grpc.CallOption) (*rpcapi.Empty, error) {
	r.mu.Lock()
	r.results = append(r.results, in)
	r.mu.Unlock()
	select {
	case r.done <- struct{}{}:
	default:
	}
	return &rpcapi.Empty{}, nil
}

func TestProveAggregationSchedulesCannedCompletion(t *testing.T) {
	cfg := Config{Latency: 10 * time.Millisecond, Success: true, Cycles: 42, Proof: []byte{9}}
	c := New(cfg)
	rec := newRecordingProofClient()
	c.proofClient = rec

	if _, err := c.ProveAggregation(context.Background(), &rpcapi.ProveAggregationRequest{BlockNumber: 7}); err != nil {
		t.Fatalf("ProveAggregation: %v", err)
	}

	select {
	case <-rec.done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for completion callback")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.results) != 1 {
		t.Fatalf("expected 1 completion, got %d", len(rec.results))
	}
	got := rec.results[0]
	if got.BlockNumber != 7 || !got.Success || got.Cycles != 42 {
		t.Fatalf("unexpected completion: %+v", got)
	}
}

func TestProveSubblockAcksWithoutCallback(t *testing.T) {
	c := New(Config{Latency: time.Millisecond})
	rec := newRecordingProofClient()
	c.proofClient = rec

	if _, err := c.ProveSubblock(context.Background(), &rpcapi.ProveSubblockRequest{BlockNumber: 1, SubblockIndex: 0}); err != nil {
		t.Fatalf("ProveSubblock: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.results) != 0 {
		t.Fatalf("expected no completion from ProveSubblock alone, got %d", len(rec.results))
	}
}
