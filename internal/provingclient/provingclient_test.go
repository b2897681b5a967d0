package provingclient

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc"

	"github.com/brevis-network/pico-ethproofs/internal/common/inputs"
	"github.com/brevis-network/pico-ethproofs/internal/common/report"
	"github.com/brevis-network/pico-ethproofs/internal/messages"
	"github.com/brevis-network/pico-ethproofs/internal/rpcapi"
)

type fakeCloser struct{ closed bool }

func (c *fakeCloser) Close() error { c.closed = true; return nil }

func newSample(blockNumber uint64, numSubblocks int) *inputs.ProvingInputs {
	in := &inputs.ProvingInputs{BlockNumber: blockNumber}
	for i := 0; i < numSubblocks; i++ {
		in.SubblockInputs = append(in.SubblockInputs, []byte{byte(i)})
		in.SubblockPublicValues = append(in.SubblockPublicValues, []byte{byte(i)})
	}
	return in
}

func TestPadSubblockInputsRepeatsFirstElement(t *testing.T) {
	in := [][]byte{{1, 2}}
	padded := padSubblockInputs(in, 3)
	if len(padded) != 3 {
		t.Fatalf("got %d entries, want 3", len(padded))
	}
	for i, p := range padded {
		if string(p) != string([]byte{1, 2}) {
			t.Fatalf("padded[%d] = %v, want [1 2]", i, p)
		}
	}
}

func TestPadSubblockInputsNoOpWhenAlreadyFull(t *testing.T) {
	in := [][]byte{{1}, {2}, {3}}
	padded := padSubblockInputs(in, 3)
	if len(padded) != 3 || string(padded[2]) != string([]byte{3}) {
		t.Fatalf("unexpected padding result: %v", padded)
	}
}

func TestHandleMessageSerializesAcrossBlocks(t *testing.T) {
	upstream, clientSide := messages.NewProvingEndpointPair()
	c := &ProvingClient{endpoint: clientSide, cfg: Config{MaxRecoveryAttempts: DefaultMaxRecoveryAttempts}}
	c.stubs.Subblock = []rpcapi.SubblockClient{noopSubblockClient{}}
	c.stubs.Agg = noopAggClient{}

	ctx := context.Background()

	r1 := report.New(1, 10)
	p1 := newSample(1, 1)
	upstream.Send(messages.NewProving(messages.ProvingMsg{FetchReport: r1, ProvingInputs: p1}))
	msg, err := clientSide.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if err := c.handleMessage(ctx, msg); err != nil {
		t.Fatalf("handleMessage: %v", err)
	}
	if c.inFlight == nil || c.inFlight.BlockNumber != 1 {
		t.Fatalf("expected block 1 in flight, got %+v", c.inFlight)
	}

	r2 := report.New(2, 10)
	p2 := newSample(2, 1)
	upstream.Send(messages.NewProving(messages.ProvingMsg{FetchReport: r2, ProvingInputs: p2}))
	msg, err = clientSide.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}
	if err := c.handleMessage(ctx, msg); err != nil {
		t.Fatalf("handleMessage: %v", err)
	}
	if c.inFlight.BlockNumber != 1 {
		t.Fatalf("block 2 should be pending, not in flight: %+v", c.inFlight)
	}
	if len(c.pending) != 1 || c.pending[0].FetchReport.BlockNumber != 2 {
		t.Fatalf("expected block 2 pending, got %+v", c.pending)
	}

	proved := messages.NewProved(messages.CompleteProvingResult{BlockNumber: 1, Success: true, Cycles: 99, ProvingMilliseconds: 5})
	if err := c.handleMessage(ctx, proved); err != nil {
		t.Fatalf("handleMessage proved: %v", err)
	}

	reportMsg, err := upstream.Recv()
	if err != nil {
		t.Fatalf("Recv report: %v", err)
	}
	if reportMsg.Kind != messages.KindReport || reportMsg.Report.BlockNumber != 1 || !reportMsg.Report.Success {
		t.Fatalf("unexpected report: %+v", reportMsg)
	}

	if c.inFlight == nil || c.inFlight.BlockNumber != 2 {
		t.Fatalf("expected block 2 to start after block 1 completed, got %+v", c.inFlight)
	}
	if len(c.pending) != 0 {
		t.Fatalf("pending should be drained, got %+v", c.pending)
	}
}

func TestHandleMessageFatalOnProvedBlockMismatch(t *testing.T) {
	_, clientSide := messages.NewProvingEndpointPair()
	c := &ProvingClient{endpoint: clientSide, cfg: Config{MaxRecoveryAttempts: DefaultMaxRecoveryAttempts}}
	c.inFlight = report.New(5, 1)

	mismatch := messages.NewProved(messages.CompleteProvingResult{BlockNumber: 6})
	if err := c.handleMessage(context.Background(), mismatch); err == nil {
		t.Fatal("expected fatal error on block number mismatch")
	}
}

func TestRecoverEscalatesAfterBudgetExhausted(t *testing.T) {
	_, clientSide := messages.NewProvingEndpointPair()
	cfg := Config{MaxRecoveryAttempts: 1, AggURL: "fake-agg", SubblockURLs: []string{"fake-subblock-0"}}
	c := New(cfg, clientSide, fakeDialer{}, func(ctx context.Context, name string, args ...string) error {
		return nil
	})
	c.dockerRetryWait = time.Millisecond
	c.clientRetryInterval = time.Millisecond
	c.inFlight = report.New(1, 1)
	c.lastInputs = newSample(1, 1)
	c.stubs.Subblock = []rpcapi.SubblockClient{noopSubblockClient{}}
	c.stubs.Agg = noopAggClient{}

	if err := c.recover(context.Background()); err != nil {
		t.Fatalf("first recovery should succeed, got: %v", err)
	}
	if err := c.recover(context.Background()); err == nil {
		t.Fatal("expected second recovery to exceed budget and fail")
	}
}

type fakeDialer struct{}

func (fakeDialer) DialAggregator(_ context.Context, _ string, _ int) (rpcapi.AggregatorClient, Closer, error) {
	return noopAggClient{}, &fakeCloser{}, nil
}

func (fakeDialer) DialSubblock(_ context.Context, _ string, _ int) (rpcapi.SubblockClient, Closer, error) {
	return noopSubblockClient{}, &fakeCloser{}, nil
}

type noopAggClient struct{}

func (noopAggClient) ProveAggregation(_ context.Context, _ *rpcapi.ProveAggregationRequest, _ ...grpc.CallOption) (*rpcapi.Empty, error) {
	return &rpcapi.Empty{}, nil
}

type noopSubblockClient struct{}

func (noopSubblockClient) ProveSubblock(_ context.Context, _ *rpcapi.ProveSubblockRequest, _ ...grpc.CallOption) (*rpcapi.Empty, error) {
	return &rpcapi.Empty{}, nil
}
