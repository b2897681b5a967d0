package provingclient

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/brevis-network/pico-ethproofs/internal/common/inputs"
	"github.com/brevis-network/pico-ethproofs/internal/rpcapi"
)

// dispatch implements §4.4's Dispatch(inputs): send the aggregation
// request, pad subblock inputs up to the stub count, then send one
// subblock request per stub.
func (c *ProvingClient) dispatch(ctx context.Context, in *inputs.ProvingInputs) error {
	k := len(in.SubblockInputs)
	numStubs := len(c.stubs.Subblock)
	if k < 1 || k > numStubs {
		return fmt.Errorf("provingclient: block %d has %d subblocks, only %d stubs available", in.BlockNumber, k, numStubs)
	}

	aggReq := &rpcapi.ProveAggregationRequest{
		BlockNumber:          in.BlockNumber,
		NumSubblocks:         uint32(k),
		SubblockPublicValues: in.SubblockPublicValues,
		Input:                in.AggInput,
	}
	if err := retryRequest(ctx, "aggregation", func(ctx context.Context) error {
		_, err := c.stubs.Agg.ProveAggregation(ctx, aggReq)
		return err
	}); err != nil {
		return err
	}

	padded := padSubblockInputs(in.SubblockInputs, numStubs)
	for i := 0; i < numStubs; i++ {
		i := i
		req := &rpcapi.ProveSubblockRequest{
			BlockNumber:   in.BlockNumber,
			NumSubblocks:  uint32(k),
			SubblockIndex: uint32(i),
			Input:         padded[i],
		}
		label := fmt.Sprintf("subblock[%d]", i)
		if err := retryRequest(ctx, label, func(ctx context.Context) error {
			_, err := c.stubs.Subblock[i].ProveSubblock(ctx, req)
			return err
		}); err != nil {
			return err
		}
	}
	return nil
}

// padSubblockInputs repeats the first subblock input up to numStubs
// entries, per §4.4 step 3 (the remote aggregator requires all subblock
// workers to be armed even when unused).
func padSubblockInputs(in [][]byte, numStubs int) [][]byte {
	if len(in) >= numStubs {
		return in
	}
	padded := make([][]byte, numStubs)
	copy(padded, in)
	for i := len(in); i < numStubs; i++ {
		padded[i] = in[0]
	}
	return padded
}

// retryRequest retries op up to MaxProvingRequestRetries times with
// ProvingRequestRetryInterval backoff; exhaustion is fatal, per §4.4.
func retryRequest(ctx context.Context, label string, op func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= MaxProvingRequestRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := op(ctx); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("provingclient: request failed, retrying", "target", label, "attempt", attempt, "err", err)
		}
		select {
		case <-time.After(ProvingRequestRetryInterval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	log.Error("provingclient: request retries exhausted, terminating", "target", label, "attempts", MaxProvingRequestRetries, "err", lastErr)
	return fmt.Errorf("provingclient: %s retries exhausted: %w", label, lastErr)
}
