package provingclient

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/brevis-network/pico-ethproofs/internal/rpcapi"
)

// grpcDialer is the production Dialer: real gRPC connections via
// rpcapi.Dial, configured for zstd and the JSON codec.
type grpcDialer struct{}

func (grpcDialer) DialAggregator(ctx context.Context, url string, maxMsgBytes int) (rpcapi.AggregatorClient, Closer, error) {
	cc, err := rpcapi.Dial(url, maxMsgBytes)
	if err != nil {
		return nil, nil, err
	}
	return rpcapi.NewAggregatorClient(cc), cc, nil
}

func (grpcDialer) DialSubblock(ctx context.Context, url string, maxMsgBytes int) (rpcapi.SubblockClient, Closer, error) {
	cc, err := rpcapi.Dial(url, maxMsgBytes)
	if err != nil {
		return nil, nil, err
	}
	return rpcapi.NewSubblockClient(cc), cc, nil
}

// connectAll dials the aggregator and every subblock worker, retrying each
// forever at ClientRetryInterval until it succeeds or ctx is canceled, per
// §4.4's startup.
func (c *ProvingClient) connectAll(ctx context.Context) error {
	agg, aggCloser, err := c.connectWithRetry(ctx, "aggregator", func() (interface{}, Closer, error) {
		stub, closer, err := c.dialer.DialAggregator(ctx, c.cfg.AggURL, c.cfg.MaxGRPCMsgBytes)
		return stub, closer, err
	})
	if err != nil {
		return err
	}
	c.stubs.Agg = agg.(rpcapi.AggregatorClient)
	c.stubs.AggCloser = aggCloser

	c.stubs.Subblock = make([]rpcapi.SubblockClient, len(c.cfg.SubblockURLs))
	c.stubs.SubblockCloser = make([]Closer, len(c.cfg.SubblockURLs))
	for i, url := range c.cfg.SubblockURLs {
		i, url := i, url
		stub, closer, err := c.connectWithRetry(ctx, fmt.Sprintf("subblock[%d]", i), func() (interface{}, Closer, error) {
			s, cl, err := c.dialer.DialSubblock(ctx, url, c.cfg.MaxGRPCMsgBytes)
			return s, cl, err
		})
		if err != nil {
			return err
		}
		c.stubs.Subblock[i] = stub.(rpcapi.SubblockClient)
		c.stubs.SubblockCloser[i] = closer
	}
	return nil
}

// connectWithRetry retries dial until it succeeds or ctx is canceled.
func (c *ProvingClient) connectWithRetry(ctx context.Context, label string, dial func() (interface{}, Closer, error)) (interface{}, Closer, error) {
	for {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		stub, closer, err := dial()
		if err == nil {
			return stub, closer, nil
		}
		log.Warn("provingclient: connect failed, retrying", "target", label, "err", err, "retry_in", c.clientRetryInterval)
		select {
		case <-time.After(c.clientRetryInterval):
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
}

// reconnectAll rebuilds every stub, closing the old ones first. Used by
// recovery after the container-restart command completes.
func (c *ProvingClient) reconnectAll(ctx context.Context) error {
	if c.stubs.AggCloser != nil {
		_ = c.stubs.AggCloser.Close()
	}
	for _, cl := range c.stubs.SubblockCloser {
		if cl != nil {
			_ = cl.Close()
		}
	}
	return c.connectAll(ctx)
}
