package fetcher

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// HeaderSource is the RPC block-subscription boundary the latest
// sub-fetcher multiplexes against, per §4.3. Concretely backed by
// ethclient.Client.SubscribeNewHead; narrowed to an interface so the
// sub-fetcher's tests can supply a fake stream of headers.
type HeaderSource interface {
	SubscribeNewHead(ctx context.Context) (<-chan *types.Header, ethereum.Subscription, error)
}

type wsHeaderSource struct {
	client *ethclient.Client
}

// NewWSHeaderSource dials wsURL and returns a HeaderSource over it. The
// connection must be a WebSocket (or IPC) endpoint; SubscribeNewHead is not
// supported over plain HTTP.
func NewWSHeaderSource(ctx context.Context, wsURL string) (HeaderSource, error) {
	client, err := ethclient.DialContext(ctx, wsURL)
	if err != nil {
		return nil, fmt.Errorf("fetcher: dial ws client: %w", err)
	}
	return &wsHeaderSource{client: client}, nil
}

func (s *wsHeaderSource) SubscribeNewHead(ctx context.Context) (<-chan *types.Header, ethereum.Subscription, error) {
	ch := make(chan *types.Header)
	sub, err := s.client.SubscribeNewHead(ctx, ch)
	if err != nil {
		return nil, nil, fmt.Errorf("fetcher: subscribe new head: %w", err)
	}
	return ch, sub, nil
}
