// Package fetchservice implements the fetch service (C6): the single
// HTTP+WebSocket front door, mirroring crates/fetch-service/src/lib.rs.
// HTTP routes translate query parameters into a Fetch BlockMsg; the
// WebSocket route registers a Watch and streams reports back as
// length-prefixed binary frames.
package fetchservice

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/log"

	"github.com/brevis-network/pico-ethproofs/internal/messages"
)

// Service holds the single upstream queue every handler sends onto.
type Service struct {
	upstream *messages.BlockMsgQueue
}

// New builds a Service sending Fetch/Watch messages onto upstream.
func New(upstream *messages.BlockMsgQueue) *Service {
	return &Service{upstream: upstream}
}

// Mux builds the http.Handler serving every route named in §4.6.
func (s *Service) Mux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/prove_block_by_number", s.handleProveBlockByNumber)
	mux.HandleFunc("/prove_latest_block", s.handleProveLatestBlock)
	mux.HandleFunc("/reproduce_block_by_number", s.handleReproduceBlockByNumber)
	mux.HandleFunc("/", s.handleWebSocket)
	return mux
}

// Server binds Service's mux to one TCP address.
type Server struct {
	addr       string
	httpServer *http.Server
}

// NewServer builds a Server listening on addr.
func NewServer(addr string, svc *Service) *Server {
	return &Server{
		addr:       addr,
		httpServer: &http.Server{Addr: addr, Handler: svc.Mux()},
	}
}

// Serve blocks, accepting connections until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("fetchservice: listening", "addr", s.addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("fetchservice: shutting down")
		_ = s.httpServer.Shutdown(context.Background())
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("fetchservice: serve: %w", err)
	}
}
