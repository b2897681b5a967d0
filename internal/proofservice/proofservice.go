// Package proofservice implements the proof service (C5): the embedded
// gRPC server remote provers call back on once a block finishes, wired the
// way crates/proof-service/src/lib.rs embeds tonic behind an h2c listener.
//
// The listener speaks cleartext HTTP/2 (h2c) and also accepts HTTP/1.1
// connections, but gRPC calls are served only over HTTP/2: grpc-go's
// handler rejects HTTP/1.1 requests and there is no gRPC-Web translation
// layer, so gRPC-Web clients are not served. It applies a permissive CORS
// policy via
// rs-cors's Go counterpart (github.com/rs/cors), and negotiates zstd
// compression and the configured max message size the same way the
// outbound stubs in internal/rpcapi do.
package proofservice

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/ethereum/go-ethereum/log"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"google.golang.org/grpc"

	"github.com/brevis-network/pico-ethproofs/internal/messages"
	"github.com/brevis-network/pico-ethproofs/internal/rpcapi"
)

// Service implements rpcapi.ProofServer, forwarding every completed proof
// as a Proved BlockMsg onto upstream.
type Service struct {
	upstream *messages.BlockMsgQueue
}

// New builds a Service that forwards completions onto upstream.
func New(upstream *messages.BlockMsgQueue) *Service {
	return &Service{upstream: upstream}
}

// CompleteProving implements rpcapi.ProofServer.
func (s *Service) CompleteProving(ctx context.Context, in *rpcapi.CompleteProvingResult) (*rpcapi.Empty, error) {
	log.Info("proofservice: received completion", "block_number", in.BlockNumber, "success", in.Success)
	s.upstream.Send(messages.NewProved(messages.CompleteProvingResult{
		BlockNumber:         in.BlockNumber,
		Success:             in.Success,
		Cycles:              in.Cycles,
		ProvingMilliseconds: in.ProvingMilliseconds,
		Proof:               in.Proof,
	}))
	return &rpcapi.Empty{}, nil
}

// Server wraps a grpc.Server bound to an h2c listener with permissive CORS,
// per §4.5 and §6.
type Server struct {
	addr       string
	grpcServer *grpc.Server
	httpServer *http.Server
}

// NewServer builds the embedded gRPC server for addr, registering svc as
// the Proof implementation. maxMsgBytes applies rpcapi.ServerOptions.
func NewServer(addr string, svc rpcapi.ProofServer, maxMsgBytes int) *Server {
	gs := grpc.NewServer(rpcapi.ServerOptions(maxMsgBytes)...)
	rpcapi.RegisterProofServer(gs, svc)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"*"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	})

	h2s := &http2.Server{}
	handler := corsHandler.Handler(gs)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: h2c.NewHandler(handler, h2s),
	}

	return &Server{addr: addr, grpcServer: gs, httpServer: httpServer}
}

// Serve blocks, accepting connections until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("proofservice: listen %s: %w", s.addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("proofservice: listening", "addr", s.addr)
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		log.Info("proofservice: shutting down")
		_ = s.httpServer.Shutdown(context.Background())
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("proofservice: serve: %w", err)
	}
}
