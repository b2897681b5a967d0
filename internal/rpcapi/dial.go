package rpcapi

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// DialOptions returns the client dial options every outbound stub in this
// package must use: JSON content-subtype, zstd compression, and the
// configured max message size on both directions. maxMsgBytes is the
// MAX_GRPC_MSG_BYTES configuration value.
func DialOptions(maxMsgBytes int) []grpc.DialOption {
	return []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.CallContentSubtype(codecName),
			grpc.UseCompressor(zstdCompressor{}.Name()),
			grpc.MaxCallRecvMsgSize(maxMsgBytes),
			grpc.MaxCallSendMsgSize(maxMsgBytes),
		),
	}
}

// Dial opens a client connection to addr with DialOptions applied.
func Dial(addr string, maxMsgBytes int) (*grpc.ClientConn, error) {
	cc, err := grpc.Dial(addr, DialOptions(maxMsgBytes)...)
	if err != nil {
		return nil, fmt.Errorf("rpcapi: dial %s: %w", addr, err)
	}
	return cc, nil
}

// ServerOptions returns the server options every embedded gRPC server in
// this package must use: the configured max message size on both
// directions. The JSON codec and zstd compressor are process-global via
// their init() registrations, negotiated per RPC by content-subtype and
// grpc-encoding headers respectively, so no server-side codec option is
// required here.
func ServerOptions(maxMsgBytes int) []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.MaxRecvMsgSize(maxMsgBytes),
		grpc.MaxSendMsgSize(maxMsgBytes),
	}
}
