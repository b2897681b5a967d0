package rpcapi

import (
	"context"

	"google.golang.org/grpc"
)

// ProofServer is implemented by the proof service (C5): the single inbound
// RPC remote workers call back on once a block is proved.
type ProofServer interface {
	CompleteProving(context.Context, *CompleteProvingResult) (*Empty, error)
}

// ProofClient is the stub a remote worker (or the provingmock cluster)
// uses to report a finished proof.
type ProofClient interface {
	CompleteProving(ctx context.Context, in *CompleteProvingResult, opts ...grpc.CallOption) (*Empty, error)
}

type proofClient struct {
	cc grpc.ClientConnInterface
}

// NewProofClient builds a client stub over an already-dialed connection.
func NewProofClient(cc grpc.ClientConnInterface) ProofClient {
	return &proofClient{cc: cc}
}

func (c *proofClient) CompleteProving(ctx context.Context, in *CompleteProvingResult, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, proofCompleteProvingMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

const proofServiceName = "rpcapi.Proof"
const proofCompleteProvingMethod = "/" + proofServiceName + "/CompleteProving"

func proofCompleteProvingHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CompleteProvingResult)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProofServer).CompleteProving(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: proofCompleteProvingMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ProofServer).CompleteProving(ctx, req.(*CompleteProvingResult))
	}
	return interceptor(ctx, in, info, handler)
}

// ProofServiceDesc is the hand-authored analogue of a protoc-gen-go-grpc
// _ServiceDesc for the Proof service.
var ProofServiceDesc = grpc.ServiceDesc{
	ServiceName: proofServiceName,
	HandlerType: (*ProofServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CompleteProving",
			Handler:    proofCompleteProvingHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpcapi/proof.go",
}

// RegisterProofServer registers srv against s using ProofServiceDesc.
func RegisterProofServer(s grpc.ServiceRegistrar, srv ProofServer) {
	s.RegisterService(&ProofServiceDesc, srv)
}
