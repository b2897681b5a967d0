package rpcapi

import (
	"context"

	"google.golang.org/grpc"
)

// AggregatorServer is implemented by whoever terminates the Aggregator
// service; in this system, only the provingmock package (SPEC_FULL.md's
// mock proving cluster) does.
type AggregatorServer interface {
	ProveAggregation(context.Context, *ProveAggregationRequest) (*Empty, error)
}

// AggregatorClient is the outbound stub the proving client dials.
type AggregatorClient interface {
	ProveAggregation(ctx context.Context, in *ProveAggregationRequest, opts ...grpc.CallOption) (*Empty, error)
}

type aggregatorClient struct {
	cc grpc.ClientConnInterface
}

// NewAggregatorClient builds a client stub over an already-dialed
// connection, using this package's JSON codec and zstd compressor.
func NewAggregatorClient(cc grpc.ClientConnInterface) AggregatorClient {
	return &aggregatorClient{cc: cc}
}

func (c *aggregatorClient) ProveAggregation(ctx context.Context, in *ProveAggregationRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, aggregatorProveAggregationMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

const aggregatorServiceName = "rpcapi.Aggregator"
const aggregatorProveAggregationMethod = "/" + aggregatorServiceName + "/ProveAggregation"

func aggregatorProveAggregationHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ProveAggregationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AggregatorServer).ProveAggregation(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: aggregatorProveAggregationMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AggregatorServer).ProveAggregation(ctx, req.(*ProveAggregationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// AggregatorServiceDesc is the hand-authored analogue of a protoc-gen-go-grpc
// _ServiceDesc: it is what RegisterAggregatorServer hands to grpc.Server so
// unary calls route to AggregatorServer.ProveAggregation by method name.
var AggregatorServiceDesc = grpc.ServiceDesc{
	ServiceName: aggregatorServiceName,
	HandlerType: (*AggregatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ProveAggregation",
			Handler:    aggregatorProveAggregationHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpcapi/aggregator.go",
}

// RegisterAggregatorServer registers srv against s using AggregatorServiceDesc.
func RegisterAggregatorServer(s grpc.ServiceRegistrar, srv AggregatorServer) {
	s.RegisterService(&AggregatorServiceDesc, srv)
}
