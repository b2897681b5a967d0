package rpcapi

import (
	"context"

	"google.golang.org/grpc"
)

// SubblockServer is implemented by whoever terminates the Subblock service;
// in this system, only the provingmock package does.
type SubblockServer interface {
	ProveSubblock(context.Context, *ProveSubblockRequest) (*Empty, error)
}

// SubblockClient is the outbound stub the proving client dials, one per
// subblock worker URL.
type SubblockClient interface {
	ProveSubblock(ctx context.Context, in *ProveSubblockRequest, opts ...grpc.CallOption) (*Empty, error)
}

type subblockClient struct {
	cc grpc.ClientConnInterface
}

// NewSubblockClient builds a client stub over an already-dialed connection.
func NewSubblockClient(cc grpc.ClientConnInterface) SubblockClient {
	return &subblockClient{cc: cc}
}

func (c *subblockClient) ProveSubblock(ctx context.Context, in *ProveSubblockRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, subblockProveSubblockMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

const subblockServiceName = "rpcapi.Subblock"
const subblockProveSubblockMethod = "/" + subblockServiceName + "/ProveSubblock"

func subblockProveSubblockHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ProveSubblockRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SubblockServer).ProveSubblock(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: subblockProveSubblockMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SubblockServer).ProveSubblock(ctx, req.(*ProveSubblockRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// SubblockServiceDesc is the hand-authored analogue of a protoc-gen-go-grpc
// _ServiceDesc for the Subblock service.
var SubblockServiceDesc = grpc.ServiceDesc{
	ServiceName: subblockServiceName,
	HandlerType: (*SubblockServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ProveSubblock",
			Handler:    subblockProveSubblockHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpcapi/subblock.go",
}

// RegisterSubblockServer registers srv against s using SubblockServiceDesc.
func RegisterSubblockServer(s grpc.ServiceRegistrar, srv SubblockServer) {
	s.RegisterService(&SubblockServiceDesc, srv)
}
