package calculator

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name, also used as the
// health check service name.
const ServiceName = "mysticnumbers.calculator.v1.CalculatorService"

// Full method names.
const (
	ComputeProfileFullMethod = "/" + ServiceName + "/ComputeProfile"
	ReduceFullMethod         = "/" + ServiceName + "/Reduce"
	DescribeFullMethod       = "/" + ServiceName + "/Describe"
	LocalesFullMethod        = "/" + ServiceName + "/Locales"
)

// CalculatorServer is the server API. Messages are google.protobuf.Struct
// values holding the JSON form of the calculator views.
type CalculatorServer interface {
	ComputeProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reduce(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Describe(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Locales(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterCalculatorServer registers srv on registrar.
func RegisterCalculatorServer(registrar grpc.ServiceRegistrar, srv CalculatorServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes the calculator service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalculatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ComputeProfile",
			Handler:    unaryHandler(ComputeProfileFullMethod, CalculatorServer.ComputeProfile),
		},
		{
			MethodName: "Reduce",
			Handler:    unaryHandler(ReduceFullMethod, CalculatorServer.Reduce),
		},
		{
			MethodName: "Describe",
			Handler:    unaryHandler(DescribeFullMethod, CalculatorServer.Describe),
		},
		{
			MethodName: "Locales",
			Handler:    unaryHandler(LocalesFullMethod, CalculatorServer.Locales),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mysticnumbers/calculator/v1/calculator.proto",
}

type unaryMethod func(CalculatorServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, method unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		server := srv.(CalculatorServer)
		if interceptor == nil {
			return method(server, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return method(server, ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
