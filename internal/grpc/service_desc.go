package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	DishServiceName  = "grubdash.v1.DishService"
	OrderServiceName = "grubdash.v1.OrderService"
)

type DishServiceServer interface {
	ListDishes(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateDish(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ReadDish(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateDish(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type OrderServiceServer interface {
	ListOrders(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ReadOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// Register adds both services to r.
func (s *Server) Register(r grpc.ServiceRegistrar) {
	r.RegisterService(&dishServiceDesc, s)
	r.RegisterService(&orderServiceDesc, s)
}

type unaryCall func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

func unary(service, method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv, ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + service + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv, ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var dishServiceDesc = grpc.ServiceDesc{
	ServiceName: DishServiceName,
	HandlerType: (*DishServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(DishServiceName, "ListDishes", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(DishServiceServer).ListDishes(ctx, in)
		}),
		unary(DishServiceName, "CreateDish", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(DishServiceServer).CreateDish(ctx, in)
		}),
		unary(DishServiceName, "ReadDish", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(DishServiceServer).ReadDish(ctx, in)
		}),
		unary(DishServiceName, "UpdateDish", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(DishServiceServer).UpdateDish(ctx, in)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/grubdash/v1/grubdash.proto",
}

var orderServiceDesc = grpc.ServiceDesc{
	ServiceName: OrderServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(OrderServiceName, "ListOrders", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(OrderServiceServer).ListOrders(ctx, in)
		}),
		unary(OrderServiceName, "CreateOrder", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(OrderServiceServer).CreateOrder(ctx, in)
		}),
		unary(OrderServiceName, "ReadOrder", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(OrderServiceServer).ReadOrder(ctx, in)
		}),
		unary(OrderServiceName, "UpdateOrder", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(OrderServiceServer).UpdateOrder(ctx, in)
		}),
		unary(OrderServiceName, "DeleteOrder", func(srv any, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return srv.(OrderServiceServer).DeleteOrder(ctx, in)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/grubdash/v1/grubdash.proto",
}
