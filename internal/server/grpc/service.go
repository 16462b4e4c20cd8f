package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "gophwallet.service.WalletService"

// FullMethod returns the gRPC path of a method of the wallet service.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// WalletServer is the server API of the wallet service. Every request and
// response is a google.protobuf.Struct.
type WalletServer interface {
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)

	Deposit(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Withdraw(context.Context, *structpb.Struct) (*structpb.Struct, error)
	InternalTransfer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExternalTransfer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	MarkAsLost(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Dissent(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExecuteRecovery(context.Context, *structpb.Struct) (*structpb.Struct, error)

	GetBalance(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetMember(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetUnlockTime(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetLockingCoolDown(context.Context, *structpb.Struct) (*structpb.Struct, error)
	IsAccountUnlocked(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCustodyBalance(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetHeight(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCallEvents(context.Context, *structpb.Struct) (*structpb.Struct, error)

	MineBlocks(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type access int

const (
	accessPublic access = iota
	accessCaller
	accessOperator
)

type method struct {
	name   string
	access access
	call   func(WalletServer, context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var methods = []method{
	{"Ping", accessPublic, WalletServer.Ping},

	{"Deposit", accessCaller, WalletServer.Deposit},
	{"Withdraw", accessCaller, WalletServer.Withdraw},
	{"InternalTransfer", accessCaller, WalletServer.InternalTransfer},
	{"ExternalTransfer", accessCaller, WalletServer.ExternalTransfer},
	{"MarkAsLost", accessCaller, WalletServer.MarkAsLost},
	{"Dissent", accessCaller, WalletServer.Dissent},
	{"ExecuteRecovery", accessCaller, WalletServer.ExecuteRecovery},

	{"GetBalance", accessPublic, WalletServer.GetBalance},
	{"GetMember", accessPublic, WalletServer.GetMember},
	{"GetUnlockTime", accessPublic, WalletServer.GetUnlockTime},
	{"GetLockingCoolDown", accessPublic, WalletServer.GetLockingCoolDown},
	{"IsAccountUnlocked", accessPublic, WalletServer.IsAccountUnlocked},
	{"GetCustodyBalance", accessPublic, WalletServer.GetCustodyBalance},
	{"GetHeight", accessPublic, WalletServer.GetHeight},
	{"GetCallEvents", accessPublic, WalletServer.GetCallEvents},

	{"MineBlocks", accessOperator, WalletServer.MineBlocks},
}

// accessOf maps full method names to the credentials they require.
var accessOf = func() map[string]access {
	m := make(map[string]access, len(methods))
	for _, md := range methods {
		m[FullMethod(md.name)] = md.access
	}
	return m
}()

func handler(md method) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		ws := srv.(WalletServer)
		if interceptor == nil {
			return md.call(ws, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(md.name)}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return md.call(ws, ctx, req.(*structpb.Struct))
		})
	}
}

// ServiceDesc describes the wallet service for grpc.Server.RegisterService.
var ServiceDesc = func() grpc.ServiceDesc {
	sd := grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*WalletServer)(nil),
		Streams:     []grpc.StreamDesc{},
		Metadata:    "gophwallet/wallet.proto",
	}
	for _, md := range methods {
		sd.Methods = append(sd.Methods, grpc.MethodDesc{MethodName: md.name, Handler: handler(md)})
	}
	return sd
}()
