package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	default:
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) reply(ctx context.Context, r *services.Receipt, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	out, err := encodeReceipt(r)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return out, nil
}

func caller(ctx context.Context) (string, error) {
	id, ok := identityFrom(ctx)
	if !ok {
		return "", common.ErrorUnauthorized
	}
	return id.Account, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"status": "OK"})
}

func (s *GRPCServer) Deposit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	amount, err := amountArg(req, "amount")
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	r, err := s.wallet.Deposit(ctx, who, amount, stringArg(req, "recipient"))
	return s.reply(ctx, r, err)
}

func (s *GRPCServer) Withdraw(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	amount, err := amountArg(req, "amount")
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	r, err := s.wallet.Withdraw(ctx, who, amount)
	return s.reply(ctx, r, err)
}

func (s *GRPCServer) InternalTransfer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	amount, err := amountArg(req, "amount")
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	memo, err := memoArg(req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	r, err := s.wallet.InternalTransfer(ctx, who, amount,
		stringArg(req, "sender"), stringArg(req, "recipient"), memo)
	return s.reply(ctx, r, err)
}

func (s *GRPCServer) ExternalTransfer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	amount, err := amountArg(req, "amount")
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	memo, err := memoArg(req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	r, err := s.wallet.ExternalTransfer(ctx, who, amount,
		stringArg(req, "sender"), stringArg(req, "recipient"), memo)
	return s.reply(ctx, r, err)
}

func (s *GRPCServer) MarkAsLost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	r, err := s.wallet.MarkAsLost(ctx, who, stringArg(req, "lost_account"), stringArg(req, "new_owner"))
	return s.reply(ctx, r, err)
}

func (s *GRPCServer) Dissent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	r, err := s.wallet.Dissent(ctx, who, stringArg(req, "lost_account"))
	return s.reply(ctx, r, err)
}

func (s *GRPCServer) ExecuteRecovery(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	who, err := caller(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	r, err := s.wallet.ExecuteRecovery(ctx, who, stringArg(req, "lost_account"))
	return s.reply(ctx, r, err)
}

func (s *GRPCServer) GetBalance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := s.wallet.GetBalance(ctx, stringArg(req, "account"))
	return s.reply(ctx, r, err)
}

func (s *GRPCServer) GetMember(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := s.wallet.GetMember(ctx, stringArg(req, "account"))
	return s.reply(ctx, r, err)
}

func (s *GRPCServer) GetUnlockTime(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := s.wallet.GetUnlockTime(ctx, stringArg(req, "account"))
	return s.reply(ctx, r, err)
}

func (s *GRPCServer) GetLockingCoolDown(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := s.wallet.GetLockingCoolDown(ctx, stringArg(req, "account"))
	return s.reply(ctx, r, err)
}

func (s *GRPCServer) IsAccountUnlocked(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := s.wallet.IsAccountUnlocked(ctx, stringArg(req, "account"))
	return s.reply(ctx, r, err)
}

func (s *GRPCServer) GetCustodyBalance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := s.wallet.GetCustodyBalance(ctx, stringArg(req, "account"))
	return s.reply(ctx, r, err)
}

func (s *GRPCServer) GetHeight(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := s.wallet.GetHeight(ctx)
	return s.reply(ctx, r, err)
}

func (s *GRPCServer) GetCallEvents(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	events, err := s.wallet.CallEvents(ctx, stringArg(req, "call_id"))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return structpb.NewStruct(map[string]any{"events": encodeEvents(events)})
}

func (s *GRPCServer) MineBlocks(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	n, err := amountArg(req, "count")
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if n == 0 || n > services.MaxBlocksPerCall {
		return nil, status.Errorf(codes.InvalidArgument, "count must be within 1..%d", services.MaxBlocksPerCall)
	}
	h, err := s.chain.MineBlocks(ctx, n)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if id, ok := identityFrom(ctx); ok {
		s.logger.Info(ctx, "blocks mined", "operator", id.Account, "count", n, "height", h)
	}
	return structpb.NewStruct(map[string]any{"height": h})
}
