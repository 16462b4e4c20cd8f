// Package grpc exposes the wallet over gRPC.
package grpc

import (
	"context"
	"fmt"
	"net"

	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/server/auth"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/dmitrijs2005/gophwallet/internal/server/services"
	lru "github.com/hashicorp/golang-lru/v2"
	"google.golang.org/grpc"
)

// Wallet is the dispatcher the handlers forward to.
type Wallet interface {
	Deposit(ctx context.Context, caller string, amount uint64, recipient string) (*services.Receipt, error)
	Withdraw(ctx context.Context, caller string, amount uint64) (*services.Receipt, error)
	InternalTransfer(ctx context.Context, caller string, amount uint64, sender, recipient string, memo []byte) (*services.Receipt, error)
	ExternalTransfer(ctx context.Context, caller string, amount uint64, sender, recipient string, memo []byte) (*services.Receipt, error)
	MarkAsLost(ctx context.Context, caller, lost, newOwner string) (*services.Receipt, error)
	Dissent(ctx context.Context, caller, lost string) (*services.Receipt, error)
	ExecuteRecovery(ctx context.Context, caller, lost string) (*services.Receipt, error)

	GetBalance(ctx context.Context, account string) (*services.Receipt, error)
	GetMember(ctx context.Context, account string) (*services.Receipt, error)
	GetUnlockTime(ctx context.Context, account string) (*services.Receipt, error)
	GetLockingCoolDown(ctx context.Context, member string) (*services.Receipt, error)
	IsAccountUnlocked(ctx context.Context, account string) (*services.Receipt, error)
	GetCustodyBalance(ctx context.Context, account string) (*services.Receipt, error)
	GetHeight(ctx context.Context) (*services.Receipt, error)
	CallEvents(ctx context.Context, callID string) ([]models.Event, error)
}

// Chain advances the block height on operator request.
type Chain interface {
	MineBlocks(ctx context.Context, n uint64) (uint64, error)
}

type GRPCServer struct {
	address   string
	wallet    Wallet
	chain     Chain
	logger    logging.Logger
	jwtSecret []byte
	tokens    *lru.Cache[string, *auth.Identity]
}

// NewGRPCServer builds the server. tokenCacheSize bounds the number of
// verified access tokens kept in memory.
func NewGRPCServer(address string, l logging.Logger, w Wallet, c Chain, secretKey string, tokenCacheSize int) (*GRPCServer, error) {
	tokens, err := lru.New[string, *auth.Identity](tokenCacheSize)
	if err != nil {
		return nil, fmt.Errorf("token cache: %w", err)
	}
	return &GRPCServer{
		address:   address,
		wallet:    w,
		chain:     c,
		logger:    l.With("module", "grpc_server"),
		jwtSecret: []byte(secretKey),
		tokens:    tokens,
	}, nil
}

// NewServer creates a grpc.Server with the access token interceptor and the
// wallet service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	srv := grpc.NewServer(opts...)
	srv.RegisterService(&ServiceDesc, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
