package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const identityKey ctxKey = "identity"

// identityFrom returns the verified caller stored by the interceptor.
func identityFrom(ctx context.Context) (*auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*auth.Identity)
	return id, ok
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	level, known := accessOf[info.FullMethod]
	if !known {
		level = accessCaller
	}
	if level == accessPublic {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	id, err := s.verify(accessToken)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		s.logger.Warn(ctx, "rejected token", "method", info.FullMethod, "error", err)
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	if level == accessOperator && !id.Operator {
		return nil, status.Error(codes.PermissionDenied, "operator token required")
	}

	return handler(context.WithValue(ctx, identityKey, id), req)
}

// verify parses a token once and serves repeats from the cache until expiry.
func (s *GRPCServer) verify(token string) (*auth.Identity, error) {
	if id, ok := s.tokens.Get(token); ok {
		if time.Now().Before(id.Expires) {
			return id, nil
		}
		s.tokens.Remove(token)
		return nil, common.ErrTokenExpired
	}

	id, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	s.tokens.Add(token, id)
	return id, nil
}
