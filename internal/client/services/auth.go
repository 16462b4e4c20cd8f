// Package services contains application services for the wallet CLI.
// This file defines the session service: minting access tokens, keeping the
// session in the local journal, and liveness probing.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/client/client"
	"github.com/dmitrijs2005/gophwallet/internal/client/models"
	"github.com/dmitrijs2005/gophwallet/internal/client/repositories/session"
	"github.com/dmitrijs2005/gophwallet/internal/dbx"
	"github.com/dmitrijs2005/gophwallet/internal/server/auth"
	"github.com/golang-jwt/jwt/v5"
)

// AuthService defines session operations for the CLI.
//
// Contract:
//   - Login: sign an access token for account with the shared secret, attach it
//     to the client and persist the session.
//   - Restore: reload a saved session whose token has not expired yet.
//   - Logout: forget the session locally and on the client.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Login(ctx context.Context, account string, operator bool, secret []byte) (*models.Session, error)
	Restore(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client   client.Client
	db       *sql.DB
	validity time.Duration
	now      func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client and
// journal. Minted tokens live for validity.
func NewAuthService(client client.Client, db *sql.DB, validity time.Duration) AuthService {
	return &authService{client: client, db: db, validity: validity, now: time.Now}
}

func (a *authService) Login(ctx context.Context, account string, operator bool, secret []byte) (*models.Session, error) {
	if account == "" {
		return nil, fmt.Errorf("%w: account is required", client.ErrInvalidInput)
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: secret is required", client.ErrInvalidInput)
	}

	token, err := auth.GenerateToken(account, operator, secret, a.validity)
	if err != nil {
		return nil, fmt.Errorf("token error: %w", err)
	}

	s := &models.Session{Account: account, AccessToken: token, Operator: operator}
	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return session.NewSQLiteRepository(tx).Save(ctx, s)
	})
	if err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	a.client.SetAccessToken(token)
	return s, nil
}

// Restore returns nil when nothing usable was saved. Expired sessions are
// removed.
func (a *authService) Restore(ctx context.Context) (*models.Session, error) {
	repo := session.NewSQLiteRepository(a.db)
	s, err := repo.Load(ctx)
	if err != nil || s == nil {
		return nil, err
	}

	if !a.usable(s.AccessToken) {
		if err := repo.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	a.client.SetAccessToken(s.AccessToken)
	return s, nil
}

// usable reads the expiry without the secret; the server still verifies
// the signature on every call.
func (a *authService) usable(token string) bool {
	claims := &auth.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return a.now().Before(claims.ExpiresAt.Time)
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetAccessToken("")
	if err := session.NewSQLiteRepository(a.db).Clear(ctx); err != nil {
		return err
	}
	return nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// IsUnauthorized reports whether err means the server refused the token.
func IsUnauthorized(err error) bool {
	return errors.Is(err, client.ErrUnauthorized)
}
