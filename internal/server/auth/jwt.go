// Package auth issues and verifies the HS256 access tokens that identify
// the caller of a mutating wallet call.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the caller account and whether it may drive the chain.
type Claims struct {
	jwt.RegisteredClaims
	Account  string `json:"account"`
	Operator bool   `json:"operator,omitempty"`
}

// Identity is the verified content of a token.
type Identity struct {
	Account  string
	Operator bool
	Expires  time.Time
}

func GenerateToken(account string, operator bool, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Account:  account,
		Operator: operator,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseToken verifies tokenString. Expired tokens yield common.ErrTokenExpired,
// every other defect common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Account == "" {
		return nil, common.ErrInvalidToken
	}

	return &Identity{
		Account:  claims.Account,
		Operator: claims.Operator,
		Expires:  claims.ExpiresAt.Time,
	}, nil
}
