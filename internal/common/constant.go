// Package common contains shared constants and sentinel errors used across
// GophWallet components.
package common

import "math"

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// MaxMemoLength is the largest memo, in bytes, a transfer may carry.
const MaxMemoLength = 34

// MaxAmount bounds every amount and balance. PostgreSQL stores them as BIGINT.
const MaxAmount uint64 = math.MaxInt64
