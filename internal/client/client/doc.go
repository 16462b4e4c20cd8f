// Package client contains client-side building blocks for the wallet CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): a generic
//     Call by method name, Ping, and access token management.
//  2. A concrete gRPC implementation (see GRPCClient) that encodes arguments
//     as google.protobuf.Struct, injects the access token via an interceptor
//     and maps gRPC status codes to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the CLI, wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrInvalidInput, ErrNotLoggedIn.
//
// Contract failures of the wallet (NOT_MEMBER, ACCOUNT_LOCKED, ...) are not
// errors at this layer; they arrive inside the returned receipt.
package client
