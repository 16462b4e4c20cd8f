// Package config handles configuration for the wallet server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the wallet server.
//
// Fields:
//   - EndpointAddrGRPC / MetricsAddr: bind addresses of the gRPC and /metrics endpoints.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps the whole state in memory.
//   - SecretKey: HMAC secret for signing access tokens (HS256).
//   - ContractAccount: the account holding the custodied funds.
//   - GenesisMembers / FundedAccounts / InitialFunds: state seeded into an empty store.
//   - BlockInterval: period of timed block production, 0 disables it.
//   - SnapshotEvery: export a snapshot every N blocks, 0 disables exports.
//   - S3*: object storage settings for snapshot exports.
type Config struct {
	EndpointAddrGRPC            string
	MetricsAddr                 string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	TokenCacheSize              int
	ContractAccount             string
	GenesisMembers              []string
	FundedAccounts              []string
	InitialFunds                uint64
	BlockInterval               time.Duration
	SnapshotEvery               uint64
	SnapshotPassphrase          string
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.MetricsAddr = ":9090"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.TokenCacheSize = 1024
	c.ContractAccount = "social-recovery"
	c.GenesisMembers = nil
	c.FundedAccounts = nil
	c.InitialFunds = 0
	c.BlockInterval = 5 * time.Second
	c.SnapshotEvery = 0
	c.SnapshotPassphrase = ""
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "wallet-snapshots"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
