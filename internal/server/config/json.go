package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophwallet/internal/flagx"
	"github.com/dmitrijs2005/gophwallet/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations use timex.Duration so
// that both "1m" and integer nanoseconds are accepted. Absent keys leave the
// current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC            string          `json:"endpoint_addr_grpc"`
	MetricsAddr                 string          `json:"metrics_addr"`
	DatabaseDSN                 string          `json:"database_dsn"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	TokenCacheSize              int             `json:"token_cache_size"`
	ContractAccount             string          `json:"contract_account"`
	GenesisMembers              []string        `json:"genesis_members"`
	FundedAccounts              []string        `json:"funded_accounts"`
	InitialFunds                *uint64         `json:"initial_funds"`
	BlockInterval               *timex.Duration `json:"block_interval"`
	SnapshotEvery               *uint64         `json:"snapshot_every"`
	SnapshotPassphrase          string          `json:"snapshot_passphrase"`
	S3RootUser                  string          `json:"s3_root_user"`
	S3RootPassword              string          `json:"s3_root_password"`
	S3Bucket                    string          `json:"s3_bucket"`
	S3Region                    string          `json:"s3_region"`
	S3BaseEndpoint              string          `json:"s3_base_endpoint"`
	LogLevel                    string          `json:"log_level"`
}

// parseJson overlays values from the JSON file named by -c/-config onto config.
// Nothing happens when neither flag is given. An unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.MetricsAddr, c.MetricsAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.TokenCacheSize > 0 {
		config.TokenCacheSize = c.TokenCacheSize
	}
	setString(&config.ContractAccount, c.ContractAccount)
	if c.GenesisMembers != nil {
		config.GenesisMembers = c.GenesisMembers
	}
	if c.FundedAccounts != nil {
		config.FundedAccounts = c.FundedAccounts
	}
	if c.InitialFunds != nil {
		config.InitialFunds = *c.InitialFunds
	}
	if c.BlockInterval != nil {
		config.BlockInterval = c.BlockInterval.Duration
	}
	if c.SnapshotEvery != nil {
		config.SnapshotEvery = *c.SnapshotEvery
	}
	setString(&config.SnapshotPassphrase, c.SnapshotPassphrase)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
