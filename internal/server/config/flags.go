package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-m string   metrics bind address (e.g., ":9090")
//	-d string   PostgreSQL DSN, empty for the in-memory store
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-n string   contract account
//	-g string   genesis members, comma separated
//	-l string   funded external accounts, comma separated
//	-i uint     initial funds of every funded account
//	-b int      block interval, seconds (0 disables timed blocks)
//	-x uint     snapshot every N blocks (0 disables)
//	-u string   S3 root user
//	-p string   S3 root password
//	-k string   S3 bucket name
//	-r string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-v string   log level (debug, info, warn, error)
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-m", "-d", "-s", "-t", "-n", "-g", "-l", "-i", "-b", "-x", "-u", "-p", "-k", "-r", "-e", "-v",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "address and port to serve metrics")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.ContractAccount, "n", config.ContractAccount, "contract account")
	genesis := fs.String("g", strings.Join(config.GenesisMembers, ","), "genesis members")
	funded := fs.String("l", strings.Join(config.FundedAccounts, ","), "funded external accounts")
	fs.Uint64Var(&config.InitialFunds, "i", config.InitialFunds, "initial funds per funded account")
	blockInterval := fs.Int("b", int(config.BlockInterval.Seconds()), "block interval (in seconds)")
	fs.Uint64Var(&config.SnapshotEvery, "x", config.SnapshotEvery, "snapshot every N blocks")
	fs.StringVar(&config.SnapshotPassphrase, "w", config.SnapshotPassphrase, "snapshot sealing passphrase")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "k", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
	config.BlockInterval = time.Duration(*blockInterval) * time.Second
	config.GenesisMembers = flagx.SplitList(*genesis)
	config.FundedAccounts = flagx.SplitList(*funded)
}
