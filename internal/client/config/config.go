package config

import "time"

// Config holds runtime settings for the wallet CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the wallet gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - JournalPath: SQLite file keeping the session and the receipt journal.
//   - TokenValidity: lifetime of access tokens minted by the `login` command.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	JournalPath         string
	TokenValidity       time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.JournalPath = "wallet.db"
	c.TokenValidity = 60 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
