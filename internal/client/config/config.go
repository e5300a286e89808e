package config

import "time"

// Config holds runtime settings for the EventFlow CLI.
//
// Fields:
//   - ServerURL: base URL of the EventFlow API.
//   - DBPath: SQLite file holding the persisted credential.
//   - DBBusyTimeout: how long SQLite waits on a locked database.
//   - Ephemeral: keep the credential in memory only.
//   - LogFormat / LogLevel: logger backend (text, json, zap) and threshold.
//   - MetricsAddr: listen address for /metrics; empty disables it.
//   - S3*: object storage used for s3://bucket/key image references.
type Config struct {
	ServerURL     string
	DBPath        string
	DBBusyTimeout time.Duration
	Ephemeral     bool

	LogFormat string
	LogLevel  string

	MetricsAddr string

	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.DBPath = "eventflow.db"
	c.DBBusyTimeout = 5 * time.Second
	c.LogFormat = "text"
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the JSON file named by -c/-config (if any) and the remaining flags. Later
// sources take precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
