package config

import (
	"flag"
	"fmt"
	"io"
)

var (
	valueFlags = []string{
		"-a", "-d", "-log", "-level", "-m",
		"-s3-region", "-s3-endpoint", "-s3-access-key", "-s3-secret-key",
	}
	switchFlags = []string{"-e"}
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string              API base URL
//	-d string              SQLite database path
//	-e                     do not persist the credential
//	-log string            log format: text, json or zap
//	-level string          log level: debug, info, warn, error
//	-m string              metrics listen address
//	-s3-region string      object storage region
//	-s3-endpoint string    object storage endpoint (MinIO)
//	-s3-access-key string  object storage access key
//	-s3-secret-key string  object storage secret key
//
// Flags not listed here (such as -c) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("eventflow", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "API base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "SQLite database path")
	fs.BoolVar(&cfg.Ephemeral, "e", cfg.Ephemeral, "do not persist the credential")
	fs.StringVar(&cfg.LogFormat, "log", cfg.LogFormat, "log format: text, json or zap")
	fs.StringVar(&cfg.LogLevel, "level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "object storage region")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "object storage endpoint")
	fs.StringVar(&cfg.S3AccessKey, "s3-access-key", cfg.S3AccessKey, "object storage access key")
	fs.StringVar(&cfg.S3SecretKey, "s3-secret-key", cfg.S3SecretKey, "object storage secret key")

	if err := fs.Parse(filterArgs(args, valueFlags, switchFlags...)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
