// Package config loads runtime configuration for the EventFlow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
// Durations accept strings like "5s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "db_path": "eventflow.db",
//	  "db_busy_timeout": "5s",
//	  "log_format": "json",
//	  "log_level": "debug",
//	  "metrics_addr": ":9091",
//	  "s3_endpoint": "http://127.0.0.1:9000"
//	}
//
// The package does not read environment variables; the AWS SDK may still
// pick up its own when S3 keys are left empty.
package config
