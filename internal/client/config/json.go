package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// Duration so the file may say "5s" or give integer nanoseconds.
type JsonConfig struct {
	ServerURL     string   `json:"server_url"`
	DBPath        string   `json:"db_path"`
	DBBusyTimeout Duration `json:"db_busy_timeout"`
	Ephemeral     *bool    `json:"ephemeral"`
	LogFormat     string   `json:"log_format"`
	LogLevel      string   `json:"log_level"`
	MetricsAddr   string   `json:"metrics_addr"`
	S3Region      string   `json:"s3_region"`
	S3Endpoint    string   `json:"s3_endpoint"`
	S3AccessKey   string   `json:"s3_access_key"`
	S3SecretKey   string   `json:"s3_secret_key"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. Without
// either flag it does nothing. Keys missing from the file keep their current
// values.
func parseJson(cfg *Config, args []string) error {
	path := configPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.MetricsAddr, jc.MetricsAddr)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.DBBusyTimeout.Duration > 0 {
		cfg.DBBusyTimeout = jc.DBBusyTimeout.Duration
	}
	if jc.Ephemeral != nil {
		cfg.Ephemeral = *jc.Ephemeral
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
