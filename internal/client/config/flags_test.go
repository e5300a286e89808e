package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name:     "server and db",
			args:     []string{"-a", "http://api:8000", "-d", "/tmp/ef.db"},
			expected: &Config{ServerURL: "http://api:8000", DBPath: "/tmp/ef.db"},
		},
		{
			name:     "logging and metrics",
			args:     []string{"-log", "zap", "-level=debug", "-m", ":9091"},
			expected: &Config{LogFormat: "zap", LogLevel: "debug", MetricsAddr: ":9091"},
		},
		{
			name: "s3 and ephemeral switch before a value flag",
			args: []string{"-e", "-s3-endpoint", "http://minio:9000", "-s3-access-key", "k", "-s3-secret-key", "s", "-s3-region", "eu"},
			expected: &Config{
				Ephemeral:   true,
				S3Endpoint:  "http://minio:9000",
				S3AccessKey: "k",
				S3SecretKey: "s",
				S3Region:    "eu",
			},
		},
		{
			name:     "config flag is ignored here",
			args:     []string{"-c", "cfg.json", "-a", "http://x"},
			expected: &Config{ServerURL: "http://x"},
		},
		{
			name:    "missing value",
			args:    []string{"-a"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		allowed  []string
		switches []string
		want     []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.json", "-a", "localhost"},
			allowed: []string{"-c", "--config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "long flag with equals",
			args:    []string{"--config=alt.json", "-a", "localhost"},
			allowed: []string{"-c", "--config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:     "switch does not swallow the next argument",
			args:     []string{"-e", "stray", "-a", "x"},
			allowed:  []string{"-a"},
			switches: []string{"-e"},
			want:     []string{"-e", "-a", "x"},
		},
		{
			name:    "value that looks like a flag is not taken",
			args:    []string{"-a", "-d", "db"},
			allowed: []string{"-a"},
			want:    []string{"-a"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "x"},
			allowed: nil,
			want:    []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filterArgs(tt.args, tt.allowed, tt.switches...))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "a.json", configPath([]string{"-a", "x", "-c", "a.json"}))
	assert.Equal(t, "b.json", configPath([]string{"-config=b.json"}))
	assert.Empty(t, configPath([]string{"-a", "x"}))
}
