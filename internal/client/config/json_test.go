package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"server_url":      "http://www.example:9000",
		"db_busy_timeout": "10s",
		"log_format":      "json",
		"ephemeral":       true,
		"s3_endpoint":     "http://minio:9000",
	})

	t.Run("loads from -config", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "http://www.example:9000", cfg.ServerURL)
		assert.Equal(t, 10*time.Second, cfg.DBBusyTimeout)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.True(t, cfg.Ephemeral)
		assert.Equal(t, "http://minio:9000", cfg.S3Endpoint)
		// absent keys keep defaults
		assert.Equal(t, "eventflow.db", cfg.DBPath)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("no flag → no changes", func(t *testing.T) {
		cfg := &Config{ServerURL: "http://defaults:1234", DBBusyTimeout: 42 * time.Second}
		require.NoError(t, parseJson(cfg, []string{"-a", "ignored"}))

		assert.Equal(t, "http://defaults:1234", cfg.ServerURL)
		assert.Equal(t, 42*time.Second, cfg.DBBusyTimeout)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})

	t.Run("bad duration → error", func(t *testing.T) {
		p := writeTempJSON(t, dir, "dur.json", map[string]any{"db_busy_timeout": "soon"})
		require.Error(t, parseJson(&Config{}, []string{"-c", p}))
	})
}

func TestDuration(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1m30s"`), &d))
	assert.Equal(t, 90*time.Second, d.Duration)

	require.NoError(t, json.Unmarshal([]byte(`2000000000`), &d))
	assert.Equal(t, 2*time.Second, d.Duration)

	require.Error(t, json.Unmarshal([]byte(`true`), &d))

	b, err := json.Marshal(Duration{3 * time.Second})
	require.NoError(t, err)
	assert.JSONEq(t, `"3s"`, string(b))
}
