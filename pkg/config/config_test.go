package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "test_photos", cfg.Archive.RootDir)
	assert.Equal(t, []string{"zip", "-qr", "-", "."}, cfg.Archive.Command)
	assert.Equal(t, 524288, cfg.Archive.ChunkSize)
	assert.Equal(t, time.Second, cfg.Archive.GracePeriod)
	assert.Equal(t, "server.log", cfg.Logging.File)
	assert.True(t, cfg.Logging.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestDefault_ReturnsIndependentCopy(t *testing.T) {
	cfg := Default()
	cfg.Archive.Command[0] = "7z"

	assert.Equal(t, "zip", DefaultConfig.Archive.Command[0])
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := createTestConfigFile(t, `
server:
  host: "127.0.0.1"
  port: 9000
  shutdownTimeout: "3s"
archive:
  rootDir: "/srv/photos"
  chunkSize: 65536
  gracePeriod: "250ms"
  contentType: "multipart/form-data"
  maxConcurrent: 4
health:
  address: "127.0.0.1:9090"
logging:
  level: "debug"
  format: "JSON"
`)

	cfg, source, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, path, source)
	assert.Equal(t, "127.0.0.1:9000", cfg.GetServerAddress())
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/srv/photos", cfg.Archive.RootDir)
	assert.Equal(t, 65536, cfg.Archive.ChunkSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Archive.GracePeriod)
	assert.Equal(t, "multipart/form-data", cfg.Archive.ContentType)
	assert.Equal(t, int64(4), cfg.Archive.MaxConcurrent)
	assert.Equal(t, "127.0.0.1:9090", cfg.Health.Address)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	// untouched keys keep their defaults
	assert.Equal(t, []string{"zip", "-qr", "-", "."}, cfg.Archive.Command)
	assert.Equal(t, "404.html", cfg.Pages.NotFound)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := createTestConfigFile(t, `
server:
  port: 6666
archive:
  rootDir: "/from/file"
`)

	t.Setenv("PHOTOARCHIVE_SERVER_PORT", "7777")
	t.Setenv("PHOTOARCHIVE_ARCHIVE_ROOTDIR", "/from/env")
	t.Setenv("PHOTOARCHIVE_ARCHIVE_COMMAND", "tar, -c , .")
	t.Setenv("PHOTOARCHIVE_ARCHIVE_GRACEPERIOD", "2s")
	t.Setenv("PHOTOARCHIVE_LOGGING_ENABLED", "false")

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "/from/env", cfg.Archive.RootDir)
	assert.Equal(t, []string{"tar", "-c", "."}, cfg.Archive.Command)
	assert.Equal(t, 2*time.Second, cfg.Archive.GracePeriod)
	assert.False(t, cfg.Logging.Enabled)
}

func TestLoadConfig_InvalidEnvironmentValue(t *testing.T) {
	path := createTestConfigFile(t, "server:\n  port: 8081\n")
	t.Setenv("PHOTOARCHIVE_SERVER_PORT", "not-a-number")

	_, _, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := createTestConfigFile(t, "server: [unterminated\n")

	_, _, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"empty root", func(c *Config) { c.Archive.RootDir = "" }},
		{"empty command", func(c *Config) { c.Archive.Command = nil }},
		{"zero chunk size", func(c *Config) { c.Archive.ChunkSize = 0 }},
		{"zero grace period", func(c *Config) { c.Archive.GracePeriod = 0 }},
		{"negative concurrency", func(c *Config) { c.Archive.MaxConcurrent = -1 }},
		{"bad content type", func(c *Config) { c.Archive.ContentType = "not a type" }},
		{"bad health address", func(c *Config) { c.Health.Address = "nope" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "LOUD" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGenerateDefaultConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.yaml")
	require.NoError(t, GenerateDefaultConfig(path))

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
