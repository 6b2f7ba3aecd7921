package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photoarchive/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
archive:
  rootDir: /srv/photos
  gracePeriod: 3s
logging:
  level: ERROR
`)
	opts := &rootOptions{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", path,
		"--photo-dir", "/data/photos",
		"--log-level", "debug",
		"--log-off",
	}))

	cfg, source, err := loadConfig(cmd, opts)
	require.NoError(t, err)

	assert.Contains(t, source, path)
	assert.Equal(t, "/data/photos", cfg.Archive.RootDir)
	assert.Equal(t, 9000, cfg.Server.Port, "unset flags keep the file value")
	assert.Equal(t, 3*time.Second, cfg.Archive.GracePeriod)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Enabled)
}

func TestLoadConfig_InvalidFlagValue(t *testing.T) {
	opts := &rootOptions{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", writeConfig(t, "server:\n  port: 9000\n"),
		"--port", "70000",
	}))

	_, _, err := loadConfig(cmd, opts)
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photoarchive.yaml")

	out := &bytes.Buffer{}
	cmd := newRootCmd(&rootOptions{})
	cmd.SetOut(out)
	cmd.SetArgs([]string{"config", "init", path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), path)

	cfg, _, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cmd = newRootCmd(&rootOptions{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "init", path})
	assert.Error(t, cmd.Execute(), "existing file must not be overwritten")

	cmd = newRootCmd(&rootOptions{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "init", "--force", path})
	assert.NoError(t, cmd.Execute())
}

func TestConfigShow(t *testing.T) {
	path := writeConfig(t, `
archive:
  rootDir: /srv/photos
  maxConcurrent: 4
health:
  address: 127.0.0.1:9090
`)

	out := &bytes.Buffer{}
	cmd := newRootCmd(&rootOptions{})
	cmd.SetOut(out)
	cmd.SetArgs([]string{"config", "show", "--config", path})
	require.NoError(t, cmd.Execute())

	text := out.String()
	assert.Contains(t, text, path)
	assert.Contains(t, text, "/srv/photos")
	assert.Contains(t, text, "zip -qr - .")
	assert.Contains(t, text, "127.0.0.1:9090")
	assert.Contains(t, text, "archive.maxConcurrent")
}
