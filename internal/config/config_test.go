package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/gcal-reminder/internal/reminder"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_CLIENT_ID",
		"GOOGLE_CLIENT_SECRET",
		"GOOGLE_REDIRECT_URI",
		"GOOGLE_SCOPES",
		"GOOGLE_DISABLE_REFRESH",
		"LOG_FORMAT",
		"LOG_DEBUG",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	// Keep the default search path away from the developer's real config.
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("client-id", "", "")
	fs.String("client-secret", "", "")
	fs.String("redirect-uri", "", "")
	fs.StringSlice("scope", nil, "")
	fs.Bool("no-refresh", false, "")
	fs.String("log-format", "", "")
	fs.Bool("debug", false, "")
	return fs
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gcal-reminder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(newFlags(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultRedirectURI, cfg.Credentials.RedirectURI)
	assert.Empty(t, cfg.Credentials.ClientID)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.File)

	err = cfg.Validate()
	assert.True(t, reminder.IsConfigurationError(err))
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CLIENT_ID", "env-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "env-secret")
	t.Setenv("GOOGLE_REDIRECT_URI", "http://127.0.0.1:8085/cb")
	t.Setenv("GOOGLE_SCOPES", "calendar,openid")
	t.Setenv("GOOGLE_DISABLE_REFRESH", "true")

	cfg, err := Load(newFlags(), "")
	require.NoError(t, err)

	assert.Equal(t, reminder.Credentials{
		ClientID:     "env-id",
		ClientSecret: "env-secret",
		RedirectURI:  "http://127.0.0.1:8085/cb",
	}, cfg.Credentials)
	assert.Equal(t, []string{"calendar", "openid"}, cfg.Scopes)
	assert.True(t, cfg.DisableRefresh)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
google:
  client_id: file-id
  client_secret: file-secret
  scopes:
    - calendar.events
log:
  format: json
  debug: true
`)

	cfg, err := Load(newFlags(), path)
	require.NoError(t, err)

	assert.Equal(t, "file-id", cfg.Credentials.ClientID)
	assert.Equal(t, "file-secret", cfg.Credentials.ClientSecret)
	assert.Equal(t, DefaultRedirectURI, cfg.Credentials.RedirectURI)
	assert.Equal(t, []string{"calendar.events"}, cfg.Scopes)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Debug)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
google:
  client_id: file-id
  client_secret: file-secret
`)
	t.Setenv("GOOGLE_CLIENT_ID", "env-id")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--client-secret", "flag-secret"}))

	cfg, err := Load(flags, path)
	require.NoError(t, err)

	assert.Equal(t, "env-id", cfg.Credentials.ClientID)
	assert.Equal(t, "flag-secret", cfg.Credentials.ClientSecret)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(newFlags(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_NilFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CLIENT_ID", "env-id")

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "env-id", cfg.Credentials.ClientID)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(nil))
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", "", "c"}))
}
