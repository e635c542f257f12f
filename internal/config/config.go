package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teemow/gcal-reminder/internal/reminder"
)

// Configuration keys.
const (
	KeyClientID       = "google.client_id"
	KeyClientSecret   = "google.client_secret"
	KeyRedirectURI    = "google.redirect_uri"
	KeyScopes         = "google.scopes"
	KeyDisableRefresh = "google.disable_refresh"
	KeyLogFormat      = "log.format"
	KeyDebug          = "log.debug"
)

const (
	// DefaultRedirectURI matches the loopback redirect registered for desktop clients.
	DefaultRedirectURI = "http://localhost:3000/oauth2callback"

	// DefaultConfigName is the config file base name searched for.
	DefaultConfigName = "gcal-reminder"
)

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"client-id":     KeyClientID,
	"client-secret": KeyClientSecret,
	"redirect-uri":  KeyRedirectURI,
	"scope":         KeyScopes,
	"no-refresh":    KeyDisableRefresh,
	"log-format":    KeyLogFormat,
	"debug":         KeyDebug,
}

// Config holds the resolved runtime configuration.
type Config struct {
	Credentials    reminder.Credentials
	Scopes         []string
	DisableRefresh bool
	LogFormat      string
	Debug          bool

	// File is the config file that was read, empty if none.
	File string
}

// Load resolves configuration from flags, environment and an optional config
// file. An explicit configFile must exist; otherwise the default search
// locations are tried and a missing file is not an error.
func Load(flags *pflag.FlagSet, configFile string) (Config, error) {
	v := viper.New()

	v.SetDefault(KeyRedirectURI, DefaultRedirectURI)
	v.SetDefault(KeyLogFormat, "text")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("failed to bind flag %q: %w", name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, DefaultConfigName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return Config{
		Credentials: reminder.Credentials{
			ClientID:     v.GetString(KeyClientID),
			ClientSecret: v.GetString(KeyClientSecret),
			RedirectURI:  v.GetString(KeyRedirectURI),
		},
		Scopes:         splitList(v.GetStringSlice(KeyScopes)),
		DisableRefresh: v.GetBool(KeyDisableRefresh),
		LogFormat:      v.GetString(KeyLogFormat),
		Debug:          v.GetBool(KeyDebug),
		File:           v.ConfigFileUsed(),
	}, nil
}

// Validate checks the credentials. It returns a *reminder.ConfigurationError.
func (c Config) Validate() error {
	return reminder.ValidateCredentials(c.Credentials)
}

// splitList flattens comma-separated entries, as environment variables
// arrive as a single string.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
