// Package config loads gcal-reminder configuration.
//
// Values are resolved with the following precedence (highest first):
// command-line flags, environment variables, the config file, defaults.
//
// Environment variables use the upper-cased key with dots replaced by
// underscores, e.g. google.client_id is read from GOOGLE_CLIENT_ID.
package config
