// Package cmd implements the command-line interface for gcal-reminder.
//
// This package provides the following commands:
//   - remind: Authorize via OAuth2 and create a popup reminder event
//   - url: Print the OAuth2 consent URL
//   - version: Display version information
//
// The remind command is the default command when no subcommand is specified.
package cmd
