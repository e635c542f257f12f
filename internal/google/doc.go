// Package google implements the reminder workflow's CalendarAuthClient on top
// of golang.org/x/oauth2 and the Google Calendar v3 API.
//
// The OAuth2 configuration is derived from the reminder.AuthContext on every
// call; nothing is cached or persisted. Event insertion authenticates with the
// token bound to the context. Unless refresh is disabled, an expired access
// token is renewed transparently by the oauth2 token source when a refresh
// token is available.
package google
