package reminder

import (
	"context"
)

// CalendarScope grants read/write access to the user's calendars. It equals
// calendar.CalendarScope from google.golang.org/api/calendar/v3.
const CalendarScope = "https://www.googleapis.com/auth/calendar"

// DefaultScopes are requested when the caller supplies none.
var DefaultScopes = []string{CalendarScope}

// CalendarAuthClient is the external collaborator that performs OAuth and
// calendar API calls on behalf of the workflow.
type CalendarAuthClient interface {
	// AuthorizationURL returns the consent URL for the given scopes. When
	// offline is true the URL requests a refresh token. It must not perform I/O.
	AuthorizationURL(authCtx *AuthContext, scopes []string, offline bool) string

	// TokenExchange trades a single-use authorization code for tokens.
	TokenExchange(ctx context.Context, authCtx *AuthContext, code string) (TokenSet, error)

	// InsertEvent submits payload to calendarID using the token bound to authCtx.
	InsertEvent(ctx context.Context, authCtx *AuthContext, calendarID string, payload EventPayload) (ReminderEvent, error)
}
