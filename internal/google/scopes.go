package google

import (
	"fmt"
	"strings"

	calendar "google.golang.org/api/calendar/v3"
)

// scopeAliases maps short scope names accepted on the command line to
// their full Google OAuth scope URLs.
var scopeAliases = map[string]string{
	"calendar":          calendar.CalendarScope,
	"calendar.events":   calendar.CalendarEventsScope,
	"calendar.readonly": calendar.CalendarReadonlyScope,
	"openid":            "openid",
	"email":             "https://www.googleapis.com/auth/userinfo.email",
}

// ResolveScopes expands short scope names to full scope URLs. Values that
// already look like URLs are passed through unchanged.
func ResolveScopes(names []string) ([]string, error) {
	scopes := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.HasPrefix(name, "https://") {
			scopes = append(scopes, name)
			continue
		}
		scope, ok := scopeAliases[name]
		if !ok {
			return nil, fmt.Errorf("unknown scope %q", name)
		}
		scopes = append(scopes, scope)
	}
	return scopes, nil
}
