package reminder

import (
	"net/url"

	"github.com/google/uuid"
)

// AuthContext is an authorization context bound to one set of client credentials.
//
// An AuthContext starts unauthorized. A successful ExchangeCode binds a
// TokenSet to it; there is no way back to the unauthorized state. The bound
// token is mutable, so an AuthContext must not be shared between goroutines.
type AuthContext struct {
	credentials Credentials
	state       string
	token       *TokenSet
}

// NewAuthContext validates creds and returns an unauthorized context.
// It performs no network I/O.
func NewAuthContext(creds Credentials) (*AuthContext, error) {
	if err := ValidateCredentials(creds); err != nil {
		return nil, err
	}

	return &AuthContext{
		credentials: creds,
		state:       uuid.NewString(),
	}, nil
}

// ValidateCredentials checks that every credential field is present and that
// the redirect URI is absolute.
func ValidateCredentials(creds Credentials) error {
	if creds.ClientID == "" {
		return &ConfigurationError{Field: "ClientID", Reason: "is empty"}
	}
	if creds.ClientSecret == "" {
		return &ConfigurationError{Field: "ClientSecret", Reason: "is empty"}
	}
	if creds.RedirectURI == "" {
		return &ConfigurationError{Field: "RedirectURI", Reason: "is empty"}
	}

	u, err := url.Parse(creds.RedirectURI)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return &ConfigurationError{Field: "RedirectURI", Reason: "must be an absolute URL"}
	}

	return nil
}

// Credentials returns the credentials the context was built with.
func (a *AuthContext) Credentials() Credentials {
	return a.credentials
}

// State returns the opaque OAuth state value for this context.
func (a *AuthContext) State() string {
	return a.state
}

// Token returns the bound token, or nil while unauthorized.
func (a *AuthContext) Token() *TokenSet {
	if a == nil || a.token == nil {
		return nil
	}
	t := *a.token
	return &t
}

// Authorized reports whether a token has been bound.
func (a *AuthContext) Authorized() bool {
	return a != nil && a.token != nil
}

func (a *AuthContext) bind(token TokenSet) {
	a.token = &token
}

// ReplaceToken swaps the bound token for a renewed one, e.g. after an access
// token refresh. It fails with ErrNotAuthorized when no token is bound yet;
// only ExchangeCode authorizes a context.
func (a *AuthContext) ReplaceToken(token TokenSet) error {
	if !a.Authorized() {
		return ErrNotAuthorized
	}
	a.bind(token)
	return nil
}
