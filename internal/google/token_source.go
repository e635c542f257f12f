package google

import (
	"context"
	"sync"

	"golang.org/x/oauth2"

	"github.com/teemow/gcal-reminder/internal/instrumentation"
	"github.com/teemow/gcal-reminder/internal/logging"
	"github.com/teemow/gcal-reminder/internal/reminder"
)

// tokenSource returns the token source used for API calls. With refresh
// enabled the oauth2 config renews an expired token using its refresh token,
// and the renewed token is bound back to authCtx.
func (c *Client) tokenSource(ctx context.Context, authCtx *reminder.AuthContext, conf *oauth2.Config, tok *oauth2.Token) oauth2.TokenSource {
	if c.disableRefresh {
		return oauth2.StaticTokenSource(tok)
	}
	return &observedTokenSource{
		ctx:     ctx,
		base:    conf.TokenSource(ctx, tok),
		current: tok.AccessToken,
		authCtx: authCtx,
		client:  c,
	}
}

// observedTokenSource records a refresh whenever the underlying source
// returns a different access token than the last one seen.
type observedTokenSource struct {
	ctx     context.Context
	base    oauth2.TokenSource
	authCtx *reminder.AuthContext
	client  *Client

	mu      sync.Mutex
	current string
}

func (s *observedTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.client.metrics.RecordOAuthTokenRefresh(s.ctx, instrumentation.OAuthResultFailure)
		s.client.logger.Warn("access token refresh failed", logging.Err(err))
		return nil, err
	}
	if tok.AccessToken != s.current {
		s.current = tok.AccessToken
		if err := s.authCtx.ReplaceToken(toTokenSet(tok)); err != nil {
			s.client.logger.Warn("refreshed token not bound", logging.Err(err))
		}
		s.client.metrics.RecordOAuthTokenRefresh(s.ctx, instrumentation.OAuthResultSuccess)
		s.client.logger.Info("access token refreshed",
			"access_token", logging.SanitizeToken(tok.AccessToken),
			"expiry", tok.Expiry)
	}
	return tok, nil
}
