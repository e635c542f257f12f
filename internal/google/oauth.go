package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"

	"github.com/teemow/gcal-reminder/internal/instrumentation"
	"github.com/teemow/gcal-reminder/internal/logging"
	"github.com/teemow/gcal-reminder/internal/reminder"
)

// AuthorizationURL returns the consent URL for authCtx. The state parameter
// is the context's own state value, so the URL is a pure function of the
// context and scopes.
func (c *Client) AuthorizationURL(authCtx *reminder.AuthContext, scopes []string, offline bool) string {
	var opts []oauth2.AuthCodeOption
	if offline {
		opts = append(opts, oauth2.AccessTypeOffline)
	}
	return c.OAuthConfig(authCtx, scopes).AuthCodeURL(authCtx.State(), opts...)
}

// TokenExchange exchanges a single-use authorization code for tokens.
func (c *Client) TokenExchange(ctx context.Context, authCtx *reminder.AuthContext, code string) (reminder.TokenSet, error) {
	start := time.Now()
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceOAuth, instrumentation.OperationExchange)
	defer span.End()

	logger := logging.WithOperation(c.logger, "token_exchange")

	tok, err := c.OAuthConfig(authCtx, nil).Exchange(c.withHTTPClient(ctx), code)
	if err != nil {
		c.recordExchange(ctx, instrumentation.StatusError, start)
		instrumentation.SetSpanError(span, err)
		logger.Debug("token endpoint rejected code", logging.Err(err))
		return reminder.TokenSet{}, &reminder.AuthExchangeError{Err: describeRetrieveError(err)}
	}

	c.recordExchange(ctx, instrumentation.StatusSuccess, start)
	instrumentation.SetSpanSuccess(span)
	logger.Debug("token endpoint accepted code",
		slog.String("token_type", tok.Type()),
		slog.Duration(logging.KeyDuration, time.Since(start)))

	return toTokenSet(tok), nil
}

func (c *Client) recordExchange(ctx context.Context, status string, start time.Time) {
	result := instrumentation.OAuthResultSuccess
	if status != instrumentation.StatusSuccess {
		result = instrumentation.OAuthResultFailure
	}
	c.metrics.RecordOAuthAuth(ctx, result)
	c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceOAuth, instrumentation.OperationExchange, status, time.Since(start))
}

// describeRetrieveError keeps the OAuth error code of a token endpoint
// rejection in the message while preserving the original error for errors.As.
func describeRetrieveError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.ErrorCode != "" {
		if re.ErrorDescription != "" {
			return fmt.Errorf("%s (%s): %w", re.ErrorCode, re.ErrorDescription, err)
		}
		return fmt.Errorf("%s: %w", re.ErrorCode, err)
	}
	return err
}

func toTokenSet(tok *oauth2.Token) reminder.TokenSet {
	return reminder.TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.Type(),
		Expiry:       tok.Expiry,
	}
}

func toOAuthToken(ts reminder.TokenSet) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  ts.AccessToken,
		RefreshToken: ts.RefreshToken,
		TokenType:    ts.TokenType,
		Expiry:       ts.Expiry,
	}
}
