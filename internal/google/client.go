package google

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/teemow/gcal-reminder/internal/instrumentation"
	"github.com/teemow/gcal-reminder/internal/logging"
	"github.com/teemow/gcal-reminder/internal/reminder"
)

// Options configures a Client.
type Options struct {
	// HTTPClient is used for token and API requests. Defaults to an
	// HTTP/1.1-only client.
	HTTPClient *http.Client

	// Endpoint overrides the OAuth2 endpoints. Defaults to google.Endpoint.
	Endpoint oauth2.Endpoint

	// CalendarEndpoint overrides the Calendar API base URL.
	CalendarEndpoint string

	// DisableRefresh makes event insertion use the bound access token as-is,
	// so an expired token surfaces as a creation error.
	DisableRefresh bool

	// Metrics records API and OAuth metrics. May be nil.
	Metrics *instrumentation.Metrics

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Client is the Google implementation of reminder.CalendarAuthClient.
type Client struct {
	httpClient       *http.Client
	endpoint         oauth2.Endpoint
	calendarEndpoint string
	disableRefresh   bool
	metrics          *instrumentation.Metrics
	logger           *slog.Logger
}

var _ reminder.CalendarAuthClient = (*Client)(nil)

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = defaultHTTPClient()
	}

	endpoint := opts.Endpoint
	if endpoint.AuthURL == "" && endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient:       httpClient,
		endpoint:         endpoint,
		calendarEndpoint: opts.CalendarEndpoint,
		disableRefresh:   opts.DisableRefresh,
		metrics:          opts.Metrics,
		logger:           logging.WithService(logger, instrumentation.ServiceCalendar),
	}
}

// defaultHTTPClient forces HTTP/1.1 to avoid HTTP/2 protocol errors
// seen against Google endpoints.
func defaultHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			ForceAttemptHTTP2: false,
		},
	}
}

// OAuthConfig returns the oauth2 configuration for authCtx and scopes.
func (c *Client) OAuthConfig(authCtx *reminder.AuthContext, scopes []string) *oauth2.Config {
	creds := authCtx.Credentials()
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.RedirectURI,
		Endpoint:     c.endpoint,
		Scopes:       scopes,
	}
}

// withHTTPClient makes oauth2 use the configured HTTP client for token requests.
func (c *Client) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}
