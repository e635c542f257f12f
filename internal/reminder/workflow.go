package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/teemow/gcal-reminder/internal/logging"
)

// CodePrompt presents the consent URL to the user and returns the
// authorization code they obtained. It may block on user input.
type CodePrompt func(ctx context.Context, consentURL string) (string, error)

// Workflow sequences authorization and reminder creation against a CalendarAuthClient.
type Workflow struct {
	client CalendarAuthClient
	logger *slog.Logger
}

// NewWorkflow creates a Workflow. If logger is nil, slog.Default() is used.
func NewWorkflow(client CalendarAuthClient, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{
		client: client,
		logger: logging.WithService(logger, "reminder"),
	}
}

// BuildAuthContext constructs an unauthorized AuthContext for creds.
// It performs no network I/O and fails with a ConfigurationError if any
// credential field is missing or invalid.
func (w *Workflow) BuildAuthContext(creds Credentials) (*AuthContext, error) {
	authCtx, err := NewAuthContext(creds)
	if err != nil {
		w.logger.Debug("rejected credentials", logging.Operation("build_auth_context"), logging.Err(err))
		return nil, err
	}
	return authCtx, nil
}

// ConsentURL returns the URL the user must visit to grant access.
// Scopes are treated as a set; an empty set requests DefaultScopes.
// The URL always requests offline access.
func (w *Workflow) ConsentURL(authCtx *AuthContext, scopes []string) string {
	return w.client.AuthorizationURL(authCtx, NormalizeScopes(scopes), true)
}

// ExchangeCode trades code for a TokenSet and binds it to authCtx.
// Authorization codes are single-use; a rejected code yields an AuthExchangeError.
func (w *Workflow) ExchangeCode(ctx context.Context, authCtx *AuthContext, code string) (TokenSet, error) {
	logger := logging.WithOperation(w.logger, "exchange_code")

	if authCtx == nil {
		return TokenSet{}, &AuthExchangeError{Err: errors.New("auth context is nil")}
	}
	if code == "" {
		return TokenSet{}, &AuthExchangeError{Err: errors.New("authorization code is empty")}
	}

	token, err := w.client.TokenExchange(ctx, authCtx, code)
	if err != nil {
		logger.Error("authorization code rejected", logging.Status(logging.StatusError), logging.Err(err))
		var exchangeErr *AuthExchangeError
		if errors.As(err, &exchangeErr) {
			return TokenSet{}, err
		}
		return TokenSet{}, &AuthExchangeError{Err: err}
	}
	if token.AccessToken == "" {
		return TokenSet{}, &AuthExchangeError{Err: errors.New("token response has no access token")}
	}

	authCtx.bind(token)

	logger.Info("authorization code exchanged",
		logging.Status(logging.StatusSuccess),
		slog.String("access_token", logging.SanitizeToken(token.AccessToken)),
		slog.Bool("refresh_token", token.HasRefreshToken()),
		slog.Time("expiry", token.Expiry))

	return token, nil
}

// CreateReminder inserts a popup-reminder event for req into the primary
// calendar of the authorized account.
func (w *Workflow) CreateReminder(ctx context.Context, authCtx *AuthContext, req ReminderRequest) (ReminderEvent, error) {
	logger := logging.WithOperation(w.logger, "create_reminder")

	if !authCtx.Authorized() {
		return ReminderEvent{}, &CreationError{Err: ErrNotAuthorized}
	}
	if err := ValidateRequest(req); err != nil {
		return ReminderEvent{}, &CreationError{Err: err}
	}

	event, err := w.client.InsertEvent(ctx, authCtx, PrimaryCalendarID, NewEventPayload(req))
	if err != nil {
		logger.Error("event submission rejected", logging.Status(logging.StatusError), logging.Err(err))
		var creationErr *CreationError
		if errors.As(err, &creationErr) {
			return ReminderEvent{}, err
		}
		return ReminderEvent{}, &CreationError{Err: err}
	}

	logger.Info("reminder created",
		logging.Status(logging.StatusSuccess),
		slog.String("event_id", event.ID),
		slog.Time("start", event.StartTime))

	return event, nil
}

// Run executes the full sequence: build context, present the consent URL via
// prompt, exchange the returned code and create the reminder. The first
// failing step aborts the run.
func (w *Workflow) Run(ctx context.Context, creds Credentials, scopes []string, prompt CodePrompt, req ReminderRequest) (ReminderEvent, error) {
	authCtx, err := w.BuildAuthContext(creds)
	if err != nil {
		return ReminderEvent{}, err
	}

	code, err := prompt(ctx, w.ConsentURL(authCtx, scopes))
	if err != nil {
		return ReminderEvent{}, fmt.Errorf("failed to obtain authorization code: %w", err)
	}

	if _, err := w.ExchangeCode(ctx, authCtx, code); err != nil {
		return ReminderEvent{}, err
	}

	return w.CreateReminder(ctx, authCtx, req)
}

// ValidateRequest checks the fields the calendar requires.
func ValidateRequest(req ReminderRequest) error {
	if req.Title == "" {
		return errors.New("title is required")
	}
	if req.StartTime.IsZero() {
		return errors.New("start time is required")
	}
	if req.ReminderOffsetMinutes < 0 {
		return fmt.Errorf("reminder offset must be >= 0, got %d", req.ReminderOffsetMinutes)
	}
	if !req.EndTime.IsZero() && req.EndTime.Before(req.StartTime) {
		return errors.New("end time is before start time")
	}
	return nil
}

// NormalizeScopes returns scopes deduplicated and sorted, or DefaultScopes when empty.
func NormalizeScopes(scopes []string) []string {
	out := make([]string, 0, len(scopes))
	for _, s := range scopes {
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return slices.Clone(DefaultScopes)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
