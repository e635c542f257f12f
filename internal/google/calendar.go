package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/teemow/gcal-reminder/internal/instrumentation"
	"github.com/teemow/gcal-reminder/internal/logging"
	"github.com/teemow/gcal-reminder/internal/reminder"
)

// InsertEvent creates payload in calendarID using the token bound to authCtx.
func (c *Client) InsertEvent(ctx context.Context, authCtx *reminder.AuthContext, calendarID string, payload reminder.EventPayload) (reminder.ReminderEvent, error) {
	token := authCtx.Token()
	if token == nil {
		return reminder.ReminderEvent{}, &reminder.CreationError{Err: reminder.ErrNotAuthorized}
	}

	start := time.Now()
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceCalendar, instrumentation.OperationCreate,
		attribute.String(instrumentation.SpanAttrCalendarID, calendarID))
	defer span.End()

	logger := logging.WithOperation(c.logger, "insert_event").With(logging.Calendar(calendarID))

	svc, err := c.calendarService(ctx, authCtx, *token)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return reminder.ReminderEvent{}, &reminder.CreationError{Err: err}
	}

	created, err := svc.Events.Insert(calendarID, toCalendarEvent(payload)).Context(ctx).Do()
	if err != nil {
		c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceCalendar, instrumentation.OperationCreate, instrumentation.StatusError, time.Since(start))
		instrumentation.SetSpanError(span, err)
		logger.Debug("event insert failed", logging.Err(err))
		return reminder.ReminderEvent{}, &reminder.CreationError{Err: describeAPIError(err)}
	}

	c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceCalendar, instrumentation.OperationCreate, instrumentation.StatusSuccess, time.Since(start))
	span.SetAttributes(attribute.String(instrumentation.SpanAttrEventID, created.Id))
	instrumentation.SetSpanSuccess(span)

	return toReminderEvent(created), nil
}

func (c *Client) calendarService(ctx context.Context, authCtx *reminder.AuthContext, token reminder.TokenSet) (*calendar.Service, error) {
	ctx = c.withHTTPClient(ctx)
	ts := c.tokenSource(ctx, authCtx, c.OAuthConfig(authCtx, nil), toOAuthToken(token))

	opts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(ctx, ts))}
	if c.calendarEndpoint != "" {
		opts = append(opts, option.WithEndpoint(c.calendarEndpoint))
	}

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}
	return svc, nil
}

// describeAPIError prefixes the HTTP status of a Calendar API error.
func describeAPIError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("calendar API returned %d: %w", apiErr.Code, err)
	}
	return err
}

// APIStatusCode returns the HTTP status of a Calendar API error wrapped in
// err, or 0 when err does not carry one.
func APIStatusCode(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}

// toCalendarEvent converts a payload to the Calendar API representation.
// UseDefault and Minutes are force-sent so that false and 0 survive JSON
// encoding.
func toCalendarEvent(payload reminder.EventPayload) *calendar.Event {
	overrides := make([]*calendar.EventReminder, 0, len(payload.Reminders))
	for _, r := range payload.Reminders {
		overrides = append(overrides, &calendar.EventReminder{
			Method:          r.Method,
			Minutes:         int64(r.Minutes),
			ForceSendFields: []string{"Minutes"},
		})
	}

	return &calendar.Event{
		Summary:     payload.Summary,
		Description: payload.Description,
		Start:       toEventDateTime(payload.Start, payload.TimeZone),
		End:         toEventDateTime(payload.End, payload.TimeZone),
		Reminders: &calendar.EventReminders{
			UseDefault:      payload.UseDefaultReminders,
			Overrides:       overrides,
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

func toEventDateTime(t time.Time, timeZone string) *calendar.EventDateTime {
	return &calendar.EventDateTime{
		DateTime: t.Format(time.RFC3339),
		TimeZone: timeZone,
	}
}

// toReminderEvent converts a Calendar API event to a ReminderEvent.
func toReminderEvent(event *calendar.Event) reminder.ReminderEvent {
	if event == nil {
		return reminder.ReminderEvent{}
	}

	out := reminder.ReminderEvent{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		HTMLLink:    event.HtmlLink,
		Status:      event.Status,
	}

	if event.Start != nil {
		if event.Start.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
				out.StartTime = t
			}
		} else if event.Start.Date != "" {
			if t, err := time.Parse("2006-01-02", event.Start.Date); err == nil {
				out.StartTime = t
			}
		}
	}

	if event.Reminders != nil {
		for _, r := range event.Reminders.Overrides {
			out.Reminders = append(out.Reminders, reminder.Reminder{
				Method:  r.Method,
				Minutes: int(r.Minutes),
			})
		}
	}

	return out
}
