package reminder

import (
	"time"
)

const (
	// PrimaryCalendarID is the calendar alias for the account's default calendar.
	PrimaryCalendarID = "primary"

	// ReminderMethodPopup is the only reminder method the workflow emits.
	ReminderMethodPopup = "popup"

	// DefaultReminderOffsetMinutes is used by the CLI when no offset is given.
	DefaultReminderOffsetMinutes = 10
)

// Credentials holds the static OAuth client configuration.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// TokenSet is the result of an authorization code exchange.
type TokenSet struct {
	AccessToken  string
	RefreshToken string // empty when the provider did not issue one
	TokenType    string
	Expiry       time.Time
}

// HasRefreshToken reports whether a refresh token was issued.
func (t TokenSet) HasRefreshToken() bool {
	return t.RefreshToken != ""
}

// ReminderRequest is the caller-supplied input for a new reminder event.
type ReminderRequest struct {
	Title       string
	Description string
	StartTime   time.Time

	// EndTime defaults to StartTime when zero.
	EndTime time.Time

	// TimeZone is an IANA name; empty means the start time's offset is authoritative.
	TimeZone string

	// ReminderOffsetMinutes is the popup lead time. Zero is a valid offset.
	ReminderOffsetMinutes int
}

// Reminder is a single reminder override on an event.
type Reminder struct {
	Method  string
	Minutes int
}

// EventPayload is the event body submitted to the calendar.
type EventPayload struct {
	Summary             string
	Description         string
	Start               time.Time
	End                 time.Time
	TimeZone            string
	UseDefaultReminders bool
	Reminders           []Reminder
}

// ReminderEvent is the event as returned by the calendar API.
type ReminderEvent struct {
	ID          string
	Summary     string
	Description string
	StartTime   time.Time
	Reminders   []Reminder
	HTMLLink    string
	Status      string
}

// NewEventPayload builds the event body for a reminder request.
func NewEventPayload(req ReminderRequest) EventPayload {
	end := req.EndTime
	if end.IsZero() {
		end = req.StartTime
	}

	return EventPayload{
		Summary:             req.Title,
		Description:         req.Description,
		Start:               req.StartTime,
		End:                 end,
		TimeZone:            req.TimeZone,
		UseDefaultReminders: false,
		Reminders: []Reminder{
			{Method: ReminderMethodPopup, Minutes: req.ReminderOffsetMinutes},
		},
	}
}
