package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/gcal-reminder/internal/google"
	"github.com/teemow/gcal-reminder/internal/instrumentation"
	"github.com/teemow/gcal-reminder/internal/reminder"
)

const (
	defaultTitle       = "Buy Milk"
	defaultDescription = "Don't forget to buy milk!"
)

func newRemindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Authorize and create a reminder event",
		Long: `Authorize access to Google Calendar and create an event with a popup
reminder in the primary calendar.

The consent URL is printed to stdout. After granting access, paste the
authorization code (or the full redirect URL) into the terminal, or pass it
with --code. The code can only be used once.

Examples:
  gcal-reminder remind
  gcal-reminder remind --title "Dentist" --start 2024-05-01T09:00:00+02:00 --reminder-minutes 30
  GOOGLE_CLIENT_ID=... GOOGLE_CLIENT_SECRET=... gcal-reminder`,
		Args: cobra.NoArgs,
		RunE: runRemind,
	}
	addReminderFlags(cmd)

	return cmd
}

// addReminderFlags registers the event flags. The root command carries them
// too, as it runs remind when no subcommand is given.
func addReminderFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", defaultTitle, "Event title")
	cmd.Flags().String("description", defaultDescription, "Event description")
	cmd.Flags().String("start", "", "Event start time in RFC 3339 format (default: now)")
	cmd.Flags().String("end", "", "Event end time in RFC 3339 format (default: start time)")
	cmd.Flags().String("timezone", "", "IANA time zone for the event, e.g. Europe/Berlin")
	cmd.Flags().Int("reminder-minutes", reminder.DefaultReminderOffsetMinutes, "Minutes before the start at which the popup fires")
	cmd.Flags().String("code", "", "Authorization code; skips the interactive prompt")
}

func runRemind(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	req, err := reminderRequest(cmd, time.Now())
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	prompt := stdinPrompt(cmd.InOrStdin(), cmd.OutOrStdout())
	if cmd.Flags().Changed("code") {
		code, _ := cmd.Flags().GetString("code")
		prompt = staticPrompt(code)
	}

	ctx, span := a.provider.Tracer(instrumentation.TracerName).Start(ctx, "gcal-reminder.remind")
	defer span.End()

	event, err := a.workflow.Run(ctx, a.config.Credentials, a.scopes, prompt, req)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		if google.APIStatusCode(err) == http.StatusUnauthorized {
			a.logger.Warn("The access token was rejected; authorize again to obtain a fresh code")
		}
		return err
	}
	instrumentation.SetSpanSuccess(span)

	a.logger.Info("Reminder event created",
		"id", event.ID,
		"summary", event.Summary,
		"start", event.StartTime.Format(time.RFC3339),
		"reminders", len(event.Reminders),
		"link", event.HTMLLink,
		"trace_id", instrumentation.GetTraceID(ctx))

	fmt.Fprintf(cmd.OutOrStdout(), "Created event %s\n", event.ID)
	if event.HTMLLink != "" {
		fmt.Fprintln(cmd.OutOrStdout(), event.HTMLLink)
	}
	return nil
}

// reminderRequest builds the request from flags. now is the default start.
func reminderRequest(cmd *cobra.Command, now time.Time) (reminder.ReminderRequest, error) {
	flags := cmd.Flags()

	title, _ := flags.GetString("title")
	description, _ := flags.GetString("description")
	timeZone, _ := flags.GetString("timezone")
	offset, err := flags.GetInt("reminder-minutes")
	if err != nil {
		return reminder.ReminderRequest{}, err
	}

	startValue, _ := flags.GetString("start")
	start, err := parseTime(startValue, now)
	if err != nil {
		return reminder.ReminderRequest{}, err
	}

	endValue, _ := flags.GetString("end")
	end, err := parseTime(endValue, time.Time{})
	if err != nil {
		return reminder.ReminderRequest{}, err
	}

	if timeZone != "" {
		if _, err := time.LoadLocation(timeZone); err != nil {
			return reminder.ReminderRequest{}, fmt.Errorf("invalid time zone %q: %w", timeZone, err)
		}
	}

	return reminder.ReminderRequest{
		Title:                 title,
		Description:           description,
		StartTime:             start,
		EndTime:               end,
		TimeZone:              timeZone,
		ReminderOffsetMinutes: offset,
	}, nil
}
