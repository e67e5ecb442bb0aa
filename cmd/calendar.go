package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teemow/calendarctl/internal/builder"
	"github.com/teemow/calendarctl/internal/command"
)

func addCalendarCommands(root *cobra.Command, a *app) {
	calendars := &cobra.Command{
		Use:   "calendars",
		Short: "Read the user's calendar list",
	}
	calendars.AddCommand(newListCalendarsCmd(a, "list"))
	calendars.AddCommand(newGetCalendarCmd(a, "get"))

	events := &cobra.Command{
		Use:   "events",
		Short: "List, read and change calendar events",
	}
	events.AddCommand(newListEventsCmd(a, "list"))
	events.AddCommand(newGetEventCmd(a, "get"))
	events.AddCommand(newCreateEventCmd(a, "create"))
	events.AddCommand(newUpdateEventCmd(a, "update"))
	events.AddCommand(newDeleteEventCmd(a, "delete"))

	root.AddCommand(calendars, events, newFreeBusyCmd(a, "freebusy"))

	root.AddCommand(
		flat(newListCalendarsCmd(a, ""), "list-calendars"),
		flat(newGetCalendarCmd(a, ""), "get-calendar"),
		flat(newListEventsCmd(a, ""), "list-events"),
		flat(newGetEventCmd(a, ""), "get-event"),
		flat(newCreateEventCmd(a, ""), "create-event"),
		flat(newUpdateEventCmd(a, ""), "update-event"),
		flat(newDeleteEventCmd(a, ""), "delete-event"),
	)
}

func newListCalendarsCmd(a *app, use string) *cobra.Command {
	var c command.ListCalendars

	cmd := &cobra.Command{
		Use:   use,
		Short: "List calendars",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.MinAccessRole, "min-access-role", "", "Filter by minimum access role (freeBusyReader, reader, writer, owner)")
	cmd.Flags().IntVar(&c.MaxResults, "max-results", 0, "Max results")
	cmd.Flags().StringVar(&c.PageToken, "page-token", "", "Page token")

	return cmd
}

func newGetCalendarCmd(a *app, use string) *cobra.Command {
	var c command.GetCalendar

	cmd := &cobra.Command{
		Use:   use,
		Short: "Get a calendar list entry",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.CalendarID, "calendar-id", "", "Calendar ID (or 'primary')")
	cmd.Flags().StringVar(&c.Fields, "fields", "", "Partial response fields")
	mustRequire(cmd, "calendar-id")

	return cmd
}

func newListEventsCmd(a *app, use string) *cobra.Command {
	var c command.ListEvents

	cmd := &cobra.Command{
		Use:   use,
		Short: "List events",
		Args:  usageArgs(cobra.NoArgs),
		Example: `  calendarctl events list --calendar-id primary \
    --time-min 2025-01-01T00:00:00Z --time-max 2025-02-01T00:00:00Z --single-events --order-by startTime`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.CalendarID, "calendar-id", "", "Calendar ID (or 'primary')")
	cmd.Flags().StringVar(&c.TimeMin, "time-min", "", "RFC3339 start time")
	cmd.Flags().StringVar(&c.TimeMax, "time-max", "", "RFC3339 end time")
	cmd.Flags().StringVar(&c.Query, "q", "", "Free text search query")
	cmd.Flags().BoolVar(&c.SingleEvents, "single-events", false, "Expand recurring events")
	cmd.Flags().StringVar(&c.OrderBy, "order-by", "", "Order by (e.g., startTime)")
	cmd.Flags().IntVar(&c.MaxResults, "max-results", 0, "Max results")
	cmd.Flags().StringVar(&c.TimeZone, "time-zone", "", "IANA timezone")
	cmd.Flags().StringVar(&c.PageToken, "page-token", "", "Page token")
	cmd.Flags().StringVar(&c.Fields, "fields", "", "Partial response fields")
	mustRequire(cmd, "calendar-id", "time-min", "time-max")

	return cmd
}

func newGetEventCmd(a *app, use string) *cobra.Command {
	var c command.GetEvent

	cmd := &cobra.Command{
		Use:   use,
		Short: "Get an event",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.CalendarID, "calendar-id", "", "Calendar ID")
	cmd.Flags().StringVar(&c.EventID, "event-id", "", "Event ID")
	cmd.Flags().StringVar(&c.Fields, "fields", "", "Partial response fields")
	mustRequire(cmd, "calendar-id", "event-id")

	return cmd
}

// addEventFieldFlags registers the structured event fields shared by
// create and update.
func addEventFieldFlags(cmd *cobra.Command, f *builder.EventFields) {
	cmd.Flags().StringVar(&f.Summary, "summary", "", "Event title")
	cmd.Flags().StringVar(&f.Start, "start", "", "Start time (RFC3339 or date)")
	cmd.Flags().StringVar(&f.End, "end", "", "End time (RFC3339 or date)")
	cmd.Flags().StringVar(&f.TimeZone, "time-zone", "", "Timezone if start/end lack offset")
	cmd.Flags().StringVar(&f.Location, "location", "", "Location")
	cmd.Flags().StringVar(&f.Description, "description", "", "Description")
	cmd.Flags().StringVar(&f.Attendees, "attendees", "", "Comma-separated attendee emails")
	cmd.Flags().StringArrayVar(&f.Recurrence, "recurrence", nil, "Repeat rule (RRULE:...); may be repeated")
}

func newCreateEventCmd(a *app, use string) *cobra.Command {
	var (
		c    command.CreateEvent
		body jsonInput
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: "Create an event",
		Args:  usageArgs(cobra.NoArgs),
		Example: `  calendarctl events create --calendar-id primary --summary Standup \
    --start 2025-01-06T09:00:00 --end 2025-01-06T09:15:00 --time-zone Europe/Berlin \
    --recurrence 'RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR'
  calendarctl events create --calendar-id primary --summary Holiday --start 2025-01-06 --end 2025-01-07`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if c.Body, err = body.input(); err != nil {
				return err
			}
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.CalendarID, "calendar-id", "", "Calendar ID")
	addEventFieldFlags(cmd, &c.Fields)
	cmd.Flags().StringVar(&c.SendUpdates, "send-updates", "", "all|externalOnly|none")
	addJSONInputFlags(cmd, &body, "body", "Request body")
	mustRequire(cmd, "calendar-id")

	return cmd
}

func newUpdateEventCmd(a *app, use string) *cobra.Command {
	var (
		c    command.UpdateEvent
		body jsonInput
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: "Update an event",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if c.Body, err = body.input(); err != nil {
				return err
			}
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.CalendarID, "calendar-id", "", "Calendar ID")
	cmd.Flags().StringVar(&c.EventID, "event-id", "", "Event ID")
	addEventFieldFlags(cmd, &c.Fields)
	cmd.Flags().StringVar(&c.SendUpdates, "send-updates", "", "all|externalOnly|none")
	addJSONInputFlags(cmd, &body, "body", "Request body")
	mustRequire(cmd, "calendar-id", "event-id")

	return cmd
}

func newDeleteEventCmd(a *app, use string) *cobra.Command {
	var c command.DeleteEvent

	cmd := &cobra.Command{
		Use:   use,
		Short: "Delete an event",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Auth = a.auth()
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&c.CalendarID, "calendar-id", "", "Calendar ID")
	cmd.Flags().StringVar(&c.EventID, "event-id", "", "Event ID")
	cmd.Flags().StringVar(&c.SendUpdates, "send-updates", "", "all|externalOnly|none")
	mustRequire(cmd, "calendar-id", "event-id")

	return cmd
}

func newFreeBusyCmd(a *app, use string) *cobra.Command {
	var (
		c         command.FreeBusy
		calendars string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: "Free/busy query",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.Auth = a.auth()
			c.Calendars = []string{calendars}
			return a.execute(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&calendars, "calendars", "", "Comma-separated calendar IDs")
	cmd.Flags().StringVar(&c.TimeMin, "time-min", "", "RFC3339 start time")
	cmd.Flags().StringVar(&c.TimeMax, "time-max", "", "RFC3339 end time")
	cmd.Flags().StringVar(&c.TimeZone, "time-zone", "", "IANA timezone")
	mustRequire(cmd, "calendars", "time-min", "time-max")

	return cmd
}
