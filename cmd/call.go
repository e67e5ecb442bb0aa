package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teemow/calendarctl/internal/command"
	"github.com/teemow/calendarctl/internal/google"
)

func newCallCmd(a *app, use string) *cobra.Command {
	var (
		params  jsonInput
		body    jsonInput
		service string
	)

	cmd := &cobra.Command{
		Use:   use + " METHOD PATH",
		Short: "Call an arbitrary Calendar or Tasks API endpoint",
		Long: `Send one request to an arbitrary endpoint. PATH is joined onto the base URL
of --service unless it is an absolute http(s) URL.`,
		Example: `  calendarctl call GET /users/me/calendarList
  calendarctl call POST /calendars/primary/events --body-file event.json
  calendarctl call GET /users/@me/lists --service tasks --params '{"maxResults": 5}'`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := google.ParseService(service)
			if err != nil {
				return err
			}
			paramsInput, err := params.input()
			if err != nil {
				return err
			}
			bodyInput, err := body.input()
			if err != nil {
				return err
			}
			return a.execute(cmd.Context(), command.Call{
				Auth:    a.auth(),
				Method:  args[0],
				Path:    args[1],
				Params:  paramsInput,
				Body:    bodyInput,
				Service: svc,
			})
		},
	}

	addJSONInputFlags(cmd, &params, "params", "Query params")
	addJSONInputFlags(cmd, &body, "body", "Request body")
	cmd.Flags().StringVar(&service, "service", string(google.ServiceCalendar), "Base API for relative paths: calendar or tasks")

	return cmd
}
