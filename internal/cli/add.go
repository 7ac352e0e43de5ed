package cli

import (
	"flag"
	"fmt"

	"github.com/stwalsh4118/grouplog/internal/session"
)

// RunAdd saves a new session from flags. Running the command is taken as the
// confirmation, so no prompt is shown.
func RunAdd(args []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "config file (default ~/.grouplog/config.yaml)")
	group := fs.String("group", "", "group name (required)")
	date := fs.String("date", "", "session date, e.g. 2024-03-01 (required)")
	duration := fs.Float64("duration", 0, "length of the session in hours")
	participants := fs.String("participants", "", "comma separated participant names")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	rec := session.Normalize(session.Info{
		GroupName:    *group,
		Date:         *date,
		Duration:     *duration,
		Participants: session.SplitParticipants(*participants),
	})
	if err := session.Validate(rec); err != nil {
		fmt.Fprintf(stderr, "invalid session: %v\n", err)
		return 1
	}

	app, err := Open(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer app.Close()

	ctrl := app.Controller
	ctrl.NewSession()
	ctrl.RequestSave(rec)
	if err := ctrl.Confirm(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Saved %s session on %s\n", rec.GroupName, rec.Date)
	return 0
}
