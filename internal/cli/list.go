package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/stwalsh4118/grouplog/internal/search"
	"github.com/stwalsh4118/grouplog/internal/session"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// RunList executes the one-shot list command.
func RunList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "config file (default ~/.grouplog/config.yaml)")
	group := fs.String("group", "", "only sessions whose group name starts with this prefix")
	from := fs.String("from", "", "start of the date range, inclusive (needs --to)")
	to := fs.String("to", "", "end of the date range, inclusive (needs --from)")
	sortSpec := fs.String("sort", "", "sort keys, e.g. date:desc,group:asc (default from config)")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	app, err := Open(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer app.Close()

	ctrl := app.Controller
	if *sortSpec != "" {
		st, err := parseSortSpec(*sortSpec)
		if err != nil {
			fmt.Fprintf(stderr, "invalid sort: %v\n", err)
			return 1
		}
		ctrl.SetSortStates(st)
	}
	ctrl.SetFilter(search.Filter{Group: *group, Start: *from, End: *to})

	sessions := ctrl.ListView()
	if len(sessions) == 0 {
		if ctrl.Len() == 0 {
			fmt.Fprintln(stdout, "No Saved Sessions")
		} else {
			fmt.Fprintln(stdout, "No sessions match the filters")
		}
		return 0
	}
	fmt.Fprintln(stdout, renderTable(sessions))
	return 0
}

// parseSortSpec parses "column:direction" pairs separated by commas.
// Columns not named are neutral; a bare column name sorts increasing.
func parseSortSpec(spec string) (search.SortStates, error) {
	var st search.SortStates
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, dir, found := strings.Cut(part, ":")
		col, err := search.ParseColumn(name)
		if err != nil {
			return search.SortStates{}, err
		}
		state := search.Increasing
		if found {
			if state, err = search.ParseSortState(dir); err != nil {
				return search.SortStates{}, err
			}
		}
		st = st.With(col, state)
	}
	return st, nil
}

// renderTable formats sessions as a bordered table.
func renderTable(sessions []session.Info) string {
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.GroupName,
			s.Date,
			fmt.Sprintf("%g", s.Duration),
			session.JoinParticipants(s.Participants),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(
			search.ColumnLabel(search.ColumnGroup),
			search.ColumnLabel(search.ColumnDate),
			search.ColumnLabel(search.ColumnDuration),
			"Participants",
		).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}
