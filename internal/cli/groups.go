package cli

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/stwalsh4118/grouplog/internal/metrics"
)

// RunGroups prints every known group name, one per line. With --stats it
// prints a table of per-group totals instead.
func RunGroups(args []string) int {
	fs := flag.NewFlagSet("groups", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "config file (default ~/.grouplog/config.yaml)")
	stats := fs.Bool("stats", false, "show session count, total hours and participants per group")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	app, err := Open(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer app.Close()

	if !*stats {
		for _, name := range app.Controller.GroupNames() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	summaries := metrics.ByGroup(app.Controller.ListView())
	if len(summaries) == 0 {
		fmt.Fprintln(stdout, "No Saved Sessions")
		return 0
	}
	fmt.Fprintln(stdout, renderGroupStats(summaries))
	return 0
}

func renderGroupStats(summaries []metrics.GroupSummary) string {
	rows := make([][]string, 0, len(summaries))
	for _, g := range summaries {
		rows = append(rows, []string{
			g.Group,
			strconv.Itoa(g.Sessions),
			metrics.FormatHours(g.Hours),
			strconv.Itoa(g.Participants),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Group Name", "Sessions", "Total", "Participants").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
