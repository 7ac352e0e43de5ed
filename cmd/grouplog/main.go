package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stwalsh4118/grouplog/internal/cli"
	"github.com/stwalsh4118/grouplog/internal/debug"
	"github.com/stwalsh4118/grouplog/internal/tui"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "list":
			os.Exit(cli.RunList(os.Args[2:]))
		case "groups":
			os.Exit(cli.RunGroups(os.Args[2:]))
		case "add":
			os.Exit(cli.RunAdd(os.Args[2:]))
		}
	}

	fs := flag.NewFlagSet("grouplog", flag.ExitOnError)
	configPath := fs.String("config", "", "config file (default ~/.grouplog/config.yaml)")
	fs.Parse(os.Args[1:])

	os.Exit(run(*configPath))
}

func run(configPath string) int {
	defer debug.Close()

	app, err := cli.Open(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer app.Close()

	p := tea.NewProgram(tui.New(app.Controller), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
