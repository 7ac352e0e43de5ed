// Package cli implements the grouplog subcommands and the shared setup used
// by the interactive program.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/stwalsh4118/grouplog/internal/config"
	"github.com/stwalsh4118/grouplog/internal/debug"
	"github.com/stwalsh4118/grouplog/internal/pathutil"
	"github.com/stwalsh4118/grouplog/internal/search"
	"github.com/stwalsh4118/grouplog/internal/store"
)

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// App is an open store and the controller reading from it.
type App struct {
	Config     *config.Config
	Controller *search.Controller

	store store.Store
}

// Close releases the store.
func (a *App) Close() error {
	return a.store.Close()
}

// Open loads the config at configPath (or the default location when empty),
// opens the configured store and builds a controller over it.
func Open(configPath string) (*App, error) {
	if configPath == "" {
		configPath = config.Path()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	debug.SetLevel(cfg.Log.Level)

	sortStates, err := SortStates(cfg.Sort)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	debug.Logger().Info("store opened", "backend", cfg.Store.Backend, "path", pathutil.ShortenPath(cfg.Store.Path))

	ctrl, err := search.NewController(st,
		search.WithSortStates(sortStates),
		search.WithLogger(debug.Logger()),
	)
	if err != nil {
		st.Close()
		return nil, err
	}

	return &App{Config: cfg, Controller: ctrl, store: st}, nil
}

// SortStates converts the configured sort directions.
func SortStates(cfg config.SortConfig) (search.SortStates, error) {
	var st search.SortStates
	for _, f := range []struct {
		name  string
		value string
		dst   *search.SortState
	}{
		{"date", cfg.Date, &st.Date},
		{"group", cfg.Group, &st.Group},
		{"duration", cfg.Duration, &st.Duration},
	} {
		if f.value == "" {
			continue
		}
		s, err := search.ParseSortState(f.value)
		if err != nil {
			return search.SortStates{}, fmt.Errorf("sort.%s: %w", f.name, err)
		}
		*f.dst = s
	}
	return st, nil
}
