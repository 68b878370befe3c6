package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NasmeenI/tablebook/cmd/tui/ui"
	"github.com/NasmeenI/tablebook/internal/api"
	"github.com/NasmeenI/tablebook/internal/config"
	"github.com/NasmeenI/tablebook/internal/enrich"
	"github.com/NasmeenI/tablebook/internal/logger"
	"github.com/NasmeenI/tablebook/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	var log *logger.Logger
	if cfg.Log.File != "" {
		log, err = logger.NewFile("tui", cfg.Log.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
	} else {
		// No log file configured; stdout belongs to the alternate screen, so
		// discard instead of corrupting it.
		log, err = logger.NewFile("tui", os.DevNull)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log sink: %v\n", err)
			os.Exit(1)
		}
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	store := session.NewStore(client, session.NewTokenFile(cfg.Session.TokenPath), log)
	enricher := enrich.NewEnricher(client, enrich.NewRestaurantCache(128))

	deps := ui.Deps{
		Session:  store,
		Client:   client,
		Enricher: enricher,
		Log:      log,
	}

	p := tea.NewProgram(ui.NewModel(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
