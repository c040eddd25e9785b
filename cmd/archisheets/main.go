package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/estudiarq/archisheets/internal/auth"
	"github.com/estudiarq/archisheets/internal/catalog"
	"github.com/estudiarq/archisheets/internal/cli"
	"github.com/estudiarq/archisheets/internal/config"
	"github.com/estudiarq/archisheets/internal/db"
	"github.com/estudiarq/archisheets/internal/export"
	"github.com/estudiarq/archisheets/internal/intelligence"
	"github.com/estudiarq/archisheets/internal/llm"
	"github.com/estudiarq/archisheets/internal/repository"
	"github.com/estudiarq/archisheets/internal/service"
	"github.com/estudiarq/archisheets/internal/sheets"
	"github.com/estudiarq/archisheets/internal/sheetsync"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("ARCHISHEETS_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Open the local catalog cache database.
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	cache := repository.NewSQLiteCatalogCache(database)
	store := sheets.NewClient(cfg.SheetsEndpoint)
	registry := catalog.NewRegistry(store, cfg.MasterSheetID)
	credentials := auth.NewFileTokenStore(cfg.TokenPath)

	// Service telemetry goes to stderr when debugging is requested.
	var observers []service.UseCaseObserver
	if os.Getenv("ARCHISHEETS_DEBUG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	syncer := service.NewSyncService(sheetsync.NewExecutor(store), observers...)

	app := &cli.App{
		Projects:    service.NewProjectService(registry, cache, store, syncer, observers...),
		Sync:        syncer,
		Export:      export.NewPipeline(),
		Credentials: credentials,
	}

	// Detect interactive terminal for the bare-invocation TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Wire drafting assistance (only when the generative backend is enabled).
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		llmClient := llm.NewGeminiClient(llmCfg, observer)
		app.Suggest = intelligence.NewSuggestService(llmClient, observer)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
