package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/mangala/internal/api"
	"github.com/alexanderramin/mangala/internal/catalog"
	"github.com/alexanderramin/mangala/internal/cli"
	"github.com/alexanderramin/mangala/internal/client"
	"github.com/alexanderramin/mangala/internal/config"
	"github.com/alexanderramin/mangala/internal/conflict"
	"github.com/alexanderramin/mangala/internal/db"
	"github.com/alexanderramin/mangala/internal/generator"
	"github.com/alexanderramin/mangala/internal/repository"
	"github.com/alexanderramin/mangala/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	var cat *catalog.Catalog
	if cfg.Catalog != "" {
		if cat, err = catalog.ParseFile(cfg.Catalog); err != nil {
			return err
		}
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	metrics := api.NewMetrics()
	observers := []service.UseCaseObserver{service.NewLogUseCaseObserver(logger), metrics}

	app := &cli.App{
		Planning: service.NewPlanningService(generator.New(cat), observers...),
		Conflicts: service.NewConflictService(
			conflict.New(),
			repository.NewSQLiteConflictRepo(database),
			db.NewSQLiteUnitOfWork(database),
			observers...,
		),
		Remote: client.New(client.Config{
			Endpoint:   cfg.API.Endpoint,
			TimeoutMs:  cfg.API.TimeoutMs,
			MaxRetries: cfg.API.MaxRetries,
			Strict:     cfg.API.Strict,
		}, client.WithLogger(logger), client.WithObserver(client.NewLogObserver(logger))),
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}
