// Command publish stores extracted lesson documents in PostgreSQL so the
// lesson API can serve them. Publishing a document again replaces the
// lessons previously published for the same source file and kind.
//
// Usage:
//
//	publish [-config path] [-migrate] [-dry-run] doc.json [doc.json ...]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/n3vocab/internal/adapter/postgres"
	lessonrepo "github.com/heartmarshall/n3vocab/internal/adapter/postgres/lesson"
	"github.com/heartmarshall/n3vocab/internal/app"
	"github.com/heartmarshall/n3vocab/internal/app/publisher"
	"github.com/heartmarshall/n3vocab/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFlag := flag.String("config", "", "path to YAML config")
	migrateFlag := flag.Bool("migrate", false, "apply database migrations before publishing")
	dryRunFlag := flag.Bool("dry-run", false, "validate documents without writing to the database")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 && !*migrateFlag {
		return errors.New("no documents given")
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *dryRunFlag {
		results, err := publisher.New(logger, nil, nil, true).PublishFiles(ctx, paths)
		if err != nil {
			return err
		}
		report(results, true)
		return nil
	}

	if err := cfg.RequireDatabase(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if *migrateFlag {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return err
		}
		if len(paths) == 0 {
			return nil
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	p := publisher.New(logger, lessonrepo.New(pool), postgres.NewTxManager(pool), false)
	results, err := p.PublishFiles(ctx, paths)
	if err != nil {
		return err
	}
	report(results, false)
	logger.Info("publish complete", slog.Int("documents", len(results)))
	return nil
}

func report(results []publisher.Result, dryRun bool) {
	for _, r := range results {
		action := "published"
		switch {
		case dryRun:
			action = "valid"
		case r.Replaced:
			action = "replaced"
		}
		fmt.Printf("%-9s %s (%s, %s): %d lessons, %d entries\n",
			action, r.Path, r.Kind, r.SourceFile, r.Lessons, r.Entries)
	}
}
