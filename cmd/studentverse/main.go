package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/studentverse/internal/buildinfo"
	"github.com/dmitrijs2005/studentverse/internal/cli"
	"github.com/dmitrijs2005/studentverse/internal/config"
	"github.com/dmitrijs2005/studentverse/internal/cryptox"
	"github.com/dmitrijs2005/studentverse/internal/dbx"
	"github.com/dmitrijs2005/studentverse/internal/logging"
	"github.com/dmitrijs2005/studentverse/internal/quiz"
	"github.com/dmitrijs2005/studentverse/internal/repositories/repomanager"
	"github.com/dmitrijs2005/studentverse/internal/services"
	"github.com/dmitrijs2005/studentverse/internal/session"
	"github.com/dmitrijs2005/studentverse/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// unblock the REPL's pending read on Ctrl-C
	go func() {
		<-ctx.Done()
		_ = os.Stdin.Close()
	}()

	hasher, err := cryptox.NewHasher(cfg.KDF, cfg.PBKDF2Iterations)
	if err != nil {
		return err
	}

	bank, err := quiz.Load(cfg.QuizFile)
	if err != nil {
		return err
	}

	db, err := storage.Open(ctx, storage.Options{
		Driver:      cfg.DatabaseDriver,
		DSN:         cfg.DatabaseDSN,
		BusyTimeout: cfg.BusyTimeout,
	})
	if err != nil {
		log.Error(ctx, "error opening database", "driver", cfg.DatabaseDriver, "error", err)
		return err
	}
	defer db.Close()

	rm := repomanager.NewSQLRepositoryManager(db.Dialect)
	opts := services.Options{
		Timeout: cfg.OperationTimeout,
		Retry:   dbx.RetryPolicy{Retries: cfg.BusyRetries, BaseDelay: cfg.RetryBaseDelay},
		Logger:  log,
	}
	auth := services.NewAuthService(db.SQL, rm, hasher, opts)
	journal := services.NewJournalService(db.SQL, rm, opts)
	sessions := session.NewManager(auth, cfg.LoginRate, cfg.LoginBurst, nil, log)

	app := cli.NewApp(sessions, journal, bank, os.Stdin, os.Stdout, log)
	app.Run(ctx)
	return nil
}
