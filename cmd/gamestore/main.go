package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gamestore/internal/config"
	"gamestore/internal/http/handlers"
	applog "gamestore/internal/log"
	"gamestore/internal/metrics"
	"gamestore/internal/repos"
)

func main() {
	cfg := config.Load()
	logger := applog.Logger()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			logger.Warnf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			applog.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	cfg.Log(logger)

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		logger.Fatal(err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := repos.SeedAdmin(ctx, db, cfg.AdminUser, cfg.AdminPassword); err != nil {
		logger.Fatal(err)
	}

	deps := handlers.NewDeps(db, cfg, metrics.NewStoreMetrics())
	app := handlers.NewApp(cfg, deps)

	go func() {
		<-ctx.Done()
		logger.Info("[server] shutting down")
		_ = app.Shutdown()
	}()

	logger.Infof("[server] listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal(err)
	}
}
