package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/tkarvinen/spotadvisor-go/advisor"
	"github.com/tkarvinen/spotadvisor-go/cache"
	"github.com/tkarvinen/spotadvisor-go/config"
	"github.com/tkarvinen/spotadvisor-go/database"
	"github.com/tkarvinen/spotadvisor-go/logging"
	"github.com/tkarvinen/spotadvisor-go/porssisahko"
	"github.com/tkarvinen/spotadvisor-go/quarters"
	"github.com/tkarvinen/spotadvisor-go/task"
	"github.com/tkarvinen/spotadvisor-go/www"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if cnfg.Api.GetToken() == config.DefaultTokenSentinel && os.Getenv("SPOTADVISOR_ALLOW_DEFAULT") == "" {
		panic("api.token not configured: set a real token, or an empty one if you really want no auth")
	}

	if err := quarters.SetDisplayTimezone(cnfg.Advisor.GetTimezone()); err != nil {
		panic(fmt.Sprintf("failed to set display timezone: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("spotadvisor is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.GetPath())
	if err != nil {
		panic(fmt.Sprintf("failed to open database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewTeeHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)
	db.SetLogger(logger.With("module", "database"))

	feedURL := cnfg.Feed.Url
	if feedURL == "" {
		feedURL = porssisahko.DefaultURL
	}
	client := porssisahko.New(feedURL, cnfg.Feed.GetTimeout(), cnfg.Feed.GetUserAgent())

	var priceCache *cache.PriceCache
	if cnfg.Cache.Enabled {
		priceCache = cache.New(cnfg.Cache.GetTtl())
		logger.Info("price cache enabled", slog.Duration("ttl", cnfg.Cache.GetTtl()))
	} else {
		logger.Info("price cache disabled, every request fetches fresh prices")
	}

	adv := advisor.New(
		logger.With("module", "advisor"),
		client,
		priceCache,
		client.URL(),
		cnfg.Advisor.GetVatRate())

	tasks := task.NewTasks(db, cnfg)
	tasks.Run()
	defer tasks.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
		case sig := <-sigCh:
			logger.Info("received signal", slog.Any("signal", sig))
			cancel()
		}
	}()

	server := www.StartServer(adv, db, priceCache, cnfg, Version)
	server.Run(ctx)
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}
	time.Sleep(2 * time.Second)
	os.Exit(1)
}
