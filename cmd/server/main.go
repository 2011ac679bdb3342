// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

// Package main is the entry point for the ReelRank server.
//
// ReelRank serves content-based movie and TV recommendations over a REST
// API. Titles are scored by cosine similarity between one-hot genre
// vectors; results are cached with per-mode TTLs.
//
// The server initializes components in order:
//
//  1. Configuration: struct defaults, optional YAML file, then
//     REELRANK_-prefixed environment variables (Koanf v2)
//  2. Logging: zerolog, JSON or console format
//  3. Catalog: DuckDB store with schema bootstrap and optional seeding
//  4. Result cache: Badger with TTL entries and a value-log GC loop
//  5. Recommendation engine
//  6. HTTP server: chi router with graceful shutdown on SIGINT/SIGTERM
//
// Example:
//
//	export REELRANK_DATABASE_PATH=/data/reelrank.db
//	export REELRANK_DATABASE_SEED=true
//	export REELRANK_CACHE_PATH=/data/cache
//	./reelrank
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/reelrank/reelrank/internal/api"
	"github.com/reelrank/reelrank/internal/cache"
	"github.com/reelrank/reelrank/internal/catalog"
	"github.com/reelrank/reelrank/internal/config"
	"github.com/reelrank/reelrank/internal/logging"
	"github.com/reelrank/reelrank/internal/metrics"
	"github.com/reelrank/reelrank/internal/recommend"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("Starting ReelRank")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := catalog.New(&cfg.Database, logging.WithComponent("catalog"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open catalog store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog store")
		}
	}()

	if cfg.Database.Seed {
		if err := store.Seed(ctx); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed catalog")
		}
	}

	var resultCache recommend.ResultCache
	if cfg.Cache.Enabled {
		badgerStore, err := cache.OpenBadger(cfg.Cache.Path)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to open result cache")
		}
		defer func() {
			if err := badgerStore.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing result cache")
			}
		}()
		badgerStore.StartGC(ctx, cfg.Cache.GCInterval)
		resultCache = badgerStore
	} else {
		logging.Warn().Msg("Result cache disabled, every request computes from scratch")
	}

	engineCfg := recommend.DefaultConfig()
	engineCfg.ItemTTL = cfg.Recommend.ItemTTL
	engineCfg.GenreTTL = cfg.Recommend.GenreTTL
	engineCfg.GenreSingleKindTTL = cfg.Recommend.GenreSingleKindTTL
	engineCfg.DefaultItemLimit = cfg.Recommend.DefaultItemLimit
	engineCfg.DefaultGenreLimit = cfg.Recommend.DefaultGenreLimit
	engineCfg.MaxLimit = cfg.Recommend.MaxLimit

	engine, err := recommend.NewEngine(store, resultCache, engineCfg, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	handler := api.NewHandler(store, engine, version)
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      api.NewRouter(&cfg.Server, handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go trackUptime(ctx)

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		serverErr <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed, forcing close")
		_ = server.Close()
	}
	cancel()

	logging.Info().Msg("Application stopped gracefully")
}

// trackUptime refreshes the uptime gauge once per minute.
func trackUptime(ctx context.Context) {
	start := time.Now()
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.AppUptime.Set(time.Since(start).Seconds())
		}
	}
}
