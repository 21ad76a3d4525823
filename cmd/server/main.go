// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Luiza Romeira

package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/lromeira/pdv-sync/internal/config"
	handler "github.com/lromeira/pdv-sync/internal/handler/http"
	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/internal/server"
	"github.com/lromeira/pdv-sync/internal/service"
	"github.com/lromeira/pdv-sync/internal/store"
	"github.com/lromeira/pdv-sync/internal/sync"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// a missing .env file is fine; env vars may come from the environment
	_ = godotenv.Load()

	log := logger.NewLogger("pdv-sync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	registry, err := sync.NewRegistry(storages.Adapters...)
	if err != nil {
		log.Fatal().Err(err).Msg("error building entity registry")
	}

	engine := sync.NewEngine(registry, storages.TxManager, storages.DB, log)

	services, err := service.NewServices(storages, engine, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers := handler.NewHandler(services, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
