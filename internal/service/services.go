// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Luiza Romeira

package service

import (
	"github.com/lromeira/pdv-sync/internal/config"
	"github.com/lromeira/pdv-sync/internal/logger"
	"github.com/lromeira/pdv-sync/internal/store"
	"github.com/lromeira/pdv-sync/internal/sync"
)

type Services struct {
	AuthService    AuthService
	SyncService    SyncService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, engine *sync.Engine, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(storages.Users, cfg.App, logger),
		SyncService:    NewSyncService(engine, storages.Checkpoints, logger),
		AppInfoService: appInfoService,
	}, nil
}
