// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Luiza Romeira

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// routes requiring a valid bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/sync/status", h.syncStatus)
		r.Get("/sync/{entity}", h.pullEntity)
		r.Post("/sync/{entity}", h.pushEntity)

		r.Get("/api/version/", h.getServerVersion)
	})

	return router
}
