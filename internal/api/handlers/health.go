// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/genie-coder21/seedable/internal/domain"
)

// HealthHandler reports service liveness and the active filter settings.
type HealthHandler struct {
	cfg *domain.Config
}

func NewHealthHandler(cfg *domain.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

func (h *HealthHandler) Routes(r chi.Router) {
	r.Get("/", h.Health)
}

type healthResponse struct {
	Status        string `json:"status"`
	MinDuplicates int    `json:"min_duplicates"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	RespondJSON(w, http.StatusOK, healthResponse{
		Status:        "healthy",
		MinDuplicates: h.cfg.MinDuplicates,
	})
}
