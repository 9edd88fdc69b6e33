// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/agribridge/agribridge-go/internal/cache"
	"github.com/agribridge/agribridge-go/internal/model"
	"github.com/agribridge/agribridge-go/internal/store"
)

// CacheHandler serves translation cache administration endpoints.
type CacheHandler struct {
	queries   *store.Queries
	l1        cache.Cacher
	retention time.Duration
}

// NewCacheHandler creates a cache administration handler.
func NewCacheHandler(queries *store.Queries, l1 cache.Cacher, retention time.Duration) *CacheHandler {
	if retention <= 0 {
		retention = model.TranslationRetention
	}
	return &CacheHandler{queries: queries, l1: l1, retention: retention}
}

// cacheStats is the GET /api/v1/cache/stats response body.
type cacheStats struct {
	Translations  int64        `json:"translations"`
	RetentionDays int          `json:"retention_days"`
	L1            *cache.Stats `json:"l1,omitempty"`
}

// Stats handles GET /api/v1/cache/stats.
func (h *CacheHandler) Stats(w http.ResponseWriter, r *http.Request) {
	count, err := h.queries.CountTranslations(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to count translations")
		return
	}

	stats := cacheStats{
		Translations:  count,
		RetentionDays: int(h.retention / (24 * time.Hour)),
	}
	if sp, ok := h.l1.(cache.StatsProvider); ok {
		s := sp.Stats()
		stats.L1 = &s
	}

	WriteSuccess(w, stats, nil)
}

// Clear handles DELETE /api/v1/cache. It empties the fast cache layer only;
// persisted translations stay until the retention purge removes them.
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if h.l1 != nil {
		if err := h.l1.Clear(r.Context()); err != nil {
			WriteInternalError(w, "Failed to clear cache")
			return
		}
	}
	WriteSuccess(w, map[string]string{"status": "cleared"}, nil)
}

// Purge handles POST /api/v1/cache/purge, removing persisted translations
// older than the retention window. The scheduler runs the same purge daily;
// this endpoint exists for operators who want it now.
func (h *CacheHandler) Purge(w http.ResponseWriter, r *http.Request) {
	cutoff := time.Now().UTC().Add(-h.retention)
	removed, err := h.queries.PurgeTranslationsBefore(r.Context(), cutoff)
	if err != nil {
		WriteInternalError(w, "Failed to purge translations")
		return
	}
	WriteSuccess(w, map[string]int64{"removed": removed}, nil)
}
