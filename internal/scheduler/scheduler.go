// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs, currently the daily
// purge of expired cached translations.
package scheduler

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/agribridge/agribridge-go/internal/model"
	"github.com/agribridge/agribridge-go/internal/store"
)

// Scheduler handles scheduled maintenance tasks.
type Scheduler struct {
	db        *sql.DB
	cron      *cron.Cron
	logger    *slog.Logger
	retention time.Duration
}

// New creates a new scheduler instance. retention <= 0 falls back to the
// default translation retention window.
func New(db *sql.DB, retention time.Duration, logger *slog.Logger) *Scheduler {
	if retention <= 0 {
		retention = model.TranslationRetention
	}
	return &Scheduler{
		db:        db,
		cron:      cron.New(),
		logger:    logger,
		retention: retention,
	}
}

// Start begins the scheduler with a daily translation purge job.
func (s *Scheduler) Start() error {
	// Run daily at 03:00; the cache is coldest then for our market hours.
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		if err := s.PurgeExpiredTranslations(context.Background()); err != nil {
			s.logger.Error("failed to purge expired translations",
				"category", model.EventCategoryScheduler, "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PurgeExpiredTranslations removes cached translations older than the
// retention window and records an event when rows were removed.
func (s *Scheduler) PurgeExpiredTranslations(ctx context.Context) error {
	queries := store.New(s.db)

	now := time.Now().UTC()
	cutoff := now.Add(-s.retention)

	removed, err := queries.PurgeTranslationsBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if removed == 0 {
		return nil
	}

	s.logger.Info("purged expired translations",
		"category", model.EventCategoryScheduler,
		"removed", removed,
		"cutoff", cutoff.Format(time.RFC3339),
	)

	metadata, _ := json.Marshal(map[string]any{
		"removed": removed,
		"cutoff":  cutoff.Format(time.RFC3339),
	})
	_, err = queries.CreateEvent(ctx, model.Event{
		Level:     model.EventLevelInfo,
		Category:  model.EventCategoryScheduler,
		Message:   "Expired translations purged by scheduler",
		Metadata:  string(metadata),
		CreatedAt: now,
	})
	if err != nil {
		s.logger.Warn("failed to log purge event", "error", err)
	}

	return nil
}
