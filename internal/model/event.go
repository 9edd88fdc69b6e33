// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the persisted data types shared across the service.
package model

import "time"

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryLocalize  = "localize"
	EventCategoryTranslate = "translate"
	EventCategoryCache     = "cache"
	EventCategoryScheduler = "scheduler"
	EventCategorySystem    = "system"
)

// Event is a system event log entry. WARN and ERROR level slog records are
// teed into this table for auditing.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string // JSON string
	CreatedAt time.Time
}
