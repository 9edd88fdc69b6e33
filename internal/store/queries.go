// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/agribridge/agribridge-go/internal/model"
)

// ErrNotFound is returned when a lookup matches no rows.
var ErrNotFound = errors.New("store: not found")

// Queries wraps a database handle with the service's query set.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance over the given database.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// GetTranslation looks up a cached translation by its compound key.
// Returns ErrNotFound on a cache miss.
func (q *Queries) GetTranslation(ctx context.Context, contentID, field, contentHash string) (model.Translation, error) {
	var t model.Translation
	err := q.db.QueryRowContext(ctx, `
		SELECT id, content_id, field, source_text, translated_text, content_hash, created_at
		FROM translations
		WHERE content_id = ? AND field = ? AND content_hash = ?`,
		contentID, field, contentHash,
	).Scan(&t.ID, &t.ContentID, &t.Field, &t.SourceText, &t.Translated, &t.ContentHash, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Translation{}, ErrNotFound
	}
	if err != nil {
		return model.Translation{}, err
	}
	return t, nil
}

// UpsertTranslation stores a translation, replacing any existing row with
// the same (content_id, field, content_hash) key. Concurrent writers for
// the same triple converge on the last write instead of failing on the
// unique constraint.
func (q *Queries) UpsertTranslation(ctx context.Context, t model.Translation) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO translations (content_id, field, source_text, translated_text, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (content_id, field, content_hash)
		DO UPDATE SET translated_text = excluded.translated_text, created_at = excluded.created_at`,
		t.ContentID, t.Field, t.SourceText, t.Translated, t.ContentHash, t.CreatedAt,
	)
	return err
}

// PurgeTranslationsBefore deletes translations created before the cutoff.
// Returns the number of rows removed.
func (q *Queries) PurgeTranslationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM translations WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountTranslations returns the number of cached translations.
func (q *Queries) CountTranslations(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM translations`).Scan(&n)
	return n, err
}

// CreateEvent inserts an event log entry.
func (q *Queries) CreateEvent(ctx context.Context, e model.Event) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO events (level, category, message, metadata, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.Level, e.Category, e.Message, e.Metadata, e.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRecentEvents returns the newest events up to limit.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, level, category, message, metadata, created_at
		FROM events
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
