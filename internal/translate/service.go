// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/agribridge/agribridge-go/internal/cache"
	"github.com/agribridge/agribridge-go/internal/locale"
	"github.com/agribridge/agribridge-go/internal/model"
	"github.com/agribridge/agribridge-go/internal/store"
)

// Store is the persistent translation cache the dispatcher reads and writes.
// *store.Queries satisfies it.
type Store interface {
	GetTranslation(ctx context.Context, contentID, field, contentHash string) (model.Translation, error)
	UpsertTranslation(ctx context.Context, t model.Translation) error
}

// Service translates record fields through a Provider, memoizing results in
// a two-level cache: a fast in-process/Redis layer in front of the database.
// Lookups are keyed by (content id, field, content hash) so edited source
// text re-translates while unchanged text never hits the provider twice.
type Service struct {
	store    Store
	l1       cache.Cacher
	provider Provider
	cfg      *locale.Config
	limiter  *rate.Limiter
	logger   *slog.Logger
	system   string
	l1TTL    time.Duration
}

// NewService creates a translation dispatcher. provider may be nil, in which
// case only glossary and cache hits produce translations. rps <= 0 disables
// provider rate limiting.
func NewService(st Store, l1 cache.Cacher, provider Provider, cfg *locale.Config, rps float64, burst int, logger *slog.Logger) *Service {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
		if burst < 1 {
			burst = 1
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    st,
		l1:       l1,
		provider: provider,
		cfg:      cfg,
		limiter:  rate.NewLimiter(limit, burst),
		logger:   logger,
		system:   buildSystemPrompt(cfg.Glossary()),
		l1TTL:    time.Hour,
	}
}

// TranslateRecord walks a decoded JSON record and translates its text fields
// in place of the originals, returning a new value with the same shape. When
// enabled is false the input is returned unchanged. contentID overrides the
// record's own id for cache keying; pass "" to let the record's id field (or
// the static bucket) decide.
//
// A field whose translation fails keeps its source text; one bad field never
// fails the record.
func (s *Service) TranslateRecord(ctx context.Context, record any, enabled bool, contentID string) any {
	if !enabled || record == nil {
		return record
	}
	return s.translateValue(ctx, record, contentID)
}

func (s *Service) translateValue(ctx context.Context, v any, contentID string) any {
	switch val := v.(type) {
	case string:
		cid := contentID
		if cid == "" {
			cid = model.StaticContentID
		}
		return s.translateField(ctx, cid, "content", val)
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = s.translateValue(ctx, elem, contentID)
		}
		return out
	case map[string]any:
		return s.translateObject(ctx, val, contentID)
	default:
		return v
	}
}

func (s *Service) translateObject(ctx context.Context, in map[string]any, contentID string) map[string]any {
	cid := contentID
	if cid == "" {
		cid = recordContentID(in)
	}

	out := make(map[string]any, len(in))
	for key, value := range in {
		if key == "_id" || key == "__v" || key == "id" || locale.IsOpaqueValue(value) {
			out[key] = value
			continue
		}
		switch val := value.(type) {
		case string:
			out[key] = s.translateField(ctx, cid, key, val)
		case float64:
			out[key] = s.cfg.TransliterateNumber(val)
		case []any, map[string]any:
			out[key] = s.translateValue(ctx, val, cid)
		default:
			out[key] = value
		}
	}
	return out
}

// recordContentID extracts the record's own id for cache keying. Records
// with no string id share the static bucket.
func recordContentID(in map[string]any) string {
	for _, key := range []string{"_id", "id"} {
		if id, ok := in[key].(string); ok && id != "" {
			return id
		}
	}
	return model.StaticContentID
}

// translateField resolves a single text field: glossary first, then the
// cache layers, then the provider. On any provider failure the trimmed
// source text is returned so the caller still gets a usable record.
func (s *Service) translateField(ctx context.Context, contentID, field, text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || locale.IsHexObjectID(trimmed) {
		return trimmed
	}

	// Exact glossary phrases never need the provider.
	if repl, ok := s.cfg.GlossaryLookup(trimmed); ok {
		return repl
	}

	hash := model.ContentHash(trimmed)
	cacheKey := model.TranslationCacheKey(contentID, field, hash)

	if s.l1 != nil {
		if data, err := s.l1.Get(ctx, cacheKey); err == nil {
			return string(data)
		}
	}

	if s.store != nil {
		t, err := s.store.GetTranslation(ctx, contentID, field, hash)
		if err == nil {
			s.setL1(ctx, cacheKey, t.Translated)
			return t.Translated
		}
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("translation cache lookup failed",
				"category", model.EventCategoryTranslate,
				"content_id", contentID, "field", field, "error", err)
		}
	}

	if s.provider == nil {
		return trimmed
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return trimmed
	}

	translated, err := s.provider.Translate(ctx, s.system, trimmed)
	if err != nil {
		s.logger.Error("translation failed",
			"category", model.EventCategoryTranslate,
			"provider", s.provider.ID(),
			"content_id", contentID, "field", field, "error", err)
		return trimmed
	}
	translated = s.cfg.MapDigits(translated)

	if s.store != nil {
		err := s.store.UpsertTranslation(ctx, model.Translation{
			ContentID:   contentID,
			Field:       field,
			SourceText:  trimmed,
			Translated:  translated,
			ContentHash: hash,
			CreatedAt:   time.Now().UTC(),
		})
		if err != nil {
			s.logger.Error("translation store failed",
				"category", model.EventCategoryTranslate,
				"content_id", contentID, "field", field, "error", err)
		}
	}
	s.setL1(ctx, cacheKey, translated)

	return translated
}

func (s *Service) setL1(ctx context.Context, key, value string) {
	if s.l1 == nil {
		return
	}
	if err := s.l1.Set(ctx, key, []byte(value), s.l1TTL); err != nil {
		s.logger.Warn("translation l1 cache set failed",
			"category", model.EventCategoryCache, "key", key, "error", err)
	}
}
