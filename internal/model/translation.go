// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// StaticContentID is the content id recorded for translations of text that
// does not belong to any stored record (UI strings, ad-hoc notifications).
const StaticContentID = "static"

// TranslationRetention is how long a cached translation is kept before the
// purge job removes it. A translation older than this is recomputed on the
// next request.
const TranslationRetention = 30 * 24 * time.Hour

// Translation is a cached model translation, uniquely keyed by
// (content id, field, content hash). The hash is part of the key so that
// edited source text misses the cache instead of serving a stale result.
type Translation struct {
	ID          int64
	ContentID   string
	Field       string
	SourceText  string
	Translated  string
	ContentHash string
	CreatedAt   time.Time
}

// ContentHash returns the deterministic digest of a source string used in
// translation cache keys.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// TranslationCacheKey builds the L1 cache key for a translation triple.
func TranslationCacheKey(contentID, field, hash string) string {
	return fmt.Sprintf("tr:%s:%s:%s", contentID, field, hash)
}
