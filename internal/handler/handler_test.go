// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/agribridge/agribridge-go/internal/cache"
	"github.com/agribridge/agribridge-go/internal/locale"
	"github.com/agribridge/agribridge-go/internal/store"
	"github.com/agribridge/agribridge-go/internal/translate"
)

func testLocaleConfig(t *testing.T) *locale.Config {
	t.Helper()
	cfg, err := locale.NewMyanmarConfig()
	if err != nil {
		t.Fatalf("NewMyanmarConfig: %v", err)
	}
	return cfg
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) any {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Data
}

func TestLocalizeMyanmar(t *testing.T) {
	h := NewLocalizeHandler(testLocaleConfig(t))

	rec := postJSON(t, h.Localize, "/api/v1/localize", map[string]any{
		"locale": "my",
		"data": map[string]any{
			"_id":      "507f1f77bcf86cd799439011",
			"quantity": 250,
			"unit":     "Bag",
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec).(map[string]any)
	if data["_id"] != "507f1f77bcf86cd799439011" {
		t.Errorf("_id changed: %v", data["_id"])
	}
	if data["quantity"] != "၂၅၀" {
		t.Errorf("quantity = %v, want ၂၅၀", data["quantity"])
	}
	if data["unit"] != "အိတ်" {
		t.Errorf("unit = %v, want glossary translation", data["unit"])
	}
}

func TestLocalizeDefaultsToRequestLocale(t *testing.T) {
	h := NewLocalizeHandler(testLocaleConfig(t))

	// No locale in the body and no middleware: default language applies.
	rec := postJSON(t, h.Localize, "/api/v1/localize", map[string]any{
		"data": map[string]any{"price": 12500},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data := decodeData(t, rec).(map[string]any)
	if data["price"] != "12,500" {
		t.Errorf("price = %v, want 12,500", data["price"])
	}
}

func TestLocalizeUnsupportedLocale(t *testing.T) {
	h := NewLocalizeHandler(testLocaleConfig(t))

	rec := postJSON(t, h.Localize, "/api/v1/localize", map[string]any{
		"locale": "fr",
		"data":   map[string]any{},
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLocalizeInvalidJSON(t *testing.T) {
	h := NewLocalizeHandler(testLocaleConfig(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/localize", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Localize(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGlossaryListing(t *testing.T) {
	h := NewLocalizeHandler(testLocaleConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/glossary", nil)
	rec := httptest.NewRecorder()
	h.Glossary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Data []struct {
			Term        string `json:"term"`
			Translation string `json:"translation"`
		} `json:"data"`
		Meta *Meta `json:"meta"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) == 0 {
		t.Fatal("glossary is empty")
	}
	if resp.Meta == nil || resp.Meta.Count != int64(len(resp.Data)) {
		t.Errorf("meta count mismatch: %+v", resp.Meta)
	}
	for i := 1; i < len(resp.Data); i++ {
		if resp.Data[i-1].Term > resp.Data[i].Term {
			t.Errorf("glossary not sorted at %d: %q > %q", i, resp.Data[i-1].Term, resp.Data[i].Term)
		}
	}
}

// echoProvider prefixes translations deterministically for tests.
type echoProvider struct{}

func (echoProvider) ID() string { return "echo" }

func (echoProvider) Translate(_ context.Context, _, text string) (string, error) {
	return "my:" + text, nil
}

func testTranslateService(t *testing.T, db *sql.DB) *translate.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	l1 := cache.NewSimpleMemoryCache(time.Minute)
	t.Cleanup(func() { _ = l1.Close() })
	return translate.NewService(store.New(db), l1, echoProvider{}, testLocaleConfig(t), 0, 0, logger)
}

func TestTranslateEndpoint(t *testing.T) {
	db := testDB(t)
	h := NewTranslateHandler(testTranslateService(t, db))

	rec := postJSON(t, h.Translate, "/api/v1/translate", map[string]any{
		"data": map[string]any{
			"_id":   "abc123",
			"title": "Fresh tomatoes for sale",
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec).(map[string]any)
	if data["title"] != "my:Fresh tomatoes for sale" {
		t.Errorf("title = %v", data["title"])
	}
	if data["_id"] != "abc123" {
		t.Errorf("_id changed: %v", data["_id"])
	}
}

func TestTranslateEndpointDisabled(t *testing.T) {
	db := testDB(t)
	h := NewTranslateHandler(testTranslateService(t, db))

	enabled := false
	rec := postJSON(t, h.Translate, "/api/v1/translate", map[string]any{
		"enabled": &enabled,
		"data":    map[string]any{"title": "Fresh tomatoes"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data := decodeData(t, rec).(map[string]any)
	if data["title"] != "Fresh tomatoes" {
		t.Errorf("disabled translate changed data: %v", data)
	}
}

func TestCacheStatsAndPurge(t *testing.T) {
	db := testDB(t)
	queries := store.New(db)
	l1 := cache.NewSimpleMemoryCache(time.Minute)
	t.Cleanup(func() { _ = l1.Close() })
	h := NewCacheHandler(queries, l1, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil)
	rec := httptest.NewRecorder()
	h.Stats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	var resp struct {
		Data struct {
			Translations  int64 `json:"translations"`
			RetentionDays int   `json:"retention_days"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if resp.Data.RetentionDays != 30 {
		t.Errorf("retention days = %d, want 30", resp.Data.RetentionDays)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/cache/purge", nil)
	rec = httptest.NewRecorder()
	h.Purge(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("purge status = %d", rec.Code)
	}
}

func TestCacheClear(t *testing.T) {
	db := testDB(t)
	l1 := cache.NewSimpleMemoryCache(time.Minute)
	t.Cleanup(func() { _ = l1.Close() })
	h := NewCacheHandler(store.New(db), l1, 0)

	ctx := context.Background()
	if err := l1.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cache", nil)
	rec := httptest.NewRecorder()
	h.Clear(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d", rec.Code)
	}
	if has, _ := l1.Has(ctx, "k"); has {
		t.Error("cache still holds key after clear")
	}
}

func TestHealthEndpoints(t *testing.T) {
	db := testDB(t)
	h := NewHealthHandler(db)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, body %s", rec.Code, rec.Body.String())
	}
	var status HealthStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if status.Status != "healthy" {
		t.Errorf("status = %q", status.Status)
	}
	if status.Checks["database"].Status != "healthy" {
		t.Errorf("database check = %+v", status.Checks["database"])
	}

	rec = httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("live status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("ready status = %d", rec.Code)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
