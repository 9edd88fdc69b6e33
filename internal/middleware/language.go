// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/agribridge/agribridge-go/internal/i18n"
)

// ContextKeyLocale is the context key for the resolved locale code.
const ContextKeyLocale ContextKey = "locale"

// Locale creates middleware that resolves the request locale.
// Priority order:
// 1. Query parameter ?lang=XX (explicit switch)
// 2. Accept-Language header
// 3. Default language
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := ""

		if queryLang := r.URL.Query().Get("lang"); queryLang != "" {
			c := strings.ToLower(strings.TrimSpace(queryLang))
			if i18n.IsSupported(c) {
				code = c
			}
		}
		if code == "" {
			code = i18n.MatchLanguage(r.Header.Get("Accept-Language"))
		}

		ctx := context.WithValue(r.Context(), ContextKeyLocale, code)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetLocale retrieves the resolved locale from the request context.
// Returns the default language if none was set.
func GetLocale(r *http.Request) string {
	code, ok := r.Context().Value(ContextKeyLocale).(string)
	if !ok || code == "" {
		return i18n.DefaultLanguage
	}
	return code
}
