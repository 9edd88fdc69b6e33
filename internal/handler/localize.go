// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"sort"

	"github.com/agribridge/agribridge-go/internal/i18n"
	"github.com/agribridge/agribridge-go/internal/locale"
	"github.com/agribridge/agribridge-go/internal/middleware"
)

// LocalizeHandler serves the structure-preserving localization endpoints.
type LocalizeHandler struct {
	cfg *locale.Config
}

// NewLocalizeHandler creates a localization handler.
func NewLocalizeHandler(cfg *locale.Config) *LocalizeHandler {
	return &LocalizeHandler{cfg: cfg}
}

// localizeRequest is the POST /api/v1/localize request body.
type localizeRequest struct {
	Data   any    `json:"data"`
	Locale string `json:"locale,omitempty"`
}

// Localize handles POST /api/v1/localize. The record comes back with the
// same shape, text and numbers rendered for the requested locale.
func (h *LocalizeHandler) Localize(w http.ResponseWriter, r *http.Request) {
	var req localizeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	loc := req.Locale
	if loc == "" {
		loc = middleware.GetLocale(r)
	}
	if !i18n.IsSupported(loc) {
		WriteBadRequest(w, "Unsupported locale: "+loc, map[string]string{
			"locale": "must be one of: en, my",
		})
		return
	}

	localized := h.cfg.Localize(req.Data, loc)
	WriteSuccess(w, localized, &Meta{Locale: loc})
}

// glossaryEntry is one term pair in the glossary listing.
type glossaryEntry struct {
	Term        string `json:"term"`
	Translation string `json:"translation"`
}

// Glossary handles GET /api/v1/glossary, listing the fixed domain glossary
// in stable term order.
func (h *LocalizeHandler) Glossary(w http.ResponseWriter, _ *http.Request) {
	glossary := h.cfg.Glossary()

	terms := make([]string, 0, len(glossary))
	for term := range glossary {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	entries := make([]glossaryEntry, 0, len(terms))
	for _, term := range terms {
		entries = append(entries, glossaryEntry{Term: term, Translation: glossary[term]})
	}

	WriteSuccess(w, entries, &Meta{Count: int64(len(entries))})
}
