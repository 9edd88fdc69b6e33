// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/agribridge/agribridge-go/internal/translate"
)

// TranslateHandler serves the model-backed translation endpoint.
type TranslateHandler struct {
	svc *translate.Service
}

// NewTranslateHandler creates a translation handler.
func NewTranslateHandler(svc *translate.Service) *TranslateHandler {
	return &TranslateHandler{svc: svc}
}

// translateRequest is the POST /api/v1/translate request body. Enabled
// defaults to true; a caller can pass false to run the endpoint as a no-op
// passthrough, for example behind a per-tenant feature toggle.
type translateRequest struct {
	Data      any    `json:"data"`
	ContentID string `json:"content_id,omitempty"`
	Enabled   *bool  `json:"enabled,omitempty"`
}

// Translate handles POST /api/v1/translate. Text fields are translated
// through the configured model, with cached results reused whenever the
// source text is unchanged. Fields whose translation fails keep their
// source text.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	translated := h.svc.TranslateRecord(r.Context(), req.Data, enabled, req.ContentID)
	WriteSuccess(w, translated, &Meta{Translated: enabled})
}
