// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translate dispatches record text to an external translation model
// and memoizes the results in a persistent, content-hash-keyed cache.
package translate

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Provider is the external translation model collaborator. Implementations
// take a fixed system instruction plus a single source phrase and return the
// translated phrase as plain text.
type Provider interface {
	ID() string
	Translate(ctx context.Context, system, text string) (string, error)
}

// buildSystemPrompt creates the fixed system instruction: the target
// language expectation plus the glossary the model must honor. Glossary
// entries are listed in stable order so the prompt, and any provider-side
// prompt caching, stays deterministic.
func buildSystemPrompt(glossary map[string]string) string {
	var sb strings.Builder
	sb.WriteString(`You are a translator for an agricultural marketplace in Myanmar.
Translate the user's text from English to Burmese (Myanmar language).

Rules:
- Respond ONLY with the translated text, no explanations, no quotes, no markdown.
- Keep numbers, units and proper nouns accurate.
- Use the following glossary verbatim wherever a term appears:
`)

	keys := make([]string, 0, len(glossary))
	for k := range glossary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %s = %s\n", k, glossary[k]))
	}

	return sb.String()
}
