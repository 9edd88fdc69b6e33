// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n resolves the display locale for a request from explicit
// parameters or the Accept-Language header.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// SupportedLanguages lists the locales the API can render.
var SupportedLanguages = []string{"en", "my"}

// DefaultLanguage is used when no supported language matches.
const DefaultLanguage = "en"

var (
	supportedTags []language.Tag
	matcher       language.Matcher
)

func init() {
	supportedTags = make([]language.Tag, 0, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		supportedTags = append(supportedTags, language.MustParse(lang))
	}
	matcher = language.NewMatcher(supportedTags)
}

// MatchLanguage finds the best supported language for an Accept-Language
// header or bare language code. Returns DefaultLanguage when nothing
// matches.
func MatchLanguage(acceptLang string) string {
	if acceptLang == "" {
		return DefaultLanguage
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return DefaultLanguage
		}
		tags = []language.Tag{tag}
	}

	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(SupportedLanguages) {
		return DefaultLanguage
	}
	return SupportedLanguages[idx]
}

// IsSupported checks whether a language code is supported.
func IsSupported(lang string) bool {
	lang = strings.ToLower(lang)
	for _, supported := range SupportedLanguages {
		if supported == lang {
			return true
		}
	}
	return false
}
