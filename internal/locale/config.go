// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package locale implements the locale-aware payload transformer for the
// AgriBridge API: glossary substitution, Myanmar numeral transliteration,
// and a structure-preserving walk over arbitrary decoded JSON.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

//go:embed locales
var localesFS embed.FS

// LocaleMyanmar and LocaleEnglish are the locale codes the transformer
// understands. English is the source locale: values keep Western digits but
// numbers still get thousands grouping.
const (
	LocaleMyanmar = "my"
	LocaleEnglish = "en"
)

// glossaryFile is the on-disk structure of an embedded locale file.
type glossaryFile struct {
	Language string `json:"language"`
	Digits   string `json:"digits"`
	Terms    []struct {
		Source string `json:"source"`
		Target string `json:"target"`
	} `json:"terms"`
}

// Config holds the immutable localization tables: the glossary, the digit
// map and the URL prefixes whose values must never be rewritten. A Config is
// safe for concurrent use once built.
type Config struct {
	glossary    map[string]string // folded source phrase -> target phrase
	keys        []string          // folded source phrases, longest first
	digits      [10]rune
	cdnPrefixes []string
}

// DefaultCDNPrefixes are the image-store URL prefixes AgriBridge uploads to.
// A string value starting with one of these is an asset reference, not text.
var DefaultCDNPrefixes = []string{
	"https://res.cloudinary.com/",
	"https://cdn.agribridge.com/",
}

// NewConfig builds a Config from an explicit glossary and digit map.
// The digits string must contain exactly ten glyphs, in 0-9 order.
func NewConfig(glossary map[string]string, digits string, cdnPrefixes []string) (*Config, error) {
	glyphs := []rune(digits)
	if len(glyphs) != 10 {
		return nil, fmt.Errorf("digit map must contain exactly 10 glyphs, got %d", len(glyphs))
	}

	c := &Config{
		glossary:    make(map[string]string, len(glossary)),
		cdnPrefixes: cdnPrefixes,
	}
	copy(c.digits[:], glyphs)

	for src, dst := range glossary {
		folded := foldKey(src)
		if folded == "" {
			continue
		}
		c.glossary[folded] = dst
	}

	c.keys = make([]string, 0, len(c.glossary))
	for k := range c.glossary {
		c.keys = append(c.keys, k)
	}
	// Longest key first so multi-word phrases are matched before their
	// single-word substrings.
	sort.Slice(c.keys, func(i, j int) bool {
		if len(c.keys[i]) != len(c.keys[j]) {
			return len(c.keys[i]) > len(c.keys[j])
		}
		return c.keys[i] < c.keys[j]
	})

	return c, nil
}

// NewMyanmarConfig loads the embedded Myanmar glossary and digit map.
func NewMyanmarConfig() (*Config, error) {
	data, err := localesFS.ReadFile("locales/my.json")
	if err != nil {
		return nil, fmt.Errorf("reading embedded locale: %w", err)
	}

	var file glossaryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing embedded locale: %w", err)
	}

	glossary := make(map[string]string, len(file.Terms))
	for _, t := range file.Terms {
		glossary[t.Source] = t.Target
	}

	return NewConfig(glossary, file.Digits, DefaultCDNPrefixes)
}

// AddCDNPrefixes appends extra asset URL prefixes. Call during startup,
// before the Config is shared across goroutines.
func (c *Config) AddCDNPrefixes(prefixes []string) {
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p != "" {
			c.cdnPrefixes = append(c.cdnPrefixes, p)
		}
	}
}

// Glossary returns a copy of the active glossary keyed by folded source phrase.
func (c *Config) Glossary() map[string]string {
	out := make(map[string]string, len(c.glossary))
	for k, v := range c.glossary {
		out[k] = v
	}
	return out
}

// GlossaryLookup returns the target phrase for an exact source phrase, if any.
// Matching is case-insensitive and accent-folded.
func (c *Config) GlossaryLookup(phrase string) (string, bool) {
	v, ok := c.glossary[foldKey(phrase)]
	return v, ok
}

// stripAccents removes combining accent marks, leaving base characters.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// foldKey lowercases a phrase and strips combining accents, so that glossary
// lookup tolerates case and diacritic differences in source text.
func foldKey(s string) string {
	return strings.ToLower(strings.TrimSpace(stripAccents(s)))
}

// foldRune folds a single rune the way foldKey folds whole phrases. A bare
// combining mark folds away to the empty string.
func foldRune(r rune) string {
	return strings.ToLower(stripAccents(string(r)))
}
