// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package locale

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Calendar years render as a bare 4-digit token: 2025, not 2,025. The range
// is deliberately generous around the dates AgriBridge records carry.
const (
	bareYearMin = 1000
	bareYearMax = 2100
)

// TransliterateNumerals rewrites a string for the Myanmar locale: glossary
// phrases are substituted first (longest phrase wins), then every ASCII
// digit is mapped to its Myanmar glyph. Strings shaped like a 24-hex
// database id are returned unchanged, commas ignored.
func (c *Config) TransliterateNumerals(s string) string {
	if IsHexObjectID(strings.ReplaceAll(strings.TrimSpace(s), ",", "")) {
		return s
	}
	return c.MapDigits(c.applyGlossary(s))
}

// TransliterateNumber renders a number with thousands grouping and maps the
// digits to Myanmar glyphs.
func (c *Config) TransliterateNumber(v float64) string {
	return c.MapDigits(FormatNumber(v))
}

// MapDigits substitutes each ASCII digit with the configured glyph.
// Non-digit runes, including already-transliterated glyphs, pass through
// untouched, so applying the map twice is a no-op.
func (c *Config) MapDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return c.digits[r-'0']
		}
		return r
	}, s)
}

// applyGlossary substitutes every glossary phrase occurring in s, longest
// phrase first. Matching is case-insensitive and phrase-based: an occurrence
// bordered by a letter or digit is part of a larger word and is left alone.
func (c *Config) applyGlossary(s string) string {
	for _, key := range c.keys {
		s = replacePhrase(s, key, c.glossary[key])
	}
	return s
}

// replacePhrase replaces each standalone occurrence of phrase (already
// normalized by foldKey) in s with repl. Matching runs over a folded copy
// of s with a byte offset map back into the original, since folding can
// change rune byte lengths (İ shrinks, Ⱥ grows) and folded-text offsets
// are not valid in s directly.
func replacePhrase(s, phrase, repl string) string {
	folded, src := foldWithOffsets(s)
	idx := strings.Index(folded, phrase)
	if idx < 0 {
		return s
	}

	var b strings.Builder
	prev := 0
	for idx >= 0 {
		start, end, aligned := sourceSpan(src, idx, idx+len(phrase))
		if aligned && start >= prev && phraseBoundary(s, start, end) {
			b.WriteString(s[prev:start])
			b.WriteString(repl)
			prev = end
		}
		next := strings.Index(folded[idx+1:], phrase)
		if next < 0 {
			break
		}
		idx += 1 + next
	}
	b.WriteString(s[prev:])
	return b.String()
}

// foldWithOffsets folds s rune by rune with foldRune, recording for every
// folded byte the byte offset of the source rune it came from. A sentinel
// equal to len(s) is appended so the position one past the last folded
// byte is addressable.
func foldWithOffsets(s string) (string, []int) {
	var b strings.Builder
	src := make([]int, 0, len(s)+1)
	for i, r := range s {
		f := foldRune(r)
		b.WriteString(f)
		for j := 0; j < len(f); j++ {
			src = append(src, i)
		}
	}
	src = append(src, len(s))
	return b.String(), src
}

// sourceSpan maps a folded-text match [fs, fe) back to byte offsets in the
// source. A match that starts or ends inside a single source rune's folded
// expansion is rejected.
func sourceSpan(src []int, fs, fe int) (start, end int, aligned bool) {
	if fs > 0 && src[fs] == src[fs-1] {
		return 0, 0, false
	}
	if fe > 0 && fe < len(src)-1 && src[fe] == src[fe-1] {
		return 0, 0, false
	}
	return src[fs], src[fe], true
}

// phraseBoundary reports whether s[start:end] is not embedded in a larger
// word: the runes on both sides must not be letters or digits.
func phraseBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// FormatNumber renders a number with comma thousands grouping. Whole numbers
// in the calendar-year range stay ungrouped; fractional digits are kept as
// produced by the shortest round-trip float rendering.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if !hasFrac && isBareYear(intPart) {
		if neg {
			return "-" + intPart
		}
		return intPart
	}

	grouped := groupThousands(intPart)
	if hasFrac {
		grouped += "." + fracPart
	}
	if neg {
		grouped = "-" + grouped
	}
	return grouped
}

// FormatNumericString applies thousands grouping to a string whose trimmed
// content parses entirely as a number; any other string is returned as-is.
func FormatNumericString(s string) string {
	trimmed := strings.TrimSpace(s)
	if IsHexObjectID(strings.ReplaceAll(trimmed, ",", "")) {
		return s
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return s
	}
	return FormatNumber(v)
}

// isBareYear reports whether a digit string is a 4-digit token in the
// calendar-year range. Keys cannot tell years from amounts, so any whole
// value in [1000, 2100] renders ungrouped: a price of 1500 stays "1500",
// not "1,500".
func isBareYear(digits string) bool {
	if len(digits) != 4 {
		return false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return false
	}
	return n >= bareYearMin && n <= bareYearMax
}

// groupThousands inserts commas every three digits, right to left.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	b.Grow(n + n/3)
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
