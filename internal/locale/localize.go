// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package locale

import "strings"

// Kind is the coarse type of a value encountered during traversal. Raw
// decoded JSON is classified into exactly one Kind before the walker
// dispatches on it, which keeps the recursion exhaustive.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
	KindOpaque
)

// KindOf classifies a decoded JSON value. Anything outside the JSON value
// domain (times, ObjectId wrappers, unknown structs) is opaque and passes
// through the transformer verbatim.
func KindOf(v any) Kind {
	if IsOpaqueValue(v) {
		return KindOpaque
	}
	switch v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case bool:
		return KindBool
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindOpaque
	}
}

// Localize recursively rewrites human-facing text in a decoded JSON value
// for the given locale. The result always has the same shape as the input:
// same keys, same array order, same nesting. Only leaf strings and numbers
// change, and only where field classification permits. The input is never
// mutated and the function never fails.
func (c *Config) Localize(v any, loc string) any {
	switch KindOf(v) {
	case KindNull, KindBool, KindOpaque:
		return v
	case KindString:
		return c.localizeString(v.(string), loc)
	case KindNumber:
		return c.localizeNumber(toFloat(v), loc)
	case KindArray:
		in := v.([]any)
		out := make([]any, len(in))
		for i, elem := range in {
			out[i] = c.Localize(elem, loc)
		}
		return out
	case KindObject:
		return c.localizeObject(v.(map[string]any), loc)
	default:
		return v
	}
}

// localizeObject shallow-copies an object and rewrites eligible fields.
func (c *Config) localizeObject(in map[string]any, loc string) map[string]any {
	out := make(map[string]any, len(in))
	for key, val := range in {
		switch KindOf(val) {
		case KindArray, KindObject:
			out[key] = c.Localize(val, loc)
			continue
		}

		if ClassifyKey(key) != FieldText {
			out[key] = val
			continue
		}

		switch KindOf(val) {
		case KindString:
			trimmed := strings.TrimSpace(val.(string))
			if c.isAssetLiteral(trimmed) {
				out[key] = val
				continue
			}
			out[key] = c.localizeString(trimmed, loc)
		case KindNumber:
			out[key] = c.localizeNumber(toFloat(val), loc)
		default:
			out[key] = val
		}
	}
	return out
}

// localizeString applies the per-locale string rule: Myanmar gets full
// transliteration, the source locale only groups strings that are entirely
// numeric.
func (c *Config) localizeString(s, loc string) string {
	if loc == LocaleMyanmar {
		return c.TransliterateNumerals(s)
	}
	return FormatNumericString(s)
}

// localizeNumber renders a number for the locale. Numbers always become
// strings on output so grouping and glyphs survive serialization.
func (c *Config) localizeNumber(v float64, loc string) string {
	if loc == LocaleMyanmar {
		return c.TransliterateNumber(v)
	}
	return FormatNumber(v)
}

// toFloat widens any numeric JSON representation to float64.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return 0
	}
}
