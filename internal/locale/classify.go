// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package locale

import (
	"regexp"
	"strings"
	"time"
)

// Field classification decides, from an object key alone, whether the value
// under it may be rewritten. Each rule is a named predicate so it can be
// unit-tested and swapped on its own; the rule set lives here and nowhere
// else.

// FieldClass is the classification of an object key during traversal.
type FieldClass int

const (
	// FieldText is ordinary text, eligible for glossary substitution and
	// numeral conversion.
	FieldText FieldClass = iota
	// FieldIdentifier holds a database or foreign key; never rewritten.
	FieldIdentifier
	// FieldDateTime holds a date or timestamp; never rewritten.
	FieldDateTime
	// FieldEmail holds an email address; never rewritten.
	FieldEmail
)

// hexIDPattern matches a 24-character hexadecimal string, the shape of a
// MongoDB ObjectId. Values of this shape are treated as opaque identifiers
// wherever they appear.
var hexIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// ClassifyKey categorizes an object key. Identifier wins over date/time,
// which wins over email, mirroring the order the checks are applied during
// traversal.
func ClassifyKey(key string) FieldClass {
	switch {
	case IsIdentifierKey(key):
		return FieldIdentifier
	case IsDateTimeKey(key):
		return FieldDateTime
	case IsEmailKey(key):
		return FieldEmail
	default:
		return FieldText
	}
}

// IsIdentifierKey reports whether a key names an identifier field:
// "id", "_id", "__v", or any key ending in "id" (case-insensitive).
func IsIdentifierKey(key string) bool {
	k := strings.ToLower(key)
	return k == "id" || k == "_id" || k == "__v" || strings.HasSuffix(k, "id")
}

// IsDateTimeKey reports whether a key names a date or time field: the key
// contains "date" or "time", or ends in "at" ("createdAt", "updatedAt").
// The literal key "unit" is exempt from the suffix rule; it is a measurement
// field, never a timestamp.
func IsDateTimeKey(key string) bool {
	k := strings.ToLower(key)
	if k == "unit" {
		return false
	}
	return strings.Contains(k, "date") || strings.Contains(k, "time") || strings.HasSuffix(k, "at")
}

// IsEmailKey reports whether a key names an email field.
func IsEmailKey(key string) bool {
	return strings.Contains(strings.ToLower(key), "email")
}

// IsHexObjectID reports whether a string is exactly a 24-character hex
// identifier.
func IsHexObjectID(s string) bool {
	return hexIDPattern.MatchString(s)
}

// IsOpaqueValue reports whether a value must pass through the transformer
// verbatim: times, and Mongo-style {"$oid": ...} wrapper objects as they
// appear in exported payloads.
func IsOpaqueValue(v any) bool {
	switch val := v.(type) {
	case time.Time, *time.Time:
		return true
	case map[string]any:
		_, ok := val["$oid"]
		return ok
	default:
		return false
	}
}

// isAssetLiteral reports whether a trimmed string value is an asset
// reference (CDN upload URL or "#"-prefixed literal) that must not be
// rewritten regardless of its key.
func (c *Config) isAssetLiteral(s string) bool {
	if strings.HasPrefix(s, "#") {
		return true
	}
	for _, prefix := range c.cdnPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
