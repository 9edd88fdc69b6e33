package locale

import (
	"reflect"
	"testing"
	"time"
)

func TestLocalizeScalars(t *testing.T) {
	cfg := myanmarConfig(t)

	if got := cfg.Localize(nil, LocaleMyanmar); got != nil {
		t.Errorf("nil must pass through, got %v", got)
	}
	if got := cfg.Localize(true, LocaleMyanmar); got != true {
		t.Errorf("bool must pass through, got %v", got)
	}
	if got := cfg.Localize("125", LocaleMyanmar); got != "၁၂၅" {
		t.Errorf("Localize(125, my) = %v, want ၁၂၅", got)
	}
	if got := cfg.Localize("12345", LocaleEnglish); got != "12,345" {
		t.Errorf("Localize(12345, en) = %v, want 12,345", got)
	}
	if got := cfg.Localize("hello", LocaleEnglish); got != "hello" {
		t.Errorf("non-numeric string in source locale must pass through, got %v", got)
	}
	if got := cfg.Localize(float64(12345), LocaleMyanmar); got != "၁၂,၃၄၅" {
		t.Errorf("Localize(12345, my) = %v, want ၁၂,၃၄၅", got)
	}
}

func TestLocalizeRecordExample(t *testing.T) {
	cfg := myanmarConfig(t)

	in := map[string]any{
		"name":  "Wheat",
		"price": float64(12500),
		"unit":  "Bag",
		"_id":   "507f1f77bcf86cd799439011",
	}

	got, ok := cfg.Localize(in, LocaleMyanmar).(map[string]any)
	if !ok {
		t.Fatalf("expected map result, got %T", cfg.Localize(in, LocaleMyanmar))
	}

	if got["name"] != "ဂျုံ" {
		t.Errorf("name = %v, want glossary term ဂျုံ", got["name"])
	}
	if got["price"] != "၁၂,၅၀၀" {
		t.Errorf("price = %v, want ၁၂,၅၀၀", got["price"])
	}
	if got["unit"] != "အိတ်" {
		t.Errorf("unit = %v, want glossary term အိတ်", got["unit"])
	}
	if got["_id"] != "507f1f77bcf86cd799439011" {
		t.Errorf("_id = %v, must stay untouched", got["_id"])
	}
}

func TestLocalizeStructurePreservation(t *testing.T) {
	cfg := myanmarConfig(t)

	in := map[string]any{
		"items": []any{
			map[string]any{"qty": float64(3), "note": "first"},
			map[string]any{"qty": float64(7), "note": "second"},
		},
		"total":  float64(10),
		"active": true,
		"empty":  nil,
	}

	out := cfg.Localize(in, LocaleMyanmar).(map[string]any)

	if len(out) != len(in) {
		t.Fatalf("key count changed: %d != %d", len(out), len(in))
	}
	items := out["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("array length changed: %d", len(items))
	}
	first := items[0].(map[string]any)
	if first["note"] != "first" {
		t.Errorf("array order not preserved: %v", first["note"])
	}
	if out["active"] != true || out["empty"] != nil {
		t.Error("bool/nil leaves must pass through unchanged")
	}
}

func TestLocalizeDoesNotMutateInput(t *testing.T) {
	cfg := myanmarConfig(t)

	in := map[string]any{
		"price": float64(12500),
		"tags":  []any{"Rice", "Paddy"},
	}
	snapshot := map[string]any{
		"price": float64(12500),
		"tags":  []any{"Rice", "Paddy"},
	}

	_ = cfg.Localize(in, LocaleMyanmar)

	if !reflect.DeepEqual(in, snapshot) {
		t.Errorf("input mutated: %v", in)
	}
}

func TestLocalizeSkipsClassifiedFields(t *testing.T) {
	cfg := myanmarConfig(t)

	in := map[string]any{
		"userEmail": "a@b.com",
		"createdAt": "2025-03-01T10:00:00Z",
		"orderId":   float64(42),
		"__v":       float64(0),
	}

	out := cfg.Localize(in, LocaleMyanmar).(map[string]any)

	if out["userEmail"] != "a@b.com" {
		t.Errorf("email rewritten: %v", out["userEmail"])
	}
	if out["createdAt"] != "2025-03-01T10:00:00Z" {
		t.Errorf("timestamp rewritten: %v", out["createdAt"])
	}
	if out["orderId"] != float64(42) {
		t.Errorf("identifier rewritten: %v", out["orderId"])
	}
	if out["__v"] != float64(0) {
		t.Errorf("version key rewritten: %v", out["__v"])
	}
}

func TestLocalizeSkipsAssetLiterals(t *testing.T) {
	cfg := myanmarConfig(t)

	in := map[string]any{
		"photo": "https://res.cloudinary.com/agribridge/image/upload/v1700000000/crop.jpg",
		"color": "#22c55e",
	}

	out := cfg.Localize(in, LocaleMyanmar).(map[string]any)

	if out["photo"] != in["photo"] {
		t.Errorf("CDN URL rewritten: %v", out["photo"])
	}
	if out["color"] != in["color"] {
		t.Errorf("hash literal rewritten: %v", out["color"])
	}
}

func TestLocalizeOpaqueValues(t *testing.T) {
	cfg := myanmarConfig(t)

	oid := map[string]any{"$oid": "507f1f77bcf86cd799439011"}
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	in := map[string]any{
		"ref":     oid,
		"stamped": now,
	}

	out := cfg.Localize(in, LocaleMyanmar).(map[string]any)

	if !reflect.DeepEqual(out["ref"], oid) {
		t.Errorf("$oid wrapper rewritten: %v", out["ref"])
	}
	if out["stamped"] != now {
		t.Errorf("time.Time rewritten: %v", out["stamped"])
	}
}

func TestLocalizeHexStringUnderTextKey(t *testing.T) {
	cfg := myanmarConfig(t)

	// A 24-hex value is opaque even when its key looks like ordinary text.
	in := map[string]any{"reference": "507f1f77bcf86cd799439011"}
	out := cfg.Localize(in, LocaleMyanmar).(map[string]any)

	if out["reference"] != "507f1f77bcf86cd799439011" {
		t.Errorf("hex id under text key rewritten: %v", out["reference"])
	}
}

func TestLocalizeNestedContent(t *testing.T) {
	cfg := myanmarConfig(t)

	in := map[string]any{
		"market": map[string]any{
			"name":   "Mandalay Market",
			"prices": []any{float64(12500), float64(2025)},
		},
	}

	out := cfg.Localize(in, LocaleMyanmar).(map[string]any)
	market := out["market"].(map[string]any)
	prices := market["prices"].([]any)

	if prices[0] != "၁၂,၅၀၀" {
		t.Errorf("nested price = %v, want ၁၂,၅၀၀", prices[0])
	}
	if prices[1] != "၂၀၂၅" {
		t.Errorf("bare year grouped in nested array: %v", prices[1])
	}
}
