package locale

import "testing"

func TestIsIdentifierKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"id", true},
		{"_id", true},
		{"__v", true},
		{"ID", true},
		{"userId", true},
		{"farmerID", true},
		{"paid", true}, // ends in "id"; known heuristic limitation
		{"name", false},
		{"title", false},
		{"identity_card", false},
	}

	for _, tt := range tests {
		if got := IsIdentifierKey(tt.key); got != tt.want {
			t.Errorf("IsIdentifierKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestIsDateTimeKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"date", true},
		{"startDate", true},
		{"updateDate", true},
		{"time", true},
		{"deliveryTime", true},
		{"createdAt", true},
		{"updated_at", true},
		{"format", true}, // ends in "at"; known heuristic limitation
		{"unit", false},  // explicitly exempt
		{"Unit", false},
		{"name", false},
	}

	for _, tt := range tests {
		if got := IsDateTimeKey(tt.key); got != tt.want {
			t.Errorf("IsDateTimeKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestIsEmailKey(t *testing.T) {
	if !IsEmailKey("userEmail") {
		t.Error("expected userEmail to classify as email")
	}
	if !IsEmailKey("email_address") {
		t.Error("expected email_address to classify as email")
	}
	if IsEmailKey("mailbox") {
		t.Error("mailbox should not classify as email")
	}
}

func TestClassifyKeyPrecedence(t *testing.T) {
	// Identifier detection runs before date/time detection.
	if got := ClassifyKey("updatedId"); got != FieldIdentifier {
		t.Errorf("ClassifyKey(updatedId) = %v, want FieldIdentifier", got)
	}
	if got := ClassifyKey("createdAt"); got != FieldDateTime {
		t.Errorf("ClassifyKey(createdAt) = %v, want FieldDateTime", got)
	}
	if got := ClassifyKey("contactEmail"); got != FieldEmail {
		t.Errorf("ClassifyKey(contactEmail) = %v, want FieldEmail", got)
	}
	if got := ClassifyKey("description"); got != FieldText {
		t.Errorf("ClassifyKey(description) = %v, want FieldText", got)
	}
}

func TestIsHexObjectID(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"507f1f77bcf86cd799439011", true},
		{"507F1F77BCF86CD799439011", true},
		{"507f1f77bcf86cd79943901", false},   // 23 chars
		{"507f1f77bcf86cd7994390112", false}, // 25 chars
		{"507f1f77bcf86cd79943901g", false},  // non-hex
		{"", false},
	}

	for _, tt := range tests {
		if got := IsHexObjectID(tt.s); got != tt.want {
			t.Errorf("IsHexObjectID(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestIsOpaqueValue(t *testing.T) {
	if !IsOpaqueValue(map[string]any{"$oid": "507f1f77bcf86cd799439011"}) {
		t.Error("expected $oid wrapper to be opaque")
	}
	if IsOpaqueValue(map[string]any{"name": "Wheat"}) {
		t.Error("plain object should not be opaque")
	}
}
