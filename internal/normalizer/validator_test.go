package normalizer

import (
	"errors"
	"testing"

	"podrank/internal/models"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator()
	if v == nil {
		t.Fatal("NewValidator returned nil")
	}
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		data    any
		wantLen int
	}{
		{name: "Raw records", data: []models.RawRecord{{"title": "a"}}, wantLen: 1},
		{name: "Maps", data: []map[string]any{{"title": "a"}, {}}, wantLen: 2},
		{name: "Decoded JSON", data: []any{map[string]any{"title": "a"}}, wantLen: 1},
		{name: "Empty list", data: []any{}, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := v.Validate(tt.data)
			if err != nil {
				t.Fatalf("Validate returned unexpected error: %v", err)
			}

			if len(records) != tt.wantLen {
				t.Errorf("len(records) = %d, want %d", len(records), tt.wantLen)
			}
		})
	}
}

func TestValidator_Validate_Errors(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		data any
	}{
		{name: "Nil input", data: nil},
		{name: "Object", data: map[string]any{"items": []any{}}},
		{name: "String", data: "not a list"},
		{name: "Mixed elements", data: []any{map[string]any{}, "oops"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(tt.data)
			if !errors.Is(err, ErrNotRecordSequence) {
				t.Errorf("Validate error = %v, want ErrNotRecordSequence", err)
			}
		})
	}
}
