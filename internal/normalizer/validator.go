package normalizer

import (
	"errors"
	"fmt"

	"podrank/internal/models"
)

// ErrNotRecordSequence is returned when a decoded payload is not a list of mappings.
var ErrNotRecordSequence = errors.New("payload is not a sequence of records")

// Validator checks decoded source payloads before they enter normalization.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks that data is a sequence of mapping-like records and
// returns it in the raw record form.
func (v *Validator) Validate(data any) ([]models.RawRecord, error) {
	switch list := data.(type) {
	case []models.RawRecord:
		return list, nil
	case []map[string]any:
		records := make([]models.RawRecord, len(list))
		for i, m := range list {
			records[i] = m
		}

		return records, nil
	case []any:
		records := make([]models.RawRecord, 0, len(list))
		for i, item := range list {
			switch m := item.(type) {
			case map[string]any:
				records = append(records, m)
			case models.RawRecord:
				records = append(records, m)
			default:
				return nil, fmt.Errorf("%w: element %d is %T", ErrNotRecordSequence, i, item)
			}
		}

		return records, nil
	}

	return nil, fmt.Errorf("%w: got %T", ErrNotRecordSequence, data)
}

// Records validates data with a default validator.
func Records(data any) ([]models.RawRecord, error) {
	return NewValidator().Validate(data)
}
