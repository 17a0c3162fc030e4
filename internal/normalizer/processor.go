// Package normalizer provides functionality for normalizing fetched records into the canonical podcast shape.
package normalizer

import "podrank/internal/models"

// Processor handles batch normalization.
type Processor struct {
	transformer *Transformer
}

// NewProcessor creates a new processor instance for the named source.
func NewProcessor(defaultSource string) *Processor {
	return &Processor{
		transformer: NewTransformer(defaultSource),
	}
}

// Process normalizes every record, keeping source order. The returned batch
// is never nil so an empty fetch still serializes as an empty list.
func (p *Processor) Process(records []models.RawRecord) models.RankedBatch {
	batch := make(models.RankedBatch, 0, len(records))
	for _, raw := range records {
		batch = append(batch, p.transformer.Transform(raw))
	}

	return batch
}
