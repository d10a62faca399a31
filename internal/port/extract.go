package port

import (
	"reportforge/internal/domain"
)

// RecordExtractor defines the contract for turning one document into an
// extraction record.
type RecordExtractor interface {
	ExtractAll(path string) (domain.ExtractionRecord, error)
}

// RecordWriter defines the contract for persisting batch results as an
// output file.
type RecordWriter interface {
	WriteResults(results []domain.FileResult) error
}
