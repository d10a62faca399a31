package domain

import "errors"

var (
	// ErrDocumentLoad wraps any failure to open or parse a source document.
	// It is the only error the extraction layer ever propagates; individual
	// field extractors degrade to empty values instead of failing.
	ErrDocumentLoad = errors.New("document could not be loaded")

	// ErrUnsupportedFormat is returned for inputs that are not .docx files.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrNoDocuments is returned when a batch input yields nothing to process.
	ErrNoDocuments = errors.New("no documents found")
)
