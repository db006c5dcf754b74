package core

import "errors"

// Domain validation errors
var (
	// ErrEmptyPrompt indicates a retrieval request with no prompt text.
	ErrEmptyPrompt = errors.New("prompt is required")

	// ErrEmptySQL indicates a structured query with no SQL text.
	ErrEmptySQL = errors.New("sql is required")

	// ErrUnsupportedFile indicates an upload of a file kind the pipeline
	// does not accept.
	ErrUnsupportedFile = errors.New("only PDF and DOCX uploads are supported")

	// ErrFileRequired indicates an upload request without a file part.
	ErrFileRequired = errors.New("file is required")

	// ErrEmptyContent indicates a document with no embeddable text.
	ErrEmptyContent = errors.New("document has no embeddable content")

	// ErrDocumentNotParsed indicates the referenced document is absent or
	// has no parsed payload to re-embed.
	ErrDocumentNotParsed = errors.New("document not found or not parsed")

	// ErrInvalidChunkParams indicates chunk size/overlap values that would
	// make the chunker loop forever or make no progress.
	ErrInvalidChunkParams = errors.New("chunk size must be positive and overlap must be in [0, size)")

	// ErrEmbeddingMismatch indicates the embedding service returned a
	// different number of vectors than texts submitted. Partial chunk sets
	// must not be persisted when this occurs.
	ErrEmbeddingMismatch = errors.New("embedding count does not match chunk count")
)
