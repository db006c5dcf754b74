package core

import (
	"time"

	"github.com/atriumdata/docpipe/doctree"
)

// DocumentStatus tracks a document through the ingestion state machine.
// The ingestion orchestrator is the only writer of status transitions.
type DocumentStatus string

const (
	// StatusQueued means the document record exists and the binary is
	// being uploaded to object storage.
	StatusQueued DocumentStatus = "queued"
	// StatusParsing means the binary has been handed to the parsing service.
	StatusParsing DocumentStatus = "parsing"
	// StatusIngested means parsing, cleansing and embedding completed.
	StatusIngested DocumentStatus = "ingested"
	// StatusFailed means some step after document creation errored.
	StatusFailed DocumentStatus = "failed"
)

// Document is an underwriting document moving through the pipeline.
type Document struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	SourceType  string         `json:"source_type"`
	Pipeline    string         `json:"pipeline"`
	StoragePath string         `json:"storage_path,omitempty"`
	Status      DocumentStatus `json:"status"`
	ParsedJSON  *doctree.Value `json:"parsed_json,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Chunk is one bounded slice of a document's flattened text together with
// its embedding vector. ChunkIndex is 0-based and contiguous within a
// document; re-embedding replaces the whole set, never appends.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	ChunkIndex int       `json:"chunk_index"`
	Content    string    `json:"content"`
	Embedding  []float32 `json:"embedding,omitempty"`
}

// ExtractedRecord holds the cleansed full-document artifact produced once
// per successful parse: the cleansed tree, its flattened text, and a single
// whole-document embedding used for document-level semantic filtering.
type ExtractedRecord struct {
	ID          string        `json:"id"`
	DocumentID  string        `json:"document_id"`
	RawJSON     doctree.Value `json:"raw_json"`
	TextContent string        `json:"text_content"`
	Embedding   []float32     `json:"embedding,omitempty"`
}

// VectorMatch is one ranked result of a nearest-neighbor search over
// stored chunk vectors.
type VectorMatch struct {
	ID         string  `json:"id"`
	DocumentID string  `json:"document_id"`
	ChunkIndex int     `json:"chunk_index"`
	Chunk      string  `json:"chunk"`
	Score      float64 `json:"score"`
}

// QueryResult is the transient answer payload returned by the retrieval
// orchestrator. It is never persisted.
type QueryResult struct {
	Prompt        string           `json:"prompt"`
	VectorMatches []VectorMatch    `json:"vectorMatches"`
	Rows          []map[string]any `json:"rows,omitempty"`
	Message       string           `json:"message,omitempty"`
}
