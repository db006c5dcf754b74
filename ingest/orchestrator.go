package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/atriumdata/docpipe/ai"
	"github.com/atriumdata/docpipe/core"
	"github.com/atriumdata/docpipe/doctree"
	"github.com/atriumdata/docpipe/parse"
	"github.com/atriumdata/docpipe/storage"
	"github.com/google/uuid"
)

// Parser is the slice of the parsing client the orchestrator needs.
type Parser interface {
	// ParseURL submits a stored binary by URL with the pipeline to apply.
	ParseURL(ctx context.Context, fileURL, pipeline string) (*parse.Response, error)
}

// Upload is an incoming document binary.
type Upload struct {
	Filename  string
	MediaType string
	Data      []byte
}

// Orchestrator owns the ingestion state machine. It is the only writer of
// document status transitions. Concurrent ingestions of the same document
// are not coordinated: last writer wins on status and chunk replacement.
type Orchestrator struct {
	documents    storage.DocumentStore
	extracted    storage.ExtractedStore
	chunks       storage.ChunkStore
	objects      storage.ObjectStore
	parser       Parser
	generator    *ai.Generator
	signedURLTTL time.Duration
	logger       *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// WithSignedURLTTL sets how long the parsing service's read URL stays
// valid. Default is 30 minutes.
func WithSignedURLTTL(ttl time.Duration) Option {
	return func(o *Orchestrator) {
		if ttl > 0 {
			o.signedURLTTL = ttl
		}
	}
}

// NewOrchestrator creates an ingestion orchestrator.
func NewOrchestrator(
	documents storage.DocumentStore,
	extracted storage.ExtractedStore,
	chunks storage.ChunkStore,
	objects storage.ObjectStore,
	parser Parser,
	generator *ai.Generator,
	opts ...Option,
) (*Orchestrator, error) {
	if documents == nil {
		return nil, ErrDocumentStoreRequired
	}
	if extracted == nil {
		return nil, ErrExtractedStoreRequired
	}
	if chunks == nil {
		return nil, ErrChunkStoreRequired
	}
	if objects == nil {
		return nil, ErrObjectStoreRequired
	}
	if parser == nil {
		return nil, ErrParserRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	o := &Orchestrator{
		documents:    documents,
		extracted:    extracted,
		chunks:       chunks,
		objects:      objects,
		parser:       parser,
		generator:    generator,
		signedURLTTL: 30 * time.Minute,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With("component", "ingest-orchestrator")
	return o, nil
}

// ValidateUpload checks that an upload can enter the pipeline: a filename
// must be present and the file kind must be one the pipeline accepts.
// Validation failures mutate no state.
func ValidateUpload(upload Upload) error {
	if upload.Filename == "" {
		return core.ErrFileRequired
	}
	lower := strings.ToLower(upload.Filename)
	if !strings.HasSuffix(lower, ".pdf") && !strings.HasSuffix(lower, ".docx") {
		return core.ErrUnsupportedFile
	}
	return nil
}

// Run executes the streaming ingestion sequence, sending one progress
// event per state transition on events. The channel is always closed
// before Run returns, on success and failure alike.
//
// Any error after document creation transitions the document to failed
// and emits a terminal error event carrying the document ID; failures
// before a document exists emit an error event without one. Nothing is
// retried; the caller resubmits.
func (o *Orchestrator) Run(ctx context.Context, upload Upload, events chan<- ProgressEvent) {
	defer close(events)

	documentID, err := o.runPipeline(ctx, upload, events)
	if err == nil {
		return
	}

	o.logger.Error("ingestion pipeline failed", "documentId", documentID, "err", err)
	if documentID != "" {
		failed := core.StatusFailed
		if updateErr := o.documents.UpdateDocument(ctx, documentID, storage.DocumentUpdate{Status: &failed}); updateErr != nil {
			o.logger.Error("failed to mark document as failed", "documentId", documentID, "err", updateErr)
		}
	}
	events <- ProgressEvent{Stage: StageError, Message: err.Error(), DocumentID: documentID}
}

// runPipeline walks the success path, returning the document ID (empty if
// none was created) and the first error encountered.
func (o *Orchestrator) runPipeline(ctx context.Context, upload Upload, events chan<- ProgressEvent) (string, error) {
	if err := ValidateUpload(upload); err != nil {
		return "", err
	}

	sourceType := upload.MediaType
	if sourceType == "" {
		sourceType = "application/octet-stream"
	}
	pipeline := SelectPipeline(upload.MediaType, upload.Filename)

	doc, err := o.documents.CreateDocument(ctx, &core.Document{
		Title:      upload.Filename,
		SourceType: sourceType,
		Pipeline:   pipeline,
		Status:     core.StatusQueued,
	})
	if err != nil {
		return "", err
	}

	events <- ProgressEvent{
		Stage:      StageQueued,
		Message:    "Uploading document to object storage",
		DocumentID: doc.ID,
	}

	storagePath := doc.ID + "/" + uuid.NewString() + "-" + sanitizeFilename(upload.Filename)
	if err := o.objects.Upload(ctx, storagePath, sourceType, upload.Data); err != nil {
		return doc.ID, err
	}

	fileURL, err := o.objects.SignedURL(ctx, storagePath, o.signedURLTTL)
	if err != nil {
		return doc.ID, err
	}

	parsing := core.StatusParsing
	if err := o.documents.UpdateDocument(ctx, doc.ID, storage.DocumentUpdate{
		Status:      &parsing,
		StoragePath: &storagePath,
	}); err != nil {
		return doc.ID, err
	}

	events <- ProgressEvent{
		Stage:      StageParsing,
		Message:    "Parsing document with pipeline " + pipeline,
		DocumentID: doc.ID,
	}

	parsed, err := o.parser.ParseURL(ctx, fileURL, pipeline)
	if err != nil {
		return doc.ID, err
	}

	cleansed := doctree.Cleanse(parsed.Document)
	text := doctree.Flatten(cleansed)

	// A blank document yields no embedding; that is tolerated here.
	embedding, err := o.generator.EmbedDocument(ctx, text)
	if err != nil {
		return doc.ID, err
	}

	record, err := o.extracted.InsertExtractedRecord(ctx, &core.ExtractedRecord{
		DocumentID:  doc.ID,
		RawJSON:     cleansed,
		TextContent: text,
		Embedding:   embedding,
	})
	if err != nil {
		return doc.ID, err
	}

	ingested := core.StatusIngested
	if err := o.documents.UpdateDocument(ctx, doc.ID, storage.DocumentUpdate{
		Status:     &ingested,
		ParsedJSON: &cleansed,
	}); err != nil {
		return doc.ID, err
	}

	events <- ProgressEvent{
		Stage:       StageIngested,
		Message:     fmt.Sprintf("Document %s parsed and stored", doc.ID),
		DocumentID:  doc.ID,
		ExtractedID: record.ID,
	}

	o.logger.Info("document ingested", "documentId", doc.ID, "extractedId", record.ID, "pipeline", pipeline)
	return doc.ID, nil
}

// Reembed flattens the document's parsed payload, splits it into
// overlapping chunks, embeds them in one batch, and replaces the
// document's stored chunk set. The operation is idempotent on content:
// repeating it with the same document and parameters yields the same
// chunk count and text.
//
// Returns the number of chunks persisted.
func (o *Orchestrator) Reembed(ctx context.Context, documentID string, chunkSize, overlap int) (int, error) {
	if chunkSize <= 0 || overlap < 0 || overlap >= chunkSize {
		return 0, core.ErrInvalidChunkParams
	}

	doc, err := o.documents.GetDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, core.ErrDocumentNotParsed
		}
		return 0, err
	}
	if doc.ParsedJSON == nil {
		return 0, core.ErrDocumentNotParsed
	}

	text := doctree.Flatten(*doc.ParsedJSON)
	chunks, err := ChunkText(text, chunkSize, overlap)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, core.ErrEmptyContent
	}

	vectors, err := o.generator.EmbedChunks(ctx, chunks)
	if err != nil {
		// Includes count mismatches: nothing is deleted or persisted.
		return 0, err
	}

	rows := make([]*core.Chunk, len(chunks))
	for i, content := range chunks {
		rows[i] = &core.Chunk{
			DocumentID: documentID,
			ChunkIndex: i,
			Content:    content,
			Embedding:  vectors[i],
		}
	}

	if err := o.chunks.DeleteChunks(ctx, documentID); err != nil {
		return 0, err
	}
	if err := o.chunks.InsertChunks(ctx, rows); err != nil {
		return 0, err
	}

	o.logger.Info("document reembedded", "documentId", documentID, "chunks", len(rows),
		"chunkSize", chunkSize, "overlap", overlap)
	return len(rows), nil
}

var (
	disallowedFilenameChars = regexp.MustCompile(`[^a-z0-9.\-]+`)
	repeatedDashes          = regexp.MustCompile(`-+`)
)

// sanitizeFilename lowercases the name, collapses runs of disallowed
// characters to a single dash, and trims dashes from the edges.
func sanitizeFilename(name string) string {
	sanitized := strings.ToLower(name)
	sanitized = disallowedFilenameChars.ReplaceAllString(sanitized, "-")
	sanitized = repeatedDashes.ReplaceAllString(sanitized, "-")
	return strings.Trim(sanitized, "-")
}
