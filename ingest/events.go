package ingest

// Stage identifies a point in the ingestion state machine.
type Stage string

const (
	StageQueued   Stage = "queued"
	StageParsing  Stage = "parsing"
	StageIngested Stage = "ingested"
	StageError    Stage = "error"
)

// ProgressEvent reports one ingestion state transition. Events are
// serialized as newline-delimited JSON on the streaming upload response;
// "ingested" and "error" are terminal for a given request.
type ProgressEvent struct {
	Stage       Stage  `json:"stage"`
	Message     string `json:"message"`
	DocumentID  string `json:"documentId,omitempty"`
	ExtractedID string `json:"extractedId,omitempty"`
}
