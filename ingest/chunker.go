package ingest

import "github.com/atriumdata/docpipe/core"

// Default chunking parameters, applied when a re-embed request leaves
// them unset.
const (
	DefaultChunkSize    = 1200
	DefaultChunkOverlap = 100
)

// ChunkText splits text into overlapping windows of at most size bytes,
// advancing the start offset by size-overlap each step. Empty windows are
// filtered out; empty input yields no chunks.
//
// Returns core.ErrInvalidChunkParams unless size > 0 and 0 <= overlap < size;
// overlap >= size would never advance the offset.
func ChunkText(text string, size, overlap int) ([]string, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, core.ErrInvalidChunkParams
	}

	var chunks []string
	for start := 0; start < len(text); start += size - overlap {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		if chunk := text[start:end]; chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks, nil
}
