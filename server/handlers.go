package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/atriumdata/docpipe/ingest"
	"github.com/gin-gonic/gin"
)

// handleUploadDocument accepts a multipart document upload and streams
// ingestion progress back as newline-delimited JSON. The response status
// is fixed at 200 once streaming begins; failures after that point arrive
// as terminal error events on the stream. Ingestion runs on the worker
// pool detached from the request context, so a dropped connection does
// not abort a pipeline already in flight.
func (s *Server) handleUploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		handleError(c, NewAppError(http.StatusBadRequest, "file is required", err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		handleError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handleError(c, err)
		return
	}

	upload := ingest.Upload{
		Filename:  fileHeader.Filename,
		MediaType: fileHeader.Header.Get("Content-Type"),
		Data:      data,
	}
	if err := ingest.ValidateUpload(upload); err != nil {
		handleError(c, err)
		return
	}

	events := make(chan ingest.ProgressEvent, 8)
	runCtx := context.WithoutCancel(c.Request.Context())
	if err := s.pool.Submit(func() {
		s.orchestrator.Run(runCtx, upload, events)
	}); err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Type", "application/x-ndjson")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)

	encoder := json.NewEncoder(c.Writer)
	for event := range events {
		if err := encoder.Encode(event); err != nil {
			s.logger.Warn("client went away mid-stream", "err", err)
			for range events {
			}
			return
		}
		c.Writer.Flush()
	}
}

// handleGetDocument returns the current document record, including status
// and the parsed payload once ingestion completes.
func (s *Server) handleGetDocument(c *gin.Context) {
	doc, err := s.documents.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// handleReembedDocument splits a parsed document into overlapping chunks,
// embeds them and replaces the stored chunk set. Body parameters are
// optional; chunkSize defaults to 1200 bytes and overlap to 100.
func (s *Server) handleReembedDocument(c *gin.Context) {
	var req struct {
		ChunkSize int  `json:"chunkSize"`
		Overlap   *int `json:"overlap"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			handleError(c, NewAppError(http.StatusBadRequest, "invalid request body", err))
			return
		}
	}

	chunkSize := req.ChunkSize
	if chunkSize == 0 {
		chunkSize = ingest.DefaultChunkSize
	}
	overlap := ingest.DefaultChunkOverlap
	if req.Overlap != nil {
		overlap = *req.Overlap
	}

	documentID := c.Param("id")
	count, err := s.orchestrator.Reembed(c.Request.Context(), documentID, chunkSize, overlap)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documentId":     documentID,
		"embeddedChunks": count,
	})
}

// handleVectorQuery embeds the prompt and returns the best-matching
// stored chunks.
func (s *Server) handleVectorQuery(c *gin.Context) {
	var req struct {
		Prompt    string  `json:"prompt"`
		Limit     int     `json:"limit"`
		Threshold float64 `json:"threshold"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, NewAppError(http.StatusBadRequest, "invalid request body", err))
		return
	}

	result, err := s.searcher.Answer(c.Request.Context(), req.Prompt, req.Limit, req.Threshold)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleSQLQuery forwards literal SQL and bound parameters to the
// relational service and returns the rows verbatim.
func (s *Server) handleSQLQuery(c *gin.Context) {
	var req struct {
		SQL    string         `json:"sql"`
		Params map[string]any `json:"params"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, NewAppError(http.StatusBadRequest, "invalid request body", err))
		return
	}

	rows, err := s.searcher.ExecuteSQL(c.Request.Context(), req.SQL, req.Params)
	if err != nil {
		handleError(c, err)
		return
	}
	if rows == nil {
		rows = []map[string]any{}
	}

	c.JSON(http.StatusOK, gin.H{
		"sql":  req.SQL,
		"rows": rows,
	})
}

// handleParse submits an already-stored file URL directly to the parsing
// service, bypassing ingestion. Useful for inspecting pipeline output.
func (s *Server) handleParse(c *gin.Context) {
	var req struct {
		FileURL  string `json:"fileUrl"`
		Pipeline string `json:"pipeline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, NewAppError(http.StatusBadRequest, "invalid request body", err))
		return
	}
	if strings.TrimSpace(req.FileURL) == "" {
		handleError(c, NewAppError(http.StatusBadRequest, "fileUrl is required", nil))
		return
	}
	pipeline := req.Pipeline
	if pipeline == "" {
		pipeline = ingest.PipelineGeneric
	}

	parsed, err := s.parser.ParseURL(c.Request.Context(), req.FileURL, pipeline)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, parsed)
}

// handleError helper
func handleError(c *gin.Context, err error) {
	appErr := MapError(err)
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
