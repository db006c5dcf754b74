package server

import (
	"log/slog"
	"net/http"

	"github.com/atriumdata/docpipe/ingest"
	"github.com/atriumdata/docpipe/search"
	"github.com/atriumdata/docpipe/storage"
	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
)

const defaultPoolSize = 8

// Server holds the state for the REST API server.
type Server struct {
	orchestrator *ingest.Orchestrator
	searcher     *search.Searcher
	documents    storage.DocumentStore
	parser       ingest.Parser
	pool         *ants.Pool
	poolSize     int
	router       *gin.Engine
	logger       *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// WithPoolSize sets how many ingestions may run concurrently.
// Default is 8.
func WithPoolSize(size int) Option {
	return func(s *Server) {
		if size > 0 {
			s.poolSize = size
		}
	}
}

// NewServer creates an API server over the given collaborators. Document
// ingestions run on an internal worker pool; call Close to release it.
func NewServer(
	orchestrator *ingest.Orchestrator,
	searcher *search.Searcher,
	documents storage.DocumentStore,
	parser ingest.Parser,
	opts ...Option,
) (*Server, error) {
	if orchestrator == nil {
		return nil, ErrOrchestratorRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if documents == nil {
		return nil, ErrDocumentStoreRequired
	}
	if parser == nil {
		return nil, ErrParserRequired
	}

	s := &Server{
		orchestrator: orchestrator,
		searcher:     searcher,
		documents:    documents,
		parser:       parser,
		poolSize:     defaultPoolSize,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return nil, err
	}
	s.pool = pool

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s, nil
}

// Run starts the server on the specified address. Blocks until the
// listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("starting api server", "addr", addr)
	return s.router.Run(addr)
}

// Close releases the ingestion worker pool.
func (s *Server) Close() {
	s.pool.Release()
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.POST("/v1/documents", s.handleUploadDocument)
	s.router.GET("/v1/documents/:id", s.handleGetDocument)
	s.router.POST("/v1/documents/:id/embed", s.handleReembedDocument)
	s.router.POST("/v1/query/vector", s.handleVectorQuery)
	s.router.POST("/v1/query/sql", s.handleSQLQuery)
	s.router.POST("/v1/parse", s.handleParse)
}

// Health check
func (s *Server) healthCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}
