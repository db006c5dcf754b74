package memory

import (
	"context"
	"sync"

	"github.com/atriumdata/docpipe/storage"
)

var _ storage.SQLRunner = (*SQLRunner)(nil)

// SQLRunner is a scripted implementation of storage.SQLRunner for tests
// and local runs: it returns preconfigured rows and records what was
// executed.
type SQLRunner struct {
	mu sync.Mutex

	// Rows are returned from every ExecuteSQL call.
	Rows []map[string]any

	// Err, when set, fails every ExecuteSQL call.
	Err error

	lastQuery  string
	lastParams map[string]any
}

// NewSQLRunner creates a scripted SQL runner.
func NewSQLRunner() *SQLRunner {
	return &SQLRunner{}
}

// ExecuteSQL records the query and returns the scripted rows.
func (s *SQLRunner) ExecuteSQL(_ context.Context, query string, params map[string]any) ([]map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastQuery = query
	s.lastParams = params
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Rows, nil
}

// LastQuery returns the most recently executed query text.
func (s *SQLRunner) LastQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}

// LastParams returns the most recently executed bound parameters.
func (s *SQLRunner) LastParams() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastParams
}
