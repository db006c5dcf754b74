// Package storage provides the storage abstraction layer for docpipe.
//
// This package defines the store interfaces that decouple the ingestion
// and retrieval orchestrators from concrete backends. The production
// backend (storage/supabase) talks to a hosted relational/vector service
// over REST; storage/memory provides thread-safe in-process stores for
// tests and local development.
//
// Relational rows, object binaries and vector search all live behind these
// interfaces, so the orchestrators never see HTTP details.
//
// All implementations must be safe for concurrent use and accept a
// context.Context for cancellation on every call.
package storage
