// Package ingest provides pipeline orchestration for document intake.
//
// The Orchestrator drives the end-to-end sequence for an uploaded binary:
// create the document record, upload to object storage, obtain a signed
// URL, parse via the external parsing service, cleanse and flatten the
// parsed tree, embed, and persist the extracted artifact. Each status
// transition is persisted and reported as a progress event so callers can
// stream or poll ingestion state.
//
// A separate synchronous re-embedding path splits the flattened text into
// overlapping chunks, embeds them in one batch, and replaces the
// document's stored chunk set.
package ingest
