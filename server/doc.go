// Package server exposes the ingestion and retrieval pipeline over HTTP.
// Document uploads stream progress back as newline-delimited JSON while
// the ingestion runs on a worker pool; query endpoints are plain JSON.
package server
