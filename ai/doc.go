// Package ai provides abstractions for the embedding service used by the
// ingestion and retrieval pipelines.
//
// The Embedder interface hides the concrete embedding provider. The
// Generator type layers pipeline policy on top of any Embedder: blank
// input never reaches the network, batch order is preserved, and a batch
// either succeeds whole or fails whole.
//
// Two implementation sub-packages exist:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors return interface types to enforce abstraction;
// mock constructors return concrete types so tests can inject behavior
// and assert call counts.
package ai
