// Package mock provides test doubles for the ai package interfaces.
//
// The mock embedder produces deterministic vectors derived from input
// text hashes, so tests get stable similarity behavior without any
// external embedding service. Behavior can be overridden per-test via
// function fields.
package mock
