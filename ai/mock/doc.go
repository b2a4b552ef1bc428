// Package mock provides test doubles for the ai package interfaces.
//
// MockEmbedder generates deterministic vectors from input text, so tests can
// assert on embedding behavior without a remote embedding service.
package mock
