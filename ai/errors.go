package ai

import "errors"

var (
	// ErrEmbeddingFailed indicates the remote embedding call failed or
	// returned a malformed result.
	ErrEmbeddingFailed = errors.New("embedding generation failed")
)
