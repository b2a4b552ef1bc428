package indexer

import "errors"

var (
	// ErrSourceRequired is returned when a ticket source is not provided.
	ErrSourceRequired = errors.New("ticket source required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrRepositoryRequired is returned when a passage repository is not provided.
	ErrRepositoryRequired = errors.New("passage repository required")

	// ErrTicketFailed is returned when a ticket's passages could not all be
	// embedded and stored. Nothing from a failed ticket reaches the store.
	ErrTicketFailed = errors.New("ticket indexing failed")
)
