// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package deskindex wires support tickets into a vector store. It fetches
// ticket conversations from Zendesk, splits them into chunks, embeds each
// chunk through an OpenAI-compatible API, and upserts the passages into a
// Supabase table for retrieval-augmented search.
package deskindex

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/deskindex/ai"
	"github.com/poiesic/deskindex/ai/openai"
	"github.com/poiesic/deskindex/config"
	"github.com/poiesic/deskindex/core"
	"github.com/poiesic/deskindex/indexer"
	"github.com/poiesic/deskindex/storage"
	badgerstore "github.com/poiesic/deskindex/storage/badger"
	"github.com/poiesic/deskindex/storage/supabase"
	"github.com/poiesic/deskindex/zendesk"
)

// Indexer bundles the source, embedder, and stores behind one Run call.
type Indexer struct {
	source   *zendesk.Client
	passages storage.PassageRepository
	backend  *badgerstore.Backend
	pipeline *indexer.Pipeline
	status   core.Status
	logger   *slog.Logger
}

// IndexerOption configures an Indexer.
type IndexerOption func(*indexerOptions)

type indexerOptions struct {
	checkpointPath string
	status         core.Status
	poolSize       int
	chunkSize      int
	progressWriter io.Writer
}

// WithCheckpointPath enables incremental indexing, persisting run
// watermarks in a BadgerDB database at the given path. Without it every
// run re-indexes the full ticket set.
func WithCheckpointPath(path string) IndexerOption {
	return func(o *indexerOptions) {
		o.checkpointPath = path
	}
}

// WithStatusFilter sets which ticket status to index. Default is solved.
func WithStatusFilter(status core.Status) IndexerOption {
	return func(o *indexerOptions) {
		o.status = status
	}
}

// WithPoolSize sets the per-ticket embedding concurrency.
func WithPoolSize(size int) IndexerOption {
	return func(o *indexerOptions) {
		o.poolSize = size
	}
}

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) IndexerOption {
	return func(o *indexerOptions) {
		o.chunkSize = size
	}
}

// WithProgressWriter enables progress reporting to w.
func WithProgressWriter(w io.Writer) IndexerOption {
	return func(o *indexerOptions) {
		o.progressWriter = w
	}
}

// NewIndexer composes a ready-to-run indexer from configuration.
func NewIndexer(cfg *config.Config, opts ...IndexerOption) (*Indexer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &indexerOptions{status: core.StatusSolved}
	for _, opt := range opts {
		opt(options)
	}

	source, err := zendesk.NewClient(zendesk.Config{
		Subdomain: cfg.ZendeskSubdomain,
		Email:     cfg.ZendeskEmail,
		APIToken:  cfg.ZendeskAPIToken,
	})
	if err != nil {
		return nil, err
	}

	embedder, err := openai.NewEmbedder(ai.NewConfig(
		ai.WithAPIToken(cfg.OpenAIKey),
		ai.WithBaseURL(cfg.OpenAIBaseURL),
		ai.WithModel(cfg.EmbeddingModel),
	))
	if err != nil {
		return nil, err
	}

	passages, err := supabase.NewClient(supabase.Config{
		URL:        cfg.SupabaseURL,
		ServiceKey: cfg.SupabaseKey,
		Table:      cfg.SupabaseTable,
	})
	if err != nil {
		return nil, err
	}

	pipelineOpts := []indexer.Option{
		indexer.WithStatusFilter(options.status),
	}
	if options.poolSize > 0 {
		pipelineOpts = append(pipelineOpts, indexer.WithPoolSize(options.poolSize))
	}
	if options.chunkSize > 0 {
		pipelineOpts = append(pipelineOpts, indexer.WithChunkSize(options.chunkSize))
	}
	if options.progressWriter != nil {
		pipelineOpts = append(pipelineOpts, indexer.WithProgressWriter(options.progressWriter))
	}

	var backend *badgerstore.Backend
	if options.checkpointPath != "" {
		backend, err = badgerstore.OpenBackend(options.checkpointPath, false)
		if err != nil {
			passages.Close()
			return nil, err
		}
		pipelineOpts = append(pipelineOpts,
			indexer.WithCheckpoints(badgerstore.NewCheckpointRepository(backend)))
	}

	pipeline, err := indexer.NewPipeline(source, embedder, passages, pipelineOpts...)
	if err != nil {
		if backend != nil {
			backend.Close()
		}
		passages.Close()
		return nil, err
	}

	return &Indexer{
		source:   source,
		passages: passages,
		backend:  backend,
		pipeline: pipeline,
		status:   options.status,
		logger:   slog.Default(),
	}, nil
}

// Run executes one indexing pass.
func (ix *Indexer) Run(ctx context.Context) (*indexer.RunStats, error) {
	return ix.pipeline.Run(ctx)
}

// Tickets fetches the ticket set the next run would index, without
// embedding or writing anything. Useful for auditing the filter.
func (ix *Indexer) Tickets(ctx context.Context) ([]*core.Ticket, error) {
	return ix.source.SearchTickets(ctx, ix.status)
}

// Close releases the worker pool and storage handles.
func (ix *Indexer) Close() error {
	ix.pipeline.Release()

	if err := ix.passages.Close(); err != nil {
		ix.logger.Error("error closing passage repository", "err", err)
		return err
	}
	if ix.backend != nil {
		if err := ix.backend.Close(); err != nil {
			ix.logger.Error("error closing checkpoint backend", "err", err)
			return err
		}
	}
	return nil
}
