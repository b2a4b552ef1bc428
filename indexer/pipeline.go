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


package indexer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/deskindex/ai"
	"github.com/poiesic/deskindex/chunk"
	"github.com/poiesic/deskindex/core"
	"github.com/poiesic/deskindex/storage"
)

// progressReportInterval is how many tickets pass between progress reports.
const progressReportInterval = 10

// TicketSource produces the full ticket set for one indexing run.
type TicketSource interface {
	SearchTickets(ctx context.Context, status core.Status) ([]*core.Ticket, error)
}

// Pipeline orchestrates one indexing pass: fetch tickets, chunk their
// conversations, embed the chunks, and upsert the resulting passages.
// Tickets are processed sequentially; the chunks within a ticket are
// embedded and stored concurrently.
type Pipeline struct {
	source         TicketSource
	embedder       ai.Embedder
	passages       storage.PassageRepository
	checkpoints    storage.CheckpointRepository
	pool           *ants.Pool
	chunkSize      int
	status         core.Status
	progressWriter io.Writer
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding and
// storage within a ticket. Default is runtime.NumCPU() / 2, minimum 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithChunkSize sets the maximum chunk size in characters.
// Default is chunk.DefaultChunkSize.
func WithChunkSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("chunk size must be positive, got %d", size)
		}
		p.chunkSize = size
		return nil
	}
}

// WithStatusFilter sets which ticket status the run indexes.
// Default is core.StatusSolved.
func WithStatusFilter(status core.Status) Option {
	return func(p *Pipeline) error {
		if err := core.ValidateStatus(status); err != nil {
			return err
		}
		p.status = status
		return nil
	}
}

// WithCheckpoints enables incremental indexing. Tickets not updated since
// the stored watermark are skipped, and a new watermark is saved after a
// fully successful run. Without this option every run re-indexes everything.
func WithCheckpoints(repo storage.CheckpointRepository) Option {
	return func(p *Pipeline) error {
		p.checkpoints = repo
		return nil
	}
}

// WithProgressWriter enables per-ticket progress reporting to w.
func WithProgressWriter(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progressWriter = w
		return nil
	}
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	source TicketSource,
	embedder ai.Embedder,
	passages storage.PassageRepository,
	opts ...Option,
) (*Pipeline, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if passages == nil {
		return nil, ErrRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		source:    source,
		embedder:  embedder,
		passages:  passages,
		pool:      pool,
		chunkSize: chunk.DefaultChunkSize,
		status:    core.StatusSolved,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// RunStats summarizes one indexing pass.
type RunStats struct {
	TicketsFound    int
	TicketsIndexed  int
	TicketsSkipped  int
	PassagesWritten int
}

// Run executes one indexing pass. The first failure aborts the run.
// Passages already written stay in the store; re-running overwrites them.
func (p *Pipeline) Run(ctx context.Context) (*RunStats, error) {
	tickets, err := p.source.SearchTickets(ctx, p.status)
	if err != nil {
		return nil, err
	}

	p.logger.Info("fetched tickets", "status", p.status, "count", len(tickets))
	for _, ticket := range tickets {
		p.logger.Debug("ticket selected", "id", ticket.ID, "url", ticket.URL)
	}

	var watermark time.Time
	if p.checkpoints != nil {
		checkpoint, err := p.checkpoints.LoadCheckpoint(ctx, string(p.status))
		if err != nil {
			return nil, err
		}
		if checkpoint != nil {
			watermark = checkpoint.LastUpdatedAt
			p.logger.Info("resuming from checkpoint", "watermark", watermark)
		}
	}

	var tracker *ProgressTracker
	if p.progressWriter != nil {
		tracker = NewProgressTracker(p.progressWriter, len(tickets), progressReportInterval)
		tracker.Start()
	}

	stats := &RunStats{TicketsFound: len(tickets)}
	maxUpdated := watermark

	for _, ticket := range tickets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !watermark.IsZero() && !ticket.UpdatedAt.After(watermark) {
			stats.TicketsSkipped++
			if tracker != nil {
				tracker.Increment(1)
			}
			continue
		}

		written, err := p.indexTicket(ctx, ticket)
		if err != nil {
			return nil, fmt.Errorf("%w: ticket %d: %w", ErrTicketFailed, ticket.ID, err)
		}

		stats.TicketsIndexed++
		stats.PassagesWritten += written
		if ticket.UpdatedAt.After(maxUpdated) {
			maxUpdated = ticket.UpdatedAt
		}
		if tracker != nil {
			tracker.Increment(1)
		}
	}

	if tracker != nil {
		tracker.Finish()
	}

	if p.checkpoints != nil && !maxUpdated.IsZero() {
		err := p.checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
			StatusFilter:   string(p.status),
			LastUpdatedAt:  maxUpdated,
			TicketsIndexed: stats.TicketsIndexed,
		})
		if err != nil {
			return nil, err
		}
	}

	p.logger.Info("indexing run complete",
		"indexed", stats.TicketsIndexed,
		"skipped", stats.TicketsSkipped,
		"passages", stats.PassagesWritten)

	return stats, nil
}

// indexTicket embeds and stores every chunk of one ticket. Every chunk
// must embed before the first write, so an embedding failure leaves the
// store untouched for this ticket.
func (p *Pipeline) indexTicket(ctx context.Context, ticket *core.Ticket) (int, error) {
	chunks := chunk.Split(ticket.CommentText(), p.chunkSize)
	if len(chunks) == 0 {
		p.logger.Debug("ticket has no indexable text", "ticket", ticket.ID)
		return 0, nil
	}

	embeddings := make([][]float32, len(chunks))
	embedErr := p.forEach(len(chunks), func(i int) error {
		vector, err := p.embedder.EmbedText(ctx, chunks[i])
		if err != nil {
			return fmt.Errorf("chunk %d: %w", i, err)
		}
		embeddings[i] = vector
		return nil
	})
	if embedErr != nil {
		return 0, embedErr
	}

	storeErr := p.forEach(len(chunks), func(i int) error {
		passage := buildPassage(ticket, i, chunks[i], embeddings[i])
		if err := p.passages.UpsertPassage(ctx, passage); err != nil {
			return fmt.Errorf("chunk %d: %w", i, err)
		}
		return nil
	})
	if storeErr != nil {
		return 0, storeErr
	}

	return len(chunks), nil
}

// forEach runs fn for indexes 0..n-1 on the worker pool and joins the
// results. A pool submission failure counts as that index failing.
func (p *Pipeline) forEach(n int, fn func(i int) error) error {
	errs := make([]error, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			errs[i] = fn(i)
		})
		if submitErr != nil {
			errs[i] = submitErr
			wg.Done()
		}
	}
	wg.Wait()

	return errors.Join(errs...)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
