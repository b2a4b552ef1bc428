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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/deskindex"
	"github.com/poiesic/deskindex/config"
	"github.com/poiesic/deskindex/core"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "deskindex",
		Usage: "Index Zendesk ticket conversations into a vector store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Run one indexing pass over matching tickets",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "status",
						Aliases: []string{"s"},
						Usage:   "Ticket status to index (new, open, pending, hold, solved, closed)",
						Value:   "solved",
					},
					&cli.StringFlag{
						Name:  "checkpoint-db",
						Usage: "Path to BadgerDB directory for incremental run watermarks (omit to re-index everything)",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Concurrent embedding workers per ticket (0 uses half the CPUs)",
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Maximum passage size in characters",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Suppress per-ticket progress output",
					},
				},
			},
			{
				Name:   "tickets",
				Usage:  "List the tickets an indexing pass would cover, without writing anything",
				Action: ticketsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "status",
						Aliases: []string{"s"},
						Usage:   "Ticket status to list",
						Value:   "solved",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opts := []deskindex.IndexerOption{
		deskindex.WithStatusFilter(core.Status(c.String("status"))),
	}
	if path := c.String("checkpoint-db"); path != "" {
		opts = append(opts, deskindex.WithCheckpointPath(path))
	}
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, deskindex.WithPoolSize(size))
	}
	if size := c.Int("chunk-size"); size > 0 {
		opts = append(opts, deskindex.WithChunkSize(size))
	}
	if !c.Bool("quiet") {
		opts = append(opts, deskindex.WithProgressWriter(os.Stderr))
	}

	indexer, err := deskindex.NewIndexer(cfg, opts...)
	if err != nil {
		return err
	}
	defer indexer.Close()

	stats, err := indexer.Run(ctx)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d of %d tickets (%d skipped), %d passages written\n",
		stats.TicketsIndexed, stats.TicketsFound, stats.TicketsSkipped, stats.PassagesWritten)
	return nil
}

func ticketsCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	indexer, err := deskindex.NewIndexer(cfg,
		deskindex.WithStatusFilter(core.Status(c.String("status"))))
	if err != nil {
		return err
	}
	defer indexer.Close()

	tickets, err := indexer.Tickets(ctx)
	if err != nil {
		return fmt.Errorf("listing tickets failed: %w", err)
	}

	for _, ticket := range tickets {
		fmt.Printf("%d\t%s\t%d comments\t%s\n",
			ticket.ID, ticket.UpdatedAt.Format("2006-01-02"), len(ticket.Comments), ticket.Subject)
	}
	fmt.Fprintf(os.Stderr, "%d tickets\n", len(tickets))
	return nil
}

// setup loads the environment and configures logging before any command.
func setup(c *cli.Context) error {
	// A .env file is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "err", err)
	}

	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
