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


// Package indexer orchestrates the ticket indexing pipeline.
//
// A run fetches every ticket matching the status filter, splits each
// ticket's conversation into chunks, embeds the chunks, and upserts one
// passage row per chunk. Tickets are handled one at a time in source
// order; within a ticket the chunks fan out over a worker pool and are
// joined before the next ticket starts. Embedding runs before any write,
// so a ticket that fails to embed writes nothing. The first error aborts
// the run.
//
// Upserts are keyed by (URL, ChunkNumber), which makes a full re-run
// idempotent. Optional checkpoints let a run skip tickets that have not
// changed since the previous fully successful run.
package indexer
