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


// Package storage provides the storage abstraction layer for deskindex.
//
// Two repositories are defined:
//
//   - PassageRepository: write-only upserts into the vector store,
//     implemented by storage/supabase
//   - CheckpointRepository: run watermarks for incremental indexing,
//     implemented by storage/badger
//
// Public constructors in the implementation packages return these interfaces
// to prevent coupling to a concrete backend; the indexer only ever sees the
// interfaces. All implementations must be safe for concurrent use and accept
// context.Context for cancellation.
package storage
