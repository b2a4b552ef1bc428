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


// Package zendesk is a read-only client for the Zendesk ticketing API.
//
// The client covers exactly what the indexer needs: status-filtered ticket
// search with comment enrichment, plus user and organization listings. All
// endpoints are paginated with a fixed page size; a page shorter than the
// page size terminates pagination.
//
// Failures are classified (HTTP status, connection, timeout, malformed
// response) and abort the whole fetch. There is no retry layer: the run is
// re-invoked as a whole and storage upserts make re-runs safe.
package zendesk
