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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidTicket indicates a Ticket failed validation.
	ErrInvalidTicket = errors.New("invalid ticket")

	// ErrInvalidPassage indicates a Passage failed validation.
	ErrInvalidPassage = errors.New("invalid passage")

	// ErrMissingTicketID indicates the ticket ID field is zero.
	ErrMissingTicketID = errors.New("ticket id is required")

	// ErrInvalidStatus indicates an unrecognized Status value.
	ErrInvalidStatus = errors.New("invalid ticket status")

	// ErrEmptyPassageURL indicates the passage URL field is empty.
	ErrEmptyPassageURL = errors.New("passage url cannot be empty")

	// ErrEmptyPassageContent indicates the passage Content field is empty.
	ErrEmptyPassageContent = errors.New("passage content cannot be empty")

	// ErrNegativeChunkNumber indicates a chunk number below zero.
	ErrNegativeChunkNumber = errors.New("chunk number cannot be negative")
)
