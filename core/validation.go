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

import "fmt"

// ValidateTicket validates a Ticket according to domain rules.
//
// Validation rules:
//   - ID must be set (source systems never assign 0)
//   - Status must be a recognized value
//
// NOT validated:
//   - Comments (a ticket with no comments is legal and simply yields no passages)
//   - Subject/Description (the source may return tickets without either)
func ValidateTicket(ticket *Ticket) error {
	if ticket == nil {
		return fmt.Errorf("%w: ticket is nil", ErrInvalidTicket)
	}

	if ticket.ID == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTicket, ErrMissingTicketID)
	}

	if err := ValidateStatus(ticket.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTicket, err)
	}

	return nil
}

// ValidatePassage validates a Passage before it is written to the store.
//
// Validation rules:
//   - URL must not be empty (half of the uniqueness key)
//   - ChunkNumber must not be negative (the other half)
//   - Content must not be empty (the chunker never emits empty chunks)
//
// NOT validated:
//   - Embedding (empty vectors are legal for whitespace-only content)
func ValidatePassage(passage *Passage) error {
	if passage == nil {
		return fmt.Errorf("%w: passage is nil", ErrInvalidPassage)
	}

	if passage.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPassage, ErrEmptyPassageURL)
	}

	if passage.ChunkNumber < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidPassage, ErrNegativeChunkNumber)
	}

	if passage.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPassage, ErrEmptyPassageContent)
	}

	return nil
}

// ValidateStatus validates that a Status has a recognized value.
func ValidateStatus(status Status) error {
	switch status {
	case StatusNew, StatusOpen, StatusPending, StatusHold, StatusSolved, StatusClosed:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}
