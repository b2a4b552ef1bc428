package core

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Status is the lifecycle state of a ticket in the source system.
type Status string

const (
	StatusNew     Status = "new"
	StatusOpen    Status = "open"
	StatusPending Status = "pending"
	StatusHold    Status = "hold"
	StatusSolved  Status = "solved"
	StatusClosed  Status = "closed"
)

// Ticket is a read-only snapshot of a support ticket fetched for one
// indexing run. It is never written back to the source system.
type Ticket struct {
	ID             int64
	URL            string
	Subject        string
	Description    string
	Status         Status
	Priority       string
	RequesterID    int64
	AssigneeID     int64
	OrganizationID int64
	Tags           []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Comments       []Comment
}

// Comment is a single entry in a ticket's conversation, in document order.
type Comment struct {
	ID        int64
	AuthorID  int64
	Body      string
	Public    bool
	CreatedAt time.Time
}

// CommentText concatenates the comment bodies in document order, separated
// by blank lines so the chunker can cut at comment boundaries.
func (t *Ticket) CommentText() string {
	bodies := make([]string, len(t.Comments))
	for i, comment := range t.Comments {
		bodies[i] = comment.Body
	}
	return strings.Join(bodies, "\n\n")
}

// Passage is one embedded slice of a ticket's comment text, the unit of
// storage. Passages for a ticket are numbered 0..k-1 contiguously and are
// keyed by (URL, ChunkNumber) in the store.
type Passage struct {
	URL         string
	ChunkNumber int
	Title       string
	Summary     string
	Content     string
	Metadata    PassageMetadata
	Embedding   []float32
}

// PassageMetadata carries the ticket attributes stored alongside each
// passage row. Field names match the store's metadata column schema.
type PassageMetadata struct {
	TicketID    int64     `json:"ticket_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Status      string    `json:"status"`
	Requester   int64     `json:"requester"`
	Assignee    int64     `json:"assignee"`
	Tags        []string  `json:"tags"`
	Source      string    `json:"source"`
	Fingerprint string    `json:"fingerprint,omitempty"`
}

// Checkpoint records the updated-at watermark of the last fully indexed run
// for one status filter. Used only when incremental indexing is enabled.
type Checkpoint struct {
	StatusFilter   string
	LastUpdatedAt  time.Time
	TicketsIndexed int
	UpdatedAt      time.Time
}

// Fingerprint generates a deterministic digest of passage content using
// BLAKE2b hashing. Identical content always produces the same fingerprint.
func Fingerprint(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return fmt.Sprintf("%016x", binary.LittleEndian.Uint64(sum))
}
