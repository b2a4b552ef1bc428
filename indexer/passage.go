package indexer

import "github.com/poiesic/deskindex/core"

const sourceName = "zendesk"

// buildPassage assembles one passage row from a ticket chunk. ChunkNumber is
// the chunk's position in the ticket's split, counted from zero, so the
// (URL, ChunkNumber) key stays stable across runs.
func buildPassage(ticket *core.Ticket, chunkNumber int, content string, embedding []float32) *core.Passage {
	return &core.Passage{
		URL:         ticket.URL,
		ChunkNumber: chunkNumber,
		Title:       ticket.Subject,
		Summary:     ticket.Subject,
		Content:     content,
		Metadata: core.PassageMetadata{
			TicketID:    ticket.ID,
			CreatedAt:   ticket.CreatedAt,
			UpdatedAt:   ticket.UpdatedAt,
			Status:      string(ticket.Status),
			Requester:   ticket.RequesterID,
			Assignee:    ticket.AssigneeID,
			Tags:        ticket.Tags,
			Source:      sourceName,
			Fingerprint: core.Fingerprint(content),
		},
		Embedding: embedding,
	}
}
