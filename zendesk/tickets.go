package zendesk

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/poiesic/deskindex/core"
)

// SearchTickets retrieves every ticket whose status matches the filter,
// each enriched with its full comment sequence. Pages are fetched in the
// source's created-at descending order until a page comes back short or
// empty; that order is preserved in the result.
//
// Any transport failure aborts the whole fetch: the caller decides whether
// a partial run is worth continuing, and this client assumes it never is.
func (c *Client) SearchTickets(ctx context.Context, status core.Status) ([]*core.Ticket, error) {
	pageSize := c.cfg.pageSize()
	query := fmt.Sprintf("type:ticket status:%s", status)

	var tickets []*core.Ticket
	for page := 1; ; page++ {
		params := url.Values{
			"page":       {strconv.Itoa(page)},
			"per_page":   {strconv.Itoa(pageSize)},
			"query":      {query},
			"sort_by":    {"created_at"},
			"sort_order": {"desc"},
		}

		var resp searchResponse
		if err := c.get(ctx, "search.json", params, &resp); err != nil {
			return nil, err
		}

		if len(resp.Results) == 0 {
			break
		}

		for _, payload := range resp.Results {
			ticket := payload.toTicket(c.cfg.AgentTicketURL(payload.ID))

			comments, err := c.TicketComments(ctx, payload.ID)
			if err != nil {
				return nil, err
			}
			ticket.Comments = comments

			tickets = append(tickets, ticket)
		}

		// A short page is the last page.
		if len(resp.Results) < pageSize {
			break
		}
	}

	c.logger.Info("fetched tickets", "status", status, "count", len(tickets))
	return tickets, nil
}

// TicketComments retrieves all comments for one ticket in document order.
func (c *Client) TicketComments(ctx context.Context, ticketID int64) ([]core.Comment, error) {
	pageSize := c.cfg.pageSize()
	endpoint := fmt.Sprintf("tickets/%d/comments.json", ticketID)

	var comments []core.Comment
	for page := 1; ; page++ {
		params := url.Values{
			"page":     {strconv.Itoa(page)},
			"per_page": {strconv.Itoa(pageSize)},
		}

		var resp commentsResponse
		if err := c.get(ctx, endpoint, params, &resp); err != nil {
			return nil, err
		}

		if len(resp.Comments) == 0 {
			break
		}

		for _, payload := range resp.Comments {
			comments = append(comments, core.Comment{
				ID:        payload.ID,
				AuthorID:  payload.AuthorID,
				Body:      payload.Body,
				Public:    payload.Public,
				CreatedAt: payload.CreatedAt,
			})
		}

		if len(resp.Comments) < pageSize {
			break
		}
	}

	return comments, nil
}

func (p *ticketPayload) toTicket(agentURL string) *core.Ticket {
	return &core.Ticket{
		ID:             p.ID,
		URL:            agentURL,
		Subject:        p.Subject,
		Description:    p.Description,
		Status:         core.Status(p.Status),
		Priority:       p.Priority,
		RequesterID:    p.RequesterID,
		AssigneeID:     p.AssigneeID,
		OrganizationID: p.OrganizationID,
		Tags:           p.Tags,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
