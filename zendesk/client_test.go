package zendesk

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/poiesic/deskindex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{Subdomain: "support", Email: "agent@example.com", APIToken: "secret"}
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(testConfig(), WithBaseURL(server.URL))
	require.NoError(t, err)
	return client
}

// ticketsHandler serves a paginated search result of total tickets, with a
// single comment per ticket.
func ticketsHandler(t *testing.T, total int) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/search.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "type:ticket status:solved", r.URL.Query().Get("query"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		first := (page - 1) * 100
		count := total - first
		if count > 100 {
			count = 100
		}
		if count < 0 {
			count = 0
		}

		fmt.Fprint(w, `{"results":[`)
		for i := 0; i < count; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"id":%d,"subject":"ticket %d","status":"solved","tags":["vip"],
				"requester_id":7,"assignee_id":8,"organization_id":9,
				"created_at":"2025-01-02T03:04:05Z","updated_at":"2025-02-02T03:04:05Z"}`,
				first+i+1, first+i+1)
		}
		fmt.Fprintf(w, `],"count":%d}`, total)
	})

	mux.HandleFunc("/tickets/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"comments":[{"id":1,"author_id":7,"body":"hello there","public":true,
			"created_at":"2025-01-02T03:05:05Z"}]}`)
	})

	return mux
}

func TestSearchTickets_PaginatesAndEnriches(t *testing.T) {
	client := newTestClient(t, ticketsHandler(t, 150))

	tickets, err := client.SearchTickets(context.Background(), core.StatusSolved)
	require.NoError(t, err)
	require.Len(t, tickets, 150)

	// Source order is preserved.
	assert.Equal(t, int64(1), tickets[0].ID)
	assert.Equal(t, int64(150), tickets[149].ID)

	for _, ticket := range tickets {
		require.Len(t, ticket.Comments, 1)
		assert.Equal(t, "hello there", ticket.Comments[0].Body)
		assert.Equal(t, core.StatusSolved, ticket.Status)
		assert.Equal(t, []string{"vip"}, ticket.Tags)
		assert.Equal(t, fmt.Sprintf("https://support.zendesk.com/agent/tickets/%d", ticket.ID), ticket.URL)
	}
}

func TestSearchTickets_EmptyResult(t *testing.T) {
	client := newTestClient(t, ticketsHandler(t, 0))

	tickets, err := client.SearchTickets(context.Background(), core.StatusSolved)
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestSearchTickets_ExactPageBoundary(t *testing.T) {
	// 100 tickets: the second page must come back empty and terminate.
	client := newTestClient(t, ticketsHandler(t, 100))

	tickets, err := client.SearchTickets(context.Background(), core.StatusSolved)
	require.NoError(t, err)
	assert.Len(t, tickets, 100)
}

func TestSearchTickets_HTTPStatusError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Forbidden"}`, http.StatusForbidden)
	}))

	_, err := client.SearchTickets(context.Background(), core.StatusSolved)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPStatus)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "search.json", fetchErr.Endpoint)
	assert.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
	assert.Contains(t, fetchErr.Body, "Forbidden")
}

func TestSearchTickets_MalformedResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))

	_, err := client.SearchTickets(context.Background(), core.StatusSolved)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestSearchTickets_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	serverURL := server.URL
	server.Close() // nothing is listening anymore

	client, err := NewClient(testConfig(), WithBaseURL(serverURL))
	require.NoError(t, err)

	_, err = client.SearchTickets(context.Background(), core.StatusSolved)
	assert.ErrorIs(t, err, ErrConnection)
}

func TestSearchTickets_Timeout(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	client.httpClient.Timeout = 20 * time.Millisecond

	_, err := client.SearchTickets(context.Background(), core.StatusSolved)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_AuthHeader(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"results":[]}`)
	}))

	_, err := client.SearchTickets(context.Background(), core.StatusSolved)
	require.NoError(t, err)

	expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("agent@example.com/token:secret"))
	assert.Equal(t, expected, gotAuth)
}

func TestTicketComments_Paginates(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		count := 0
		switch page {
		case 1:
			count = 100
		case 2:
			count = 30
		}

		fmt.Fprint(w, `{"comments":[`)
		for i := 0; i < count; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"id":%d,"body":"comment %d"}`, (page-1)*100+i+1, (page-1)*100+i+1)
		}
		fmt.Fprint(w, `]}`)
	}))

	comments, err := client.TicketComments(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, comments, 130)
	assert.Equal(t, "comment 1", comments[0].Body)
	assert.Equal(t, "comment 130", comments[129].Body)
}

func TestListUsers(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users.json", r.URL.Path)
		fmt.Fprint(w, `{"users":[{"id":7,"name":"Ada","email":"ada@example.com","role":"agent"}]}`)
	}))

	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ada", users[0].Name)
}

func TestListOrganizations(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/organizations.json", r.URL.Path)
		fmt.Fprint(w, `{"organizations":[{"id":9,"name":"Acme"}]}`)
	}))

	orgs, err := client.ListOrganizations(context.Background())
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "Acme", orgs[0].Name)
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(Config{Subdomain: "support"})
	assert.Error(t, err)
}
