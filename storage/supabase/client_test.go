package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/poiesic/deskindex/core"
	"github.com/poiesic/deskindex/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPassage() *core.Passage {
	return &core.Passage{
		URL:         "https://support.zendesk.com/agent/tickets/42",
		ChunkNumber: 0,
		Title:       "Printer on fire",
		Summary:     "Printer on fire",
		Content:     "The printer is on fire.\n\nPlease advise.",
		Metadata: core.PassageMetadata{
			TicketID:  42,
			Status:    "solved",
			Requester: 7,
			Source:    "zendesk",
			CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
			UpdatedAt: time.Date(2025, 2, 2, 3, 4, 5, 0, time.UTC),
		},
		Embedding: []float32{0.1, 0.2, 0.3},
	}
}

func newTestRepo(t *testing.T, handler http.Handler) storage.PassageRepository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	repo, err := NewClient(Config{URL: server.URL, ServiceKey: "service-key"})
	require.NoError(t, err)
	return repo
}

func TestUpsertPassage_SendsIdempotentWrite(t *testing.T) {
	var gotReq *http.Request
	var gotRow passageRow

	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRow))
		w.WriteHeader(http.StatusCreated)
	}))

	err := repo.UpsertPassage(context.Background(), testPassage())
	require.NoError(t, err)

	require.NotNil(t, gotReq)
	assert.Equal(t, http.MethodPost, gotReq.Method)
	assert.Equal(t, "/rest/v1/zendesk_tickets", gotReq.URL.Path)
	assert.Equal(t, "url,chunk_number", gotReq.URL.Query().Get("on_conflict"))
	assert.Equal(t, "service-key", gotReq.Header.Get("apikey"))
	assert.Equal(t, "Bearer service-key", gotReq.Header.Get("Authorization"))
	assert.Equal(t, "application/json", gotReq.Header.Get("Content-Type"))
	assert.Equal(t, "resolution=merge-duplicates,return=minimal", gotReq.Header.Get("Prefer"))

	assert.Equal(t, "https://support.zendesk.com/agent/tickets/42", gotRow.URL)
	assert.Equal(t, 0, gotRow.ChunkNumber)
	assert.Equal(t, "Printer on fire", gotRow.Title)
	assert.Equal(t, int64(42), gotRow.Metadata.TicketID)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, gotRow.Embedding)
}

func TestUpsertPassage_CustomTable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/custom_passages", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(server.Close)

	repo, err := NewClient(Config{URL: server.URL, ServiceKey: "k", Table: "custom_passages"})
	require.NoError(t, err)

	require.NoError(t, repo.UpsertPassage(context.Background(), testPassage()))
}

func TestUpsertPassage_StatusErrorNormalized(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"message":"duplicate key value violates unique constraint","code":"23505"}`)
	}))

	err := repo.UpsertPassage(context.Background(), testPassage())
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrUpsertFailed)
	assert.Contains(t, err.Error(), "duplicate key value")
	assert.Contains(t, err.Error(), "409")
}

func TestUpsertPassage_InBandErrorNormalized(t *testing.T) {
	// PostgREST occasionally reports failure in the body of a 200 response.
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":"permission denied for table zendesk_tickets","code":"42501"}`)
	}))

	err := repo.UpsertPassage(context.Background(), testPassage())
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrUpsertFailed)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestUpsertPassage_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	serverURL := server.URL
	server.Close()

	repo, err := NewClient(Config{URL: serverURL, ServiceKey: "k"})
	require.NoError(t, err)

	err = repo.UpsertPassage(context.Background(), testPassage())
	assert.ErrorIs(t, err, storage.ErrUpsertFailed)
}

func TestUpsertPassage_RejectsInvalidPassage(t *testing.T) {
	repo := newTestRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid passage must not reach the store")
	}))

	passage := testPassage()
	passage.URL = ""

	err := repo.UpsertPassage(context.Background(), passage)
	assert.ErrorIs(t, err, storage.ErrUpsertFailed)
	assert.ErrorIs(t, err, core.ErrEmptyPassageURL)
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(Config{URL: "https://example.supabase.co"})
	assert.Error(t, err)

	_, err = NewClient(Config{ServiceKey: "k"})
	assert.Error(t, err)
}
