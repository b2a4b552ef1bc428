package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "same content produces same fingerprint", content: "test content"},
		{name: "empty string", content: ""},
		{name: "long content", content: "This is a much longer piece of content that should still hash consistently"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp1 := Fingerprint(tt.content)
			fp2 := Fingerprint(tt.content)

			assert.Equal(t, fp1, fp2)
			assert.Len(t, fp1, 16)
		})
	}
}

func TestFingerprint_Different(t *testing.T) {
	assert.NotEqual(t, Fingerprint("content1"), Fingerprint("content2"))
}

func TestTicket_CommentText(t *testing.T) {
	ticket := &Ticket{
		ID: 42,
		Comments: []Comment{
			{ID: 1, Body: "first comment"},
			{ID: 2, Body: "second comment"},
			{ID: 3, Body: "third comment"},
		},
	}

	assert.Equal(t, "first comment\n\nsecond comment\n\nthird comment", ticket.CommentText())
}

func TestTicket_CommentText_Empty(t *testing.T) {
	ticket := &Ticket{ID: 42}
	assert.Equal(t, "", ticket.CommentText())
}

func TestCheckpointMUS_RoundTrip(t *testing.T) {
	checkpoint := Checkpoint{
		StatusFilter:   "solved",
		LastUpdatedAt:  time.Date(2025, 3, 14, 9, 26, 53, 589000, time.UTC),
		TicketsIndexed: 150,
		UpdatedAt:      time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	bs := make([]byte, CheckpointMUS.Size(checkpoint))
	n := CheckpointMUS.Marshal(checkpoint, bs)
	require.Equal(t, len(bs), n)

	decoded, n, err := CheckpointMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
	assert.Equal(t, checkpoint.StatusFilter, decoded.StatusFilter)
	assert.True(t, checkpoint.LastUpdatedAt.Equal(decoded.LastUpdatedAt))
	assert.Equal(t, checkpoint.TicketsIndexed, decoded.TicketsIndexed)
	assert.True(t, checkpoint.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestCheckpointMUS_UnmarshalTruncated(t *testing.T) {
	checkpoint := Checkpoint{StatusFilter: "solved", LastUpdatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()}
	bs := make([]byte, CheckpointMUS.Size(checkpoint))
	CheckpointMUS.Marshal(checkpoint, bs)

	_, _, err := CheckpointMUS.Unmarshal(bs[:2])
	assert.Error(t, err)
}
