package zendesk

import "time"

// Wire types for the Zendesk REST API. Only the fields the indexer reads
// are declared; the API returns many more.

type ticketPayload struct {
	ID             int64     `json:"id"`
	Subject        string    `json:"subject"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	Priority       string    `json:"priority"`
	RequesterID    int64     `json:"requester_id"`
	AssigneeID     int64     `json:"assignee_id"`
	OrganizationID int64     `json:"organization_id"`
	Tags           []string  `json:"tags"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type searchResponse struct {
	Results []ticketPayload `json:"results"`
	Count   int             `json:"count"`
}

type commentPayload struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
}

type commentsResponse struct {
	Comments []commentPayload `json:"comments"`
}

// User is a Zendesk user record, used for directory lookups.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type usersResponse struct {
	Users []User `json:"users"`
}

// Organization is a Zendesk organization record.
type Organization struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type organizationsResponse struct {
	Organizations []Organization `json:"organizations"`
}
