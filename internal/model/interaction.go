package model

import "time"

// Interaction records a user action against a snippet — "like", "skip" or
// "save" by convention, though the column accepts any non-empty string.
//
// There is deliberately no uniqueness constraint: the same user may record
// the same action on the same snippet any number of times, and each call
// produces a new row. Interactions are write-only; no endpoint reads them
// back.
type Interaction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	SnippetID int64     `json:"snippet_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
