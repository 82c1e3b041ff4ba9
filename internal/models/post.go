package models

// Post is one entry from the remote listing API. Posts are read-only for the
// whole app session: fetched once at startup, held in memory, never mutated.
type Post struct {
	UserID int    `json:"userId,omitempty"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}
