package models

import "time"

// Activity types produced by the favorites, comments, and random explorer
// components.
const (
	ActivityAddedFavorite    = "added_favorite"
	ActivityRemovedFavorite  = "removed_favorite"
	ActivityCommented        = "commented"
	ActivityDiscoveredRandom = "discovered_random"
)

// Activity is a client-local history entry describing a user action. It is
// unrelated to any backend audit log.
type Activity struct {
	Type           string    `json:"type"`
	Timestamp      time.Time `json:"timestamp"`
	PostID         int       `json:"postId,omitempty"`
	PostTitle      string    `json:"postTitle,omitempty"`
	CommentSnippet string    `json:"commentSnippet,omitempty"`
	Count          int       `json:"count,omitempty"`
}
