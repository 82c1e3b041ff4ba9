package models

import "time"

// Comment is an append-only comment on a post. No edit or delete surface
// exists.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    int       `json:"post_id" gorm:"index"`
	UserID    string    `json:"user_id" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (Comment) TableName() string { return "post_comments" }

// CommentWithAuthor is a comment joined with the author's profile display
// fields. The author may not have completed a profile yet, hence the
// pointers.
type CommentWithAuthor struct {
	Comment
	AuthorNombre    *string `json:"author_nombre"`
	AuthorAvatarURL *string `json:"author_avatar_url"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}
