package models

import "time"

// Favorite links a user to a post; existence of the row is the membership
// fact. The composite unique index keeps rapid toggling from ever inserting
// duplicate rows.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_fav"`
	PostID    int       `json:"post_id" gorm:"index;uniqueIndex:idx_user_post_fav"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favorite) TableName() string { return "user_favorite_posts" }
