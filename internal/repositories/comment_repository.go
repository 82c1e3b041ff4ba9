package repositories

import (
	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
// Comments are append-only: there is no update or delete.
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentsByPostID(postID int) ([]models.CommentWithAuthor, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment inserts a new comment
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentsByPostID retrieves a post's comments joined with the author's
// profile display fields, newest first
func (r *PostgresCommentRepository) GetCommentsByPostID(postID int) ([]models.CommentWithAuthor, error) {
	var comments []models.CommentWithAuthor
	err := r.db.Model(&models.Comment{}).
		Select("post_comments.*, profiles.nombre AS author_nombre, profiles.avatar_url AS author_avatar_url").
		Joins("LEFT JOIN profiles ON profiles.id = post_comments.user_id").
		Where("post_comments.post_id = ?", postID).
		Order("post_comments.created_at DESC").
		Scan(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
