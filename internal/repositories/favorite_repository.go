package repositories

import (
	"fmt"

	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"gorm.io/gorm"
)

// FavoriteRepository defines the interface for favorite relation operations
type FavoriteRepository interface {
	AddFavorite(favorite *models.Favorite) error
	RemoveFavorite(userID string, postID int) error
	IsFavorite(userID string, postID int) (bool, error)
	GetFavoritesByUser(userID string) ([]models.Favorite, error)
}

// PostgresFavoriteRepository implements FavoriteRepository
type PostgresFavoriteRepository struct {
	db *gorm.DB
}

// NewPostgresFavoriteRepository creates a new PostgresFavoriteRepository
func NewPostgresFavoriteRepository(db *gorm.DB) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{db: db}
}

// AddFavorite inserts the (user, post) membership row
func (r *PostgresFavoriteRepository) AddFavorite(favorite *models.Favorite) error {
	return r.db.Create(favorite).Error
}

// RemoveFavorite deletes the (user, post) membership row
func (r *PostgresFavoriteRepository) RemoveFavorite(userID string, postID int) error {
	res := r.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("favorite not found")
	}
	return nil
}

// IsFavorite reports whether the membership row exists
func (r *PostgresFavoriteRepository) IsFavorite(userID string, postID int) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}

// GetFavoritesByUser retrieves the user's favorites, most recent first
func (r *PostgresFavoriteRepository) GetFavoritesByUser(userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&favorites).Error
	return favorites, err
}
