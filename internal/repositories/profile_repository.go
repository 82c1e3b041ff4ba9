package repositories

import (
	"errors"

	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines the interface for profile row operations.
// GetProfile returns models.ErrProfileNotFound for a missing row so callers
// never inspect store-specific error codes.
type ProfileRepository interface {
	GetProfile(userID string) (*models.Profile, error)
	CreateProfile(profile *models.Profile) error
	UpsertProfile(profile *models.Profile) error
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// GetProfile retrieves the single profile row for a user
func (r *PostgresProfileRepository) GetProfile(userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// CreateProfile inserts a new profile row
func (r *PostgresProfileRepository) CreateProfile(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// UpsertProfile inserts the profile row or replaces all its editable columns
// when it already exists
func (r *PostgresProfileRepository) UpsertProfile(profile *models.Profile) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(profile).Error
}
