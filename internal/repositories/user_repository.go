package repositories

import (
	"github.com/JackSmar98/jsonplaceholder/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for auth account operations
type UserRepository interface {
	CreateUser(user *models.AuthUser) error
	GetUserByID(id string) (*models.AuthUser, error)
	GetUserByEmail(email string) (*models.AuthUser, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.AuthUser, error)
	GetUserByConfirmationToken(token string) (*models.AuthUser, error)
	UpdateUser(user *models.AuthUser) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new auth account in PostgreSQL
func (r *PostgresUserRepository) CreateUser(user *models.AuthUser) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves an account by id
func (r *PostgresUserRepository) GetUserByID(id string) (*models.AuthUser, error) {
	var user models.AuthUser
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves an account by email
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.AuthUser, error) {
	var user models.AuthUser
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves an account by Firebase UID
func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.AuthUser, error) {
	var user models.AuthUser
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByConfirmationToken retrieves an account by its pending email
// confirmation token
func (r *PostgresUserRepository) GetUserByConfirmationToken(token string) (*models.AuthUser, error) {
	var user models.AuthUser
	if err := r.db.Where("confirmation_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing account
func (r *PostgresUserRepository) UpdateUser(user *models.AuthUser) error {
	return r.db.Save(user).Error
}
