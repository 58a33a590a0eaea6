package repository

import (
	"tasktracker/internal/models"
	"gorm.io/gorm"
)

// publicUserColumns are the columns selected on default user reads. The
// password digest is write-only from the API's perspective and must be
// requested explicitly via FindByEmailWithDigest.
var publicUserColumns = []string{"id", "name", "email", "created_at", "updated_at"}

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Select(publicUserColumns).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by normalized email, excluding the digest
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Select(publicUserColumns).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailWithDigest finds a user by normalized email including the digest
func (r *GormUserRepository) FindByEmailWithDigest(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
