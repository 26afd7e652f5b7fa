package repository

import (
	"errors"
	"strings"

	"github.com/proveo-app/proveo/app/models"
	"gorm.io/gorm"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a user account
func (r *userRepository) Create(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.db.Create(user).Error
}

// GetByID retrieves a user by id
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists checks whether an email is already registered
func (r *userRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

// Ensure mirrors an externally authenticated principal into the users table.
// Tokens can be issued by an outside identity provider, so the principal may
// have no local row yet; the providers and reviews foreign keys need one.
func (r *userRepository) Ensure(user *models.User) error {
	return ensureUserRow(r.db, user)
}

func ensureUserRow(db *gorm.DB, user *models.User) error {
	if user.ID == 0 {
		return errors.New("user id is required")
	}
	attrs := models.User{
		ID:    user.ID,
		Email: strings.ToLower(strings.TrimSpace(user.Email)),
		Role:  user.Role,
	}
	if attrs.Role == "" {
		attrs.Role = models.RoleProvider
	}
	var row models.User
	return db.Where("id = ?", user.ID).Attrs(attrs).FirstOrCreate(&row).Error
}
