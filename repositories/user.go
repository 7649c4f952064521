package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gigmarket/api/models"
)

// UserRepository handles database operations for users and profiles.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID retrieves a user by its ID.
func (r *UserRepository) FindByID(id string) (models.User, error) {
	var user models.User
	result := r.db.Preload("Profile.Skills").First(&user, "id = ?", id)
	return user, result.Error
}

// FindByEmail retrieves a user by email.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	result := r.db.First(&user, "email = ?", email)
	return user, result.Error
}

// EmailTaken checks whether an email is already registered.
func (r *UserRepository) EmailTaken(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Create inserts a new user.
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update persists changes to a user.
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete soft-deletes a user.
func (r *UserRepository) Delete(id string) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

// FindWithPagination lists users with an optional role filter.
func (r *UserRepository) FindWithPagination(role string, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var totalCount int64

	db := r.db.Model(&models.User{})
	if role != "" {
		db = db.Where("role = ?", role)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at desc").Limit(limit).Offset(offset).Find(&users).Error
	return users, totalCount, err
}

// UpsertProfile creates or replaces a user's profile together with its
// skill associations.
func (r *UserRepository) UpsertProfile(profile *models.Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Profile
		err := tx.First(&existing, "user_id = ?", profile.UserID).Error
		switch {
		case err == nil:
			profile.ID = existing.ID
			profile.CreatedAt = existing.CreatedAt
			if err := tx.Save(profile).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(profile).Error; err != nil {
				return err
			}
		default:
			return err
		}
		return tx.Model(profile).Association("Skills").Replace(profile.Skills)
	})
}

// FindOrCreateSkills resolves skill names to rows, creating missing ones.
func (r *UserRepository) FindOrCreateSkills(names []string) ([]models.Skill, error) {
	return findOrCreateSkills(r.db, names)
}

func findOrCreateSkills(db *gorm.DB, names []string) ([]models.Skill, error) {
	skills := make([]models.Skill, 0, len(names))
	for _, name := range names {
		var skill models.Skill
		err := db.Where("name = ?", name).FirstOrCreate(&skill, models.Skill{Name: name}).Error
		if err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, nil
}
