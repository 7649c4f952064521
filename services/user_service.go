package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gigmarket/api/dto"
	"github.com/gigmarket/api/models"
	"github.com/gigmarket/api/repositories"
)

// UserService handles business logic for user accounts and profiles.
type UserService struct {
	userRepo  *repositories.UserRepository
	tokenRepo *repositories.RefreshTokenRepository
}

// NewUserService creates a new user service instance
func NewUserService(userRepo *repositories.UserRepository, tokenRepo *repositories.RefreshTokenRepository) *UserService {
	return &UserService{userRepo: userRepo, tokenRepo: tokenRepo}
}

// ListUsers lists accounts; admin only, enforced here.
func (s *UserService) ListUsers(filter dto.UserFilter, callerRole models.Role) ([]models.User, int64, error) {
	if callerRole != models.RoleAdmin {
		return nil, 0, ErrForbidden
	}
	filter.Normalize()
	users, count, err := s.userRepo.FindWithPagination(filter.Role, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, count, nil
}

// GetUser returns a user's public view. Email is only visible to the user
// themselves and admins.
func (s *UserService) GetUser(id, callerID string, callerRole models.Role) (models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	user.Password = ""
	if callerID != id && callerRole != models.RoleAdmin {
		user.Email = ""
	}
	return user, nil
}

// UpdateUser edits name and/or password. Only the owner or an admin may do
// this.
func (s *UserService) UpdateUser(id string, req dto.UpdateUserRequest, callerID string, callerRole models.Role) (models.User, error) {
	if callerID != id && callerRole != models.RoleAdmin {
		return models.User{}, ErrForbidden
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(&user); err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

// DeleteUser soft-deletes an account and revokes its refresh tokens.
func (s *UserService) DeleteUser(id, callerID string, callerRole models.Role) error {
	if callerID != id && callerRole != models.RoleAdmin {
		return ErrForbidden
	}
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.tokenRepo.RevokeAllForUser(id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}

// UpsertProfile creates or replaces a user's profile. Only the owner or an
// admin may do this; skills are created on first use.
func (s *UserService) UpsertProfile(userID string, req dto.UpsertProfileRequest, callerID string, callerRole models.Role) (models.User, error) {
	if callerID != userID && callerRole != models.RoleAdmin {
		return models.User{}, ErrForbidden
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}

	skills, err := s.userRepo.FindOrCreateSkills(req.Skills)
	if err != nil {
		return models.User{}, err
	}

	profile := models.Profile{
		UserID:     userID,
		Headline:   req.Headline,
		Bio:        req.Bio,
		HourlyRate: req.HourlyRate,
		Location:   req.Location,
		Skills:     skills,
	}
	if err := s.userRepo.UpsertProfile(&profile); err != nil {
		return models.User{}, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}
