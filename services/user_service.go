// services/user_service.go
package services

import (
	"strings"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/repository"
	"github.com/tripexpense/tripexpense-backend/utils"
)

// UserService handles user profile operations
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService() *UserService {
	return &UserService{
		userRepo: repository.NewUserRepository(),
	}
}

// GetUser returns one user profile
func (s *UserService) GetUser(id int) (*models.User, error) {
	return s.userRepo.GetUserByID(id)
}

// ListUsers returns all registered users
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.ListUsers()
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// UpdateUser updates a profile, keeping emails unique
func (s *UserService) UpdateUser(id int, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.EmailExists(email, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.NewBadRequestError("An account with this email already exists")
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = email
	user.PhoneNumber = req.PhoneNumber
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	} else if user.Avatar == "" {
		user.Avatar = avatarFor(user.Name)
	}

	if err := s.userRepo.UpdateUser(user); err != nil {
		return nil, err
	}
	return s.userRepo.GetUserByID(id)
}

// DeleteUser removes an account
func (s *UserService) DeleteUser(id int) error {
	return s.userRepo.DeleteUser(id)
}
