// services/auth_service.go
package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tripexpense/tripexpense-backend/models"
	"github.com/tripexpense/tripexpense-backend/repository"
	"github.com/tripexpense/tripexpense-backend/utils"
)

const tokenLifetime = 30 * 24 * time.Hour

// AuthService handles registration, login and JWT issuing
type AuthService struct {
	userRepo *repository.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService() *AuthService {
	return &AuthService{
		userRepo: repository.NewUserRepository(),
	}
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}
	return []byte(secret)
}

// Register creates an account and returns a signed token
func (s *AuthService) Register(req *models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(req.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.NewBadRequestError("An account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber:  req.PhoneNumber,
		Avatar:       avatarFor(req.Name),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

// Login verifies credentials and returns a signed token
func (s *AuthService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NewUnauthorizedError("Invalid email or password")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, utils.NewUnauthorizedError("Invalid email or password")
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		return nil, err
	}
	return s.buildAuthResponse(user)
}

// ChangePassword verifies the current password and stores a new hash
func (s *AuthService) ChangePassword(userID int, req *models.ChangePasswordRequest) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return utils.NewUnauthorizedError("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}
	return s.userRepo.UpdatePassword(userID, string(hash))
}

func (s *AuthService) buildAuthResponse(user *models.User) (*models.AuthResponse, error) {
	token, expiresAt, err := GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Avatar:    user.Avatar,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GenerateToken signs a 30-day HMAC token identifying the user
func GenerateToken(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().UTC().Add(tokenLifetime)
	claims := jwt.MapClaims{
		"sub":   strconv.Itoa(user.ID),
		"email": user.Email,
		"name":  user.Name,
		"jti":   uuid.NewString(),
		"iat":   time.Now().UTC().Unix(),
		"exp":   expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %v", err)
	}
	return signed, expiresAt, nil
}

// ParseToken validates a token string and returns the user id it carries
func ParseToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, utils.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, utils.NewUnauthorizedError("Invalid token claims")
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, utils.NewUnauthorizedError("Invalid token claims")
	}
	userID, err := strconv.Atoi(sub)
	if err != nil {
		return 0, utils.NewUnauthorizedError("Invalid token claims")
	}
	return userID, nil
}

func avatarFor(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return strings.ToUpper(string([]rune(trimmed)[0]))
}
