package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	userRepo "tripdesk/database/repository/user"
	"tripdesk/models"
	"tripdesk/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong email/password pair. The
// handler must not leak which half was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthResponse contains the authenticated user's ID, token, and public fields.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UserService manages back-office accounts.
type UserService interface {
	Register(username, email, password, role string) (*models.User, error)
	Authenticate(email, password string) (*AuthResponse, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user models.User) (*models.User, error)
	DeleteUser(id string) error
	GetAllUsers() ([]models.User, error)
	RevokeToken(userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// Register creates a consultant or admin account with a bcrypt-hashed password.
func (s *DefaultUserService) Register(username, email, password, role string) (*models.User, error) {
	if role == "" {
		role = models.RoleConsultant
	}
	if role != models.RoleConsultant && role != models.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user with email %s already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.Repo.Create(usr); err != nil {
		return nil, err
	}
	return usr, nil
}

// Authenticate verifies credentials and issues a JWT. The token hash is
// cached in the dedicated auth Redis DB so middleware can check revocation.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if usr == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(usr.ID, usr.Email, usr.Role, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	authCache := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + usr.ID
	_ = authCache.Set(context.Background(), cacheKey, utils.HashToken(token), utils.AuthCacheTTL).Err()

	return &AuthResponse{
		ID:       usr.ID,
		Token:    token,
		Username: usr.Username,
		Email:    usr.Email,
		Role:     usr.Role,
	}, nil
}

// GetUserByID fetches one account.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	return s.Repo.GetByID(id)
}

// GetUserByEmail fetches one account by email.
func (s *DefaultUserService) GetUserByEmail(email string) (*models.User, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, fmt.Errorf("user with email %s not found", email)
	}
	return usr, nil
}

// UpdateUser persists profile changes. The password hash and role are not
// updatable through this path.
func (s *DefaultUserService) UpdateUser(user models.User) (*models.User, error) {
	current, err := s.Repo.GetByID(user.ID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = current.PasswordHash
	user.Role = current.Role
	user.CreatedAt = current.CreatedAt

	if err := s.Repo.Update(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the account and revokes any cached token.
func (s *DefaultUserService) DeleteUser(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	return s.RevokeToken(id)
}

// GetAllUsers lists every account.
func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	return s.Repo.GetAll()
}

// RevokeToken drops the cached token hash, forcing re-authentication.
func (s *DefaultUserService) RevokeToken(userID string) error {
	authCache := utils.GetAuthCacheClient()
	return authCache.Del(context.Background(), utils.AuthCachePrefix+userID).Err()
}
