package services

import (
	"context"
	"errors"

	"github.com/motohub/dealership_service/internal/core/domain"
	"github.com/motohub/dealership_service/internal/core/ports"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo     ports.UserRepository
	tokenService ports.TokenService
	logger       ports.LoggerPort
}

func NewAuthService(
	userRepo ports.UserRepository,
	tokenService ports.TokenService,
	logger ports.LoggerPort,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Login checks the credentials against the users table and issues a JWT
// carrying the user's role and branch. Passwords are stored as bcrypt
// hashes; a wrong username and a wrong password both come back as
// ErrInvalidCredentials so the response does not leak which one failed.
func (s *AuthService) Login(ctx context.Context, username string, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown user", map[string]interface{}{
				"username": username,
			})
			return "", nil, domain.ErrInvalidCredentials
		}
		s.logger.Error("Failed to load user", map[string]interface{}{
			"error":    err.Error(),
			"username": username,
		})
		return "", nil, err
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		s.logger.Warn("Login attempt with wrong password", map[string]interface{}{
			"username": username,
		})
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(user)
	if err != nil {
		s.logger.Error("Failed to create token", map[string]interface{}{
			"error":    err.Error(),
			"username": username,
		})
		return "", nil, err
	}

	s.logger.Info("User logged in", map[string]interface{}{
		"username": username,
		"role":     user.Role,
		"branch":   user.Branch,
	})

	return token, user, nil
}

// HashPassword hashes a plaintext password with bcrypt at the default
// cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash against a plaintext candidate.
func CheckPassword(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
