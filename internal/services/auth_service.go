package services

import (
	"context"
	"errors"
	"strings"

	"art-contest/internal/apperr"
	"art-contest/internal/auth"
	"art-contest/internal/logger"
	"art-contest/internal/models"
	"art-contest/internal/repository"
	"art-contest/internal/utils"

	"gorm.io/gorm"
)

const minPasswordLength = 8

// AuthService handles signup and login
type AuthService struct {
	repo *repository.Repository
}

// NewAuthService creates a new AuthService
func NewAuthService(repo *repository.Repository) *AuthService {
	return &AuthService{repo: repo}
}

type SignupInput struct {
	Email    string
	Password string
	Username string
}

type Session struct {
	Token   string          `json:"token"`
	Profile *models.Profile `json:"profile"`
}

// Signup creates a profile and opens a session for it
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if len(input.Password) < minPasswordLength {
		return nil, apperr.Invalid("Password too short", "password must be at least 8 characters")
	}

	if _, err := s.repo.GetProfileByEmail(ctx, email); err == nil {
		return nil, apperr.Invalid("Email already registered", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(err, "failed to look up email")
	}

	username, err := s.pickUsername(ctx, strings.TrimSpace(input.Username), email)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to hash password")
	}

	profile := &models.Profile{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		return nil, apperr.Wrap(err, "failed to create profile")
	}

	logger.Infof("New profile created: %s (ID: %s)", profile.Username, profile.ID)
	return s.openSession(profile)
}

// pickUsername honors a requested name, otherwise derives one from the email
// and falls back to a generated name when that is taken.
func (s *AuthService) pickUsername(ctx context.Context, requested, email string) (string, error) {
	if requested != "" {
		taken, err := s.repo.UsernameExists(ctx, requested)
		if err != nil {
			return "", apperr.Wrap(err, "failed to check username")
		}
		if taken {
			return "", apperr.Invalid("Username already taken", "")
		}
		return requested, nil
	}

	if candidate := utils.UsernameFromEmail(email); len(candidate) >= 3 {
		taken, err := s.repo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", apperr.Wrap(err, "failed to check username")
		}
		if !taken {
			return candidate, nil
		}
	}

	for attempt := 0; attempt < 5; attempt++ {
		candidate, err := utils.GenerateUsername()
		if err != nil {
			return "", apperr.Wrap(err, "failed to generate username")
		}
		taken, err := s.repo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", apperr.Wrap(err, "failed to check username")
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", apperr.New(apperr.Internal, "could not allocate a username")
}

// Login checks credentials and opens a session
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	profile, err := s.repo.GetProfileByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.Unauthenticated, "Invalid email or password")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "failed to look up profile")
	}

	if !auth.CheckPassword(profile.PasswordHash, password) {
		return nil, apperr.New(apperr.Unauthenticated, "Invalid email or password")
	}

	logger.Infof("Profile logged in: %s (ID: %s)", profile.Username, profile.ID)
	return s.openSession(profile)
}

func (s *AuthService) openSession(profile *models.Profile) (*Session, error) {
	token, err := auth.GenerateToken(profile.ID, profile.Role)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to issue token")
	}
	return &Session{Token: token, Profile: profile}, nil
}
