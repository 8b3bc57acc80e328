package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"art-contest/internal/apperr"
	"art-contest/internal/models"
	"art-contest/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxBioLength = 500

// ProfileService handles profile reads and edits
type ProfileService struct {
	repo *repository.Repository
}

func NewProfileService(repo *repository.Repository) *ProfileService {
	return &ProfileService{repo: repo}
}

// GetProfile retrieves a profile by ID
func (s *ProfileService) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, err := s.repo.GetProfileByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("Profile not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load profile")
	}
	return profile, nil
}

// RequireAdmin loads a profile and checks it holds the admin role
func (s *ProfileService) RequireAdmin(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, err := s.repo.GetProfileByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.Forbidden, "Admin access required")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load profile")
	}
	if !profile.IsAdmin() {
		return nil, apperr.New(apperr.Forbidden, "Admin access required")
	}
	return profile, nil
}

type UpdateProfileInput struct {
	Bio       *string
	AvatarURL *string
}

// UpdateProfile edits the caller's own bio and avatar
func (s *ProfileService) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*models.Profile, error) {
	fields := map[string]interface{}{}
	if input.Bio != nil {
		bio := strings.TrimSpace(*input.Bio)
		if utf8.RuneCountInString(bio) > maxBioLength {
			return nil, apperr.Invalid("Bio too long", "bio must be at most 500 characters")
		}
		fields["bio"] = bio
	}
	if input.AvatarURL != nil {
		fields["avatar_url"] = strings.TrimSpace(*input.AvatarURL)
	}
	if len(fields) == 0 {
		return s.GetProfile(ctx, id)
	}

	if err := s.repo.UpdateProfileFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Profile not found")
		}
		return nil, apperr.Wrap(err, "failed to update profile")
	}
	return s.GetProfile(ctx, id)
}

// FeaturedProfiles lists profiles with an active boost
func (s *ProfileService) FeaturedProfiles(ctx context.Context, limit int) ([]*models.Profile, error) {
	profiles, err := s.repo.ListBoostedProfiles(ctx, time.Now(), limit)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list featured profiles")
	}
	return profiles, nil
}
