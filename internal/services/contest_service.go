package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"art-contest/internal/apperr"
	"art-contest/internal/models"
	"art-contest/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ContestService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewContestService(repo *repository.Repository) *ContestService {
	return &ContestService{repo: repo, now: time.Now}
}

type CreateContestInput struct {
	Title       string
	Description string
	Theme       string
	StartDate   time.Time
	EndDate     time.Time
	PrizePool   decimal.Decimal
}

// CreateContest opens a new contest. Status follows the start date.
func (s *ContestService) CreateContest(ctx context.Context, adminID uuid.UUID, input CreateContestInput) (*models.Contest, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperr.Invalid("Missing title", "title is required")
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, apperr.Invalid("Invalid contest period", "endDate must be after startDate")
	}
	if input.PrizePool.IsNegative() {
		return nil, apperr.Invalid("Invalid prize pool", "prizePool must not be negative")
	}

	status := models.ContestStatusActive
	if input.StartDate.After(s.now()) {
		status = models.ContestStatusUpcoming
	}

	contest := &models.Contest{
		Title:       title,
		Description: input.Description,
		Theme:       input.Theme,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      status,
		PrizePool:   input.PrizePool.Round(2),
		CreatedBy:   adminID,
	}
	if err := s.repo.CreateContest(ctx, contest); err != nil {
		return nil, apperr.Wrap(err, "failed to create contest")
	}
	return contest, nil
}

// GetContest retrieves a contest by ID
func (s *ContestService) GetContest(ctx context.Context, id uuid.UUID) (*models.Contest, error) {
	contest, err := s.repo.GetContestByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("Contest not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load contest")
	}
	return contest, nil
}

// ListContests lists contests, optionally filtered by status
func (s *ContestService) ListContests(ctx context.Context, status string, limit, offset int) ([]*models.Contest, error) {
	filter := models.ContestStatus(status)
	switch filter {
	case "", models.ContestStatusUpcoming, models.ContestStatusActive, models.ContestStatusVoting, models.ContestStatusCompleted:
	default:
		return nil, apperr.Invalid("Invalid status", "status must be upcoming, active, voting or completed")
	}

	contests, err := s.repo.ListContests(ctx, filter, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list contests")
	}
	return contests, nil
}

// UpdateContestInput holds the editable fields; nil leaves a field unchanged
type UpdateContestInput struct {
	Title       *string
	Description *string
	Theme       *string
	EndDate     *time.Time
	Status      *string
}

// UpdateContest edits a contest that has not been completed. Completion only
// happens through results processing.
func (s *ContestService) UpdateContest(ctx context.Context, id uuid.UUID, input UpdateContestInput) (*models.Contest, error) {
	contest, err := s.GetContest(ctx, id)
	if err != nil {
		return nil, err
	}
	if contest.Status == models.ContestStatusCompleted || contest.ResultsProcessedAt != nil {
		return nil, apperr.Invalid("Contest already completed", "completed contests cannot be edited")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperr.Invalid("Missing title", "title must not be empty")
		}
		contest.Title = title
	}
	if input.Description != nil {
		contest.Description = *input.Description
	}
	if input.Theme != nil {
		contest.Theme = *input.Theme
	}
	if input.EndDate != nil {
		if !input.EndDate.After(contest.StartDate) {
			return nil, apperr.Invalid("Invalid contest period", "endDate must be after startDate")
		}
		contest.EndDate = *input.EndDate
	}
	if input.Status != nil {
		switch status := models.ContestStatus(*input.Status); status {
		case models.ContestStatusUpcoming, models.ContestStatusActive, models.ContestStatusVoting:
			contest.Status = status
		default:
			return nil, apperr.Invalid("Invalid status", "status must be upcoming, active or voting")
		}
	}

	if err := s.repo.UpdateContest(ctx, contest); err != nil {
		return nil, apperr.Wrap(err, "failed to update contest")
	}
	return contest, nil
}
