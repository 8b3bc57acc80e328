package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"art-contest/internal/apperr"
	"art-contest/internal/models"
	"art-contest/internal/repository"
	"art-contest/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SubmissionService struct {
	repo    *repository.Repository
	jackpot *JackpotService
}

func NewSubmissionService(repo *repository.Repository, jackpot *JackpotService) *SubmissionService {
	return &SubmissionService{repo: repo, jackpot: jackpot}
}

type CreateSubmissionInput struct {
	ContestID   uuid.UUID
	Title       string
	Description string
	ImageURL    string
}

type SubmissionResult struct {
	Submission  *models.Submission `json:"submission"`
	ShareSlug   string             `json:"share_slug"`
	SideEffects []SideEffect       `json:"-"`
}

// CreateSubmission enters an artwork into an open contest and awards the
// artist one jackpot entry.
func (s *SubmissionService) CreateSubmission(ctx context.Context, artistID uuid.UUID, input CreateSubmissionInput) (*SubmissionResult, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperr.Invalid("Missing title", "title is required")
	}
	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, apperr.Invalid("Missing image", "imageUrl is required")
	}

	contest, err := s.repo.GetContestByID(ctx, input.ContestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("Contest not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load contest")
	}
	if contest.Status != models.ContestStatusActive {
		return nil, apperr.Invalid("Contest is not accepting submissions", "")
	}

	submission := &models.Submission{
		ContestID:   contest.ID,
		UserID:      artistID,
		Title:       title,
		Description: input.Description,
		ImageURL:    strings.TrimSpace(input.ImageURL),
	}
	if err := s.repo.CreateSubmission(ctx, submission); err != nil {
		return nil, apperr.Wrap(err, "failed to create submission")
	}

	effects := []SideEffect{
		runSideEffect("award_submission_entry", func() error {
			_, err := s.jackpot.AwardEntries(ctx, repository.AddEntriesParams{
				UserID:        artistID,
				EntryCount:    1,
				SourceReason:  models.EntrySourceSubmission,
				CompetitionID: &contest.ID,
			})
			return err
		}),
	}
	logSideEffects("create_submission", logrus.Fields{"submission_id": submission.ID, "user_id": artistID}, effects)

	return &SubmissionResult{
		Submission:  submission,
		ShareSlug:   utils.ShortSlug(submission.ID),
		SideEffects: effects,
	}, nil
}

// GetSubmission retrieves a submission with its artist
func (s *SubmissionService) GetSubmission(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	submission, err := s.repo.GetSubmissionByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("Submission not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load submission")
	}
	return submission, nil
}

// GetSubmissionBySlug resolves a share slug
func (s *SubmissionService) GetSubmissionBySlug(ctx context.Context, slug string) (*models.Submission, error) {
	id, err := utils.ParseSlug(slug)
	if err != nil {
		return nil, apperr.NotFoundf("Submission not found")
	}
	return s.GetSubmission(ctx, id)
}

// ListSubmissions lists a contest's submissions, pinned first
func (s *SubmissionService) ListSubmissions(ctx context.Context, contestID uuid.UUID, limit, offset int) ([]*models.Submission, error) {
	submissions, err := s.repo.ListSubmissions(ctx, contestID, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list submissions")
	}
	return submissions, nil
}

// ExpirePins clears the pinned flag on submissions whose paid pins lapsed
func (s *SubmissionService) ExpirePins(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.repo.UnpinExpired(ctx, now)
	if err != nil {
		return 0, apperr.Wrap(err, "failed to expire pins")
	}
	return n, nil
}
