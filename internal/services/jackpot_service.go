package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"art-contest/internal/apperr"
	"art-contest/internal/logger"
	"art-contest/internal/models"
	"art-contest/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNoActiveDraw = errors.New("no active draw")

// Entries awarded per finishing place
var placementAwards = []struct {
	Entries int
	Reason  models.EntrySource
}{
	{10, models.EntrySourceCompetitionWin},
	{5, models.EntrySourceCompetitionPlacement},
	{3, models.EntrySourceCompetitionPlacement},
}

// JackpotService owns the draw lifecycle. Entry and winner writes are
// delegated to the transactional procedures.
type JackpotService struct {
	repo  *repository.Repository
	procs repository.Procedures
}

func NewJackpotService(repo *repository.Repository, procs repository.Procedures) *JackpotService {
	return &JackpotService{repo: repo, procs: procs}
}

// AwardEntries grants entries to a user
func (s *JackpotService) AwardEntries(ctx context.Context, params repository.AddEntriesParams) (*models.JackpotEntry, error) {
	entry, err := s.procs.AddJackpotEntries(ctx, params)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidEntryCount):
			return nil, apperr.Invalid("Invalid entry count", err.Error())
		case errors.Is(err, repository.ErrInvalidSourceReason):
			return nil, apperr.Invalid("Invalid source reason", fmt.Sprintf("%q is not a known source reason", params.SourceReason))
		case errors.Is(err, repository.ErrProfileNotFound):
			return nil, apperr.NotFoundf("User not found")
		}
		return nil, apperr.Wrap(err, "failed to award jackpot entries")
	}
	return entry, nil
}

// AwardCompetitionWinners grants placement entries to the top three submissions.
// ranked must already be ordered by finishing place.
func (s *JackpotService) AwardCompetitionWinners(ctx context.Context, contestID uuid.UUID, ranked []*models.Submission) []SideEffect {
	var effects []SideEffect
	for place, submission := range ranked {
		if place >= len(placementAwards) {
			break
		}
		award := placementAwards[place]
		artistID := submission.UserID
		effects = append(effects, runSideEffect(fmt.Sprintf("award_place_%d", place+1), func() error {
			_, err := s.AwardEntries(ctx, repository.AddEntriesParams{
				UserID:        artistID,
				EntryCount:    award.Entries,
				SourceReason:  award.Reason,
				CompetitionID: &contestID,
			})
			return err
		}))
	}
	return effects
}

// DrawWinner selects the winner of a draw
func (s *JackpotService) DrawWinner(ctx context.Context, drawID uuid.UUID) (*repository.DrawResult, error) {
	result, err := s.procs.SelectJackpotWinner(ctx, drawID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDrawNotFound):
			return nil, apperr.NotFoundf("Draw not found")
		case errors.Is(err, repository.ErrDrawCompleted):
			return nil, apperr.Invalid("Draw already completed", "")
		case errors.Is(err, repository.ErrNoEntries):
			return nil, apperr.Invalid("Draw has no entries", "")
		}
		return nil, apperr.Wrap(err, "failed to select jackpot winner")
	}

	logger.WithFields(logrus.Fields{
		"draw_id":        result.DrawID,
		"winner_user_id": result.WinnerUserID,
		"total_entries":  result.TotalEntries,
		"participants":   result.ParticipantCount,
	}).Info("jackpot winner selected")
	return result, nil
}

type CreateDrawInput struct {
	PrizeAmount decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time
}

// CreateDraw opens a new draw, closing any draw that was still active
func (s *JackpotService) CreateDraw(ctx context.Context, adminID uuid.UUID, input CreateDrawInput) (*models.JackpotDraw, error) {
	if !input.EndDate.After(input.StartDate) {
		return nil, apperr.Invalid("Invalid draw period", "endDate must be after startDate")
	}
	if input.PrizeAmount.IsNegative() {
		return nil, apperr.Invalid("Invalid prize amount", "prizeAmount must not be negative")
	}

	draw := &models.JackpotDraw{
		PrizeAmount: input.PrizeAmount.Round(2),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedBy:   adminID,
	}
	if err := s.repo.CreateDraw(ctx, draw); err != nil {
		return nil, apperr.Wrap(err, "failed to create draw")
	}
	return draw, nil
}

func (s *JackpotService) ListDraws(ctx context.Context, limit, offset int) ([]*models.JackpotDraw, error) {
	draws, err := s.repo.ListDraws(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list draws")
	}
	return draws, nil
}

// GetActiveDraw returns the open draw, or nil when there is none
func (s *JackpotService) GetActiveDraw(ctx context.Context) (*models.JackpotDraw, error) {
	draw, err := s.repo.GetActiveDraw(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load active draw")
	}
	return draw, nil
}

type DrawDetail struct {
	Draw    *models.JackpotDraw    `json:"draw"`
	Entries []*models.JackpotEntry `json:"entries"`
}

// GetDraw returns a draw with every entry attached to it
func (s *JackpotService) GetDraw(ctx context.Context, id uuid.UUID) (*DrawDetail, error) {
	draw, err := s.repo.GetDrawByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("Draw not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load draw")
	}

	entries, err := s.repo.ListEntriesByDraw(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list draw entries")
	}
	return &DrawDetail{Draw: draw, Entries: entries}, nil
}

type UserEntries struct {
	Entries []*models.JackpotEntry `json:"entries"`
	Total   int                    `json:"total"`
}

// ListEntries returns a user's entry history and current entry total
func (s *JackpotService) ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) (*UserEntries, error) {
	profile, err := s.repo.GetProfileByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("User not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load profile")
	}

	entries, err := s.repo.ListEntriesByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list entries")
	}
	return &UserEntries{Entries: entries, Total: profile.CurrentJackpotEntries}, nil
}

// ContributeToPrizePool adds an amount to the active draw's prize
func (s *JackpotService) ContributeToPrizePool(ctx context.Context, amount decimal.Decimal) error {
	draw, err := s.repo.GetActiveDraw(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoActiveDraw
	}
	if err != nil {
		return fmt.Errorf("failed to load active draw: %w", err)
	}
	if err := s.repo.AddToPrizePool(ctx, draw.ID, amount); err != nil {
		return fmt.Errorf("failed to add to prize pool: %w", err)
	}
	return nil
}
