package services

import (
	"context"
	"errors"
	"time"

	"art-contest/internal/apperr"
	"art-contest/internal/logger"
	"art-contest/internal/models"
	"art-contest/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ResultsService struct {
	repo    *repository.Repository
	jackpot *JackpotService
	now     func() time.Time
}

func NewResultsService(repo *repository.Repository, jackpot *JackpotService) *ResultsService {
	return &ResultsService{repo: repo, jackpot: jackpot, now: time.Now}
}

type ContestResults struct {
	ContestID   uuid.UUID            `json:"contest_id"`
	Winners     []*models.Submission `json:"winners"`
	SideEffects []SideEffect         `json:"-"`
}

// ProcessResults closes a contest, ranks its submissions and awards jackpot
// entries to the top three artists.
func (s *ResultsService) ProcessResults(ctx context.Context, contestID uuid.UUID) (*ContestResults, error) {
	contest, err := s.repo.GetContestByID(ctx, contestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("Contest not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load contest")
	}
	if contest.Status == models.ContestStatusCompleted || contest.ResultsProcessedAt != nil {
		return nil, apperr.Invalid("Contest results already processed", "")
	}

	ranked, err := s.repo.RankSubmissions(ctx, contestID, len(placementAwards))
	if err != nil {
		return nil, apperr.Wrap(err, "failed to rank submissions")
	}

	if err := s.repo.MarkContestCompleted(ctx, contestID, s.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Invalid("Contest results already processed", "")
		}
		return nil, apperr.Wrap(err, "failed to complete contest")
	}

	effects := s.jackpot.AwardCompetitionWinners(ctx, contestID, ranked)
	fields := logrus.Fields{"contest_id": contestID, "winners": len(ranked)}
	logSideEffects("process_results", fields, effects)
	logger.WithFields(fields).Info("contest results processed")

	return &ContestResults{ContestID: contestID, Winners: ranked, SideEffects: effects}, nil
}

// ProcessDueContests processes every contest whose end date has passed and
// returns how many were completed.
func (s *ResultsService) ProcessDueContests(ctx context.Context) (int, error) {
	due, err := s.repo.ListContestsDueForResults(ctx, s.now())
	if err != nil {
		return 0, apperr.Wrap(err, "failed to list due contests")
	}

	processed := 0
	for _, contest := range due {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}
		if _, err := s.ProcessResults(ctx, contest.ID); err != nil {
			logger.Errorf("failed to process results for contest %s: %v", contest.ID, err)
			continue
		}
		processed++
	}
	return processed, nil
}
