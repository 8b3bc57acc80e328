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
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type VoteService struct {
	repo    *repository.Repository
	jackpot *JackpotService
	now     func() time.Time
}

func NewVoteService(repo *repository.Repository, jackpot *JackpotService) *VoteService {
	return &VoteService{repo: repo, jackpot: jackpot, now: time.Now}
}

type CastVoteInput struct {
	VoterID      uuid.UUID
	VoterIsAdmin bool
	SubmissionID uuid.UUID
	Category     models.VoteCategory
}

// VoteResult carries the stored vote and the outcome of each follow-up step
type VoteResult struct {
	Vote        *models.Vote `json:"vote"`
	SideEffects []SideEffect `json:"-"`
}

// CastVote records a ballot. Only the insert can fail the call; the vote
// count bump and the artist's jackpot entry are best effort.
func (s *VoteService) CastVote(ctx context.Context, input CastVoteInput) (*VoteResult, error) {
	if !input.Category.Valid() {
		return nil, apperr.Invalid("Invalid category", fmt.Sprintf("category must be one of %v", models.VoteCategories))
	}
	if input.Category == models.VoteCategoryJudge && !input.VoterIsAdmin {
		return nil, apperr.New(apperr.Forbidden, "Only judges can cast judge votes")
	}

	submission, err := s.repo.GetSubmissionByID(ctx, input.SubmissionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("Submission not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load submission")
	}

	existing, err := s.repo.FindVote(ctx, input.SubmissionID, input.VoterID, input.Category)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to check existing vote")
	}
	if existing != nil {
		return nil, apperr.Invalid("You have already voted in this category", "")
	}

	weight := s.voteWeight(ctx, input.VoterID, submission.ContestID)
	vote := &models.Vote{
		SubmissionID: input.SubmissionID,
		VoterID:      input.VoterID,
		Category:     input.Category,
		Weight:       weight,
	}
	if err := s.repo.CreateVote(ctx, vote); err != nil {
		if errors.Is(err, repository.ErrDuplicateVote) {
			return nil, apperr.Invalid("You have already voted in this category", "")
		}
		return nil, apperr.Wrap(err, "failed to record vote")
	}

	effects := []SideEffect{
		runSideEffect("increment_vote_count", func() error {
			return s.repo.IncrementVoteCount(ctx, input.SubmissionID, weight)
		}),
	}
	if input.Category == models.VoteCategoryCommunity {
		artistID := submission.UserID
		effects = append(effects, runSideEffect("award_vote_received_entry", func() error {
			_, err := s.jackpot.AwardEntries(ctx, repository.AddEntriesParams{
				UserID:        artistID,
				EntryCount:    1,
				SourceReason:  models.EntrySourceVoteReceived,
				CompetitionID: &submission.ContestID,
			})
			return err
		}))
	}
	logSideEffects("cast_vote", logrus.Fields{
		"submission_id": input.SubmissionID,
		"voter_id":      input.VoterID,
		"category":      input.Category,
	}, effects)

	return &VoteResult{Vote: vote, SideEffects: effects}, nil
}

// voteWeight is the voter's active multiplier, or 1
func (s *VoteService) voteWeight(ctx context.Context, voterID, contestID uuid.UUID) int {
	m, err := s.repo.GetActiveVoteMultiplier(ctx, voterID, contestID, s.now())
	if err != nil {
		logger.Warnf("failed to load vote multiplier for %s: %v", voterID, err)
		return 1
	}
	if m == nil || m.Multiplier < 1 {
		return 1
	}
	return m.Multiplier
}

type VoteSummary struct {
	Tallies      []repository.CategoryTally `json:"tallies"`
	MyCategories []models.VoteCategory      `json:"my_categories"`
}

// GetVoteSummary tallies a submission's votes per category. voterID is nil
// for anonymous callers.
func (s *VoteService) GetVoteSummary(ctx context.Context, submissionID uuid.UUID, voterID *uuid.UUID) (*VoteSummary, error) {
	tallies, err := s.repo.TallyVotes(ctx, submissionID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to tally votes")
	}

	summary := &VoteSummary{Tallies: tallies, MyCategories: []models.VoteCategory{}}
	if voterID != nil {
		votes, err := s.repo.ListVotesByVoter(ctx, submissionID, *voterID)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to load votes")
		}
		for _, v := range votes {
			summary.MyCategories = append(summary.MyCategories, v.Category)
		}
	}
	return summary, nil
}
