package repository

import (
	"context"
	"time"

	"art-contest/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateContest creates a new contest
func (r *Repository) CreateContest(ctx context.Context, contest *models.Contest) error {
	return r.db.WithContext(ctx).Create(contest).Error
}

// GetContestByID retrieves a contest by ID
func (r *Repository) GetContestByID(ctx context.Context, id uuid.UUID) (*models.Contest, error) {
	var contest models.Contest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&contest).Error
	if err != nil {
		return nil, err
	}
	return &contest, nil
}

// UpdateContest saves every column of a contest
func (r *Repository) UpdateContest(ctx context.Context, contest *models.Contest) error {
	return r.db.WithContext(ctx).Save(contest).Error
}

// ListContests retrieves contests, optionally filtered by status
func (r *Repository) ListContests(
	ctx context.Context,
	status models.ContestStatus,
	limit int,
	offset int,
) ([]*models.Contest, error) {
	var contests []*models.Contest
	query := r.db.WithContext(ctx).Model(&models.Contest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.
		Order("start_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&contests).Error
	if err != nil {
		return nil, err
	}
	return contests, nil
}

// ListContestsDueForResults finds contests that have ended but were never processed
func (r *Repository) ListContestsDueForResults(ctx context.Context, now time.Time) ([]*models.Contest, error) {
	var contests []*models.Contest
	err := r.db.WithContext(ctx).
		Where("end_date <= ? AND results_processed_at IS NULL", now).
		Order("end_date ASC").
		Find(&contests).Error
	if err != nil {
		return nil, err
	}
	return contests, nil
}

// MarkContestCompleted flips a contest to completed exactly once.
// Returns gorm.ErrRecordNotFound when it was already processed.
func (r *Repository) MarkContestCompleted(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.Contest{}).
		Where("id = ? AND results_processed_at IS NULL", id).
		Updates(map[string]interface{}{
			"status":               models.ContestStatusCompleted,
			"results_processed_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateSubmission creates a new submission
func (r *Repository) CreateSubmission(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

// GetSubmissionByID retrieves a submission with its artist
func (r *Repository) GetSubmissionByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).Preload("Artist").Where("id = ?", id).First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListSubmissions retrieves a contest's submissions, pinned first
func (r *Repository) ListSubmissions(
	ctx context.Context,
	contestID uuid.UUID,
	limit int,
	offset int,
) ([]*models.Submission, error) {
	var submissions []*models.Submission
	err := r.db.WithContext(ctx).
		Preload("Artist").
		Where("contest_id = ?", contestID).
		Order("is_pinned DESC").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// RankSubmissions orders a contest's submissions by votes, earliest first on ties
func (r *Repository) RankSubmissions(ctx context.Context, contestID uuid.UUID, limit int) ([]*models.Submission, error) {
	var submissions []*models.Submission
	err := r.db.WithContext(ctx).
		Where("contest_id = ?", contestID).
		Order("vote_count DESC").
		Order("created_at ASC").
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// IncrementVoteCount atomically adds delta to a submission's vote count
func (r *Repository) IncrementVoteCount(ctx context.Context, submissionID uuid.UUID, delta int) error {
	return r.adjustCounter(ctx, submissionID, "vote_count", delta)
}

// AdjustLikeCount atomically adds delta to a submission's like count
func (r *Repository) AdjustLikeCount(ctx context.Context, submissionID uuid.UUID, delta int) error {
	return r.adjustCounter(ctx, submissionID, "like_count", delta)
}

func (r *Repository) adjustCounter(ctx context.Context, submissionID uuid.UUID, column string, delta int) error {
	res := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("id = ?", submissionID).
		Update(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
