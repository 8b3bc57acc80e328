package repository

import (
	"context"
	"errors"
	"strings"

	"art-contest/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FindVote returns the existing ballot for (submission, voter, category), or nil
func (r *Repository) FindVote(
	ctx context.Context,
	submissionID uuid.UUID,
	voterID uuid.UUID,
	category models.VoteCategory,
) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("submission_id = ? AND voter_id = ? AND category = ?", submissionID, voterID, category).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// ErrDuplicateVote is returned when the unique ballot index rejects an insert
var ErrDuplicateVote = errors.New("vote already recorded")

// CreateVote inserts a ballot
func (r *Repository) CreateVote(ctx context.Context, vote *models.Vote) error {
	err := r.db.WithContext(ctx).Create(vote).Error
	if isUniqueViolation(err) {
		return ErrDuplicateVote
	}
	return err
}

// isUniqueViolation covers translated gorm errors and raw postgres/sqlite messages
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// ListVotesByVoter retrieves a voter's ballots on one submission
func (r *Repository) ListVotesByVoter(ctx context.Context, submissionID, voterID uuid.UUID) ([]*models.Vote, error) {
	var votes []*models.Vote
	err := r.db.WithContext(ctx).
		Where("submission_id = ? AND voter_id = ?", submissionID, voterID).
		Order("created_at ASC").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

// CategoryTally is the weighted vote total of one category
type CategoryTally struct {
	Category models.VoteCategory `json:"category"`
	Votes    int                 `json:"votes"`
	Weight   int                 `json:"weight"`
}

// TallyVotes groups a submission's ballots by category
func (r *Repository) TallyVotes(ctx context.Context, submissionID uuid.UUID) ([]CategoryTally, error) {
	var tallies []CategoryTally
	err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Select("category, COUNT(*) AS votes, COALESCE(SUM(weight), 0) AS weight").
		Where("submission_id = ?", submissionID).
		Group("category").
		Order("category").
		Scan(&tallies).Error
	if err != nil {
		return nil, err
	}
	return tallies, nil
}

// CreateComment inserts a comment
func (r *Repository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListComments retrieves a submission's comments, oldest first
func (r *Repository) ListComments(
	ctx context.Context,
	submissionID uuid.UUID,
	limit int,
	offset int,
) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// FindLike returns the user's like on a submission, or nil
func (r *Repository) FindLike(ctx context.Context, submissionID, userID uuid.UUID) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("submission_id = ? AND user_id = ?", submissionID, userID).
		First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// CreateLike inserts a like
func (r *Repository) CreateLike(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// DeleteLike removes a like
func (r *Repository) DeleteLike(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Like{}).Error
}

// CountLikes counts likes on a submission
func (r *Repository) CountLikes(ctx context.Context, submissionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("submission_id = ?", submissionID).Count(&count).Error
	return count, err
}
