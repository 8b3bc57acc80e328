package repository

import (
	"context"
	"errors"
	"time"

	"art-contest/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateRevenueTransaction records a completed payment
func (r *Repository) CreateRevenueTransaction(ctx context.Context, txn *models.RevenueTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

// ListRevenueTransactions retrieves payments, newest first
func (r *Repository) ListRevenueTransactions(ctx context.Context, limit int, offset int) ([]*models.RevenueTransaction, error) {
	var txns []*models.RevenueTransaction
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

// CreateSubmissionPin stores a pin and flags the submission
func (r *Repository) CreateSubmissionPin(ctx context.Context, pin *models.SubmissionPin) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(pin).Error; err != nil {
			return err
		}
		return tx.Model(&models.Submission{}).
			Where("id = ?", pin.SubmissionID).
			Update("is_pinned", true).Error
	})
}

// UnpinExpired clears the pinned flag on submissions whose pins have all lapsed
func (r *Repository) UnpinExpired(ctx context.Context, now time.Time) (int64, error) {
	live := r.db.Model(&models.SubmissionPin{}).Select("submission_id").Where("expires_at > ?", now)
	res := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("is_pinned = ? AND id NOT IN (?)", true, live).
		Update("is_pinned", false)
	return res.RowsAffected, res.Error
}

// CreateVoteMultiplier stores a purchased vote multiplier
func (r *Repository) CreateVoteMultiplier(ctx context.Context, m *models.VoteMultiplier) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// GetActiveVoteMultiplier returns the strongest unexpired multiplier for a
// voter, preferring one scoped to the contest. Returns nil when none apply.
func (r *Repository) GetActiveVoteMultiplier(
	ctx context.Context,
	userID uuid.UUID,
	contestID uuid.UUID,
	now time.Time,
) (*models.VoteMultiplier, error) {
	var m models.VoteMultiplier
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, now).
		Where("contest_id IS NULL OR contest_id = ?", contestID).
		Order("multiplier DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateProfileBoost stores a purchased profile boost
func (r *Repository) CreateProfileBoost(ctx context.Context, boost *models.ProfileBoost) error {
	return r.db.WithContext(ctx).Create(boost).Error
}
