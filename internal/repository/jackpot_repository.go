package repository

import (
	"context"

	"art-contest/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateDraw opens a new draw. Any previously active draw is closed and
// entries not yet attached to a draw are moved into the new one.
func (r *Repository) CreateDraw(ctx context.Context, draw *models.JackpotDraw) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.JackpotDraw{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		draw.IsActive = true
		if err := tx.Create(draw).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.JackpotEntry{}).
			Where("draw_id IS NULL").
			Update("draw_id", draw.ID).Error; err != nil {
			return err
		}

		var total int64
		if err := tx.Model(&models.JackpotEntry{}).
			Select("COALESCE(SUM(entry_count), 0)").
			Where("draw_id = ?", draw.ID).
			Scan(&total).Error; err != nil {
			return err
		}
		draw.TotalEntries = int(total)
		return tx.Model(draw).Update("total_entries", draw.TotalEntries).Error
	})
}

// GetDrawByID retrieves a draw with its winner
func (r *Repository) GetDrawByID(ctx context.Context, id uuid.UUID) (*models.JackpotDraw, error) {
	var draw models.JackpotDraw
	err := r.db.WithContext(ctx).Preload("Winner").Where("id = ?", id).First(&draw).Error
	if err != nil {
		return nil, err
	}
	return &draw, nil
}

// GetActiveDraw retrieves the currently open draw
func (r *Repository) GetActiveDraw(ctx context.Context) (*models.JackpotDraw, error) {
	var draw models.JackpotDraw
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		First(&draw).Error
	if err != nil {
		return nil, err
	}
	return &draw, nil
}

// ListDraws retrieves draws, newest first
func (r *Repository) ListDraws(ctx context.Context, limit int, offset int) ([]*models.JackpotDraw, error) {
	var draws []*models.JackpotDraw
	err := r.db.WithContext(ctx).
		Preload("Winner").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&draws).Error
	if err != nil {
		return nil, err
	}
	return draws, nil
}

// AddToPrizePool atomically increases a draw's prize amount
func (r *Repository) AddToPrizePool(ctx context.Context, drawID uuid.UUID, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&models.JackpotDraw{}).
		Where("id = ?", drawID).
		Update("prize_amount", gorm.Expr("prize_amount + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListEntriesByUser retrieves a user's entry history, newest first
func (r *Repository) ListEntriesByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
	offset int,
) ([]*models.JackpotEntry, error) {
	var entries []*models.JackpotEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListEntriesByDraw retrieves every entry attached to a draw
func (r *Repository) ListEntriesByDraw(ctx context.Context, drawID uuid.UUID) ([]*models.JackpotEntry, error) {
	var entries []*models.JackpotEntry
	err := r.db.WithContext(ctx).
		Where("draw_id = ?", drawID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
