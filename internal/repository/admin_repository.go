package repository

import (
	"context"
	"fmt"

	"art-contest/internal/models"

	"github.com/shopspring/decimal"
)

// CreateAdminLog appends an audit row
func (r *Repository) CreateAdminLog(ctx context.Context, entry *models.AdminLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListAdminLogs retrieves audit rows, newest first
func (r *Repository) ListAdminLogs(ctx context.Context, limit int, offset int) ([]*models.AdminLog, error) {
	var logs []*models.AdminLog
	err := r.db.WithContext(ctx).
		Preload("Admin").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// PlatformStats is a point-in-time summary for the admin dashboard
type PlatformStats struct {
	Profiles           int64           `json:"profiles"`
	Contests           int64           `json:"contests"`
	Submissions        int64           `json:"submissions"`
	Votes              int64           `json:"votes"`
	RevenueTotal       decimal.Decimal `json:"revenue_total"`
	PlatformRevenue    decimal.Decimal `json:"platform_revenue"`
	PrizePoolRevenue   decimal.Decimal `json:"prize_pool_revenue"`
	OutstandingEntries int64           `json:"outstanding_entries"`
}

// GetPlatformStats aggregates platform-wide counters
func (r *Repository) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	db := r.db.WithContext(ctx)
	stats := &PlatformStats{}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Profile{}, &stats.Profiles},
		{&models.Contest{}, &stats.Contests},
		{&models.Submission{}, &stats.Submissions},
		{&models.Vote{}, &stats.Votes},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %T: %w", c.model, err)
		}
	}

	var revenue struct {
		Total     decimal.NullDecimal
		Platform  decimal.NullDecimal
		PrizePool decimal.NullDecimal
	}
	if err := db.Model(&models.RevenueTransaction{}).
		Select("SUM(amount_paid) AS total, SUM(platform_cut) AS platform, SUM(prize_pool_contribution) AS prize_pool").
		Scan(&revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	stats.RevenueTotal = revenue.Total.Decimal
	stats.PlatformRevenue = revenue.Platform.Decimal
	stats.PrizePoolRevenue = revenue.PrizePool.Decimal

	if err := db.Model(&models.Profile{}).
		Select("COALESCE(SUM(current_jackpot_entries), 0)").
		Scan(&stats.OutstandingEntries).Error; err != nil {
		return nil, fmt.Errorf("failed to sum entries: %w", err)
	}
	return stats, nil
}
