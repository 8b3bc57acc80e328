package services

import (
	"context"
	"errors"

	"art-contest/internal/apperr"
	"art-contest/internal/logger"
	"art-contest/internal/models"
	"art-contest/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	ActionDrawWinner     = "jackpot_draw_winner"
	ActionCreateDraw     = "jackpot_create_draw"
	ActionAwardEntries   = "jackpot_award_entries"
	ActionProcessResults = "competition_process_results"
	ActionCreateContest  = "contest_create"
	ActionUpdateContest  = "contest_update"
	ActionSetRole        = "profile_set_role"
)

type AdminService struct {
	repo *repository.Repository
}

func NewAdminService(repo *repository.Repository) *AdminService {
	return &AdminService{repo: repo}
}

// LogAdminAction writes an audit row and mirrors it to the structured log.
// Audit failures are logged and swallowed.
func (s *AdminService) LogAdminAction(ctx context.Context, adminID uuid.UUID, action string, resourceType string,
	resourceID *uuid.UUID, details map[string]interface{}) {

	fields := logrus.Fields{
		"audit":         true,
		"action":        action,
		"admin_id":      adminID,
		"resource_type": resourceType,
	}
	if resourceID != nil {
		fields["resource_id"] = *resourceID
	}
	for k, v := range details {
		fields[k] = v
	}
	logger.WithFields(fields).Info("admin action")

	adminLog := models.AdminLog{
		AdminID:      adminID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      models.JSONB(details),
	}
	if err := s.repo.CreateAdminLog(ctx, &adminLog); err != nil {
		logger.Warnf("failed to write admin log for %s: %v", action, err)
	}
}

// GetAdminLogs returns admin activity logs
func (s *AdminService) GetAdminLogs(ctx context.Context, limit int, offset int) ([]*models.AdminLog, error) {
	logs, err := s.repo.ListAdminLogs(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list admin logs")
	}
	return logs, nil
}

// ListRevenue returns recorded payments, newest first
func (s *AdminService) ListRevenue(ctx context.Context, limit int, offset int) ([]*models.RevenueTransaction, error) {
	txns, err := s.repo.ListRevenueTransactions(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list revenue")
	}
	return txns, nil
}

// GetPlatformStats returns platform-wide counters
func (s *AdminService) GetPlatformStats(ctx context.Context) (*repository.PlatformStats, error) {
	stats, err := s.repo.GetPlatformStats(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load platform stats")
	}
	return stats, nil
}

// SetRole promotes or demotes a profile. actorID is nil when the change comes
// from an operator tool rather than another admin.
func (s *AdminService) SetRole(ctx context.Context, profileID uuid.UUID, role string, actorID *uuid.UUID) (*models.Profile, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, apperr.Invalid("Invalid role", "role must be user or admin")
	}
	if err := s.repo.UpdateProfileFields(ctx, profileID, map[string]interface{}{"role": role}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Profile not found")
		}
		return nil, apperr.Wrap(err, "failed to update role")
	}

	if actorID != nil {
		s.LogAdminAction(ctx, *actorID, ActionSetRole, "profile", &profileID, map[string]interface{}{"role": role})
	} else {
		logger.WithFields(logrus.Fields{"profile_id": profileID, "role": role}).Info("role changed by operator")
	}

	profile, err := s.repo.GetProfileByID(ctx, profileID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to reload profile")
	}
	return profile, nil
}
