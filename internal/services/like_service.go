package services

import (
	"context"
	"errors"

	"art-contest/internal/apperr"
	"art-contest/internal/models"
	"art-contest/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LikeService struct {
	repo *repository.Repository
}

func NewLikeService(repo *repository.Repository) *LikeService {
	return &LikeService{repo: repo}
}

type LikeStatus struct {
	Count int64 `json:"count"`
	Liked bool  `json:"liked"`
}

// GetStatus counts likes and reports whether the viewer liked the submission.
// viewerID is nil for anonymous callers.
func (s *LikeService) GetStatus(ctx context.Context, submissionID uuid.UUID, viewerID *uuid.UUID) (*LikeStatus, error) {
	count, err := s.repo.CountLikes(ctx, submissionID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to count likes")
	}

	status := &LikeStatus{Count: count}
	if viewerID != nil {
		like, err := s.repo.FindLike(ctx, submissionID, *viewerID)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to load like")
		}
		status.Liked = like != nil
	}
	return status, nil
}

// ToggleLike likes the submission, or removes the like if it already exists
func (s *LikeService) ToggleLike(ctx context.Context, userID, submissionID uuid.UUID) (*LikeStatus, error) {
	if _, err := s.repo.GetSubmissionByID(ctx, submissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Submission not found")
		}
		return nil, apperr.Wrap(err, "failed to load submission")
	}

	existing, err := s.repo.FindLike(ctx, submissionID, userID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to load like")
	}

	delta := 1
	if existing != nil {
		delta = -1
		if err := s.repo.DeleteLike(ctx, existing.ID); err != nil {
			return nil, apperr.Wrap(err, "failed to remove like")
		}
	} else {
		if err := s.repo.CreateLike(ctx, &models.Like{SubmissionID: submissionID, UserID: userID}); err != nil {
			return nil, apperr.Wrap(err, "failed to like submission")
		}
	}

	effects := []SideEffect{
		runSideEffect("adjust_like_count", func() error {
			return s.repo.AdjustLikeCount(ctx, submissionID, delta)
		}),
	}
	logSideEffects("toggle_like", logrus.Fields{"submission_id": submissionID, "user_id": userID}, effects)

	return s.GetStatus(ctx, submissionID, &userID)
}
