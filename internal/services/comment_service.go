package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"art-contest/internal/apperr"
	"art-contest/internal/models"
	"art-contest/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxCommentLength = 2000

type CommentService struct {
	repo *repository.Repository
}

func NewCommentService(repo *repository.Repository) *CommentService {
	return &CommentService{repo: repo}
}

// CreateComment adds a comment to a submission
func (s *CommentService) CreateComment(ctx context.Context, userID, submissionID uuid.UUID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Invalid("Missing content", "content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, apperr.Invalid("Comment too long", "content must be at most 2000 characters")
	}

	if _, err := s.repo.GetSubmissionByID(ctx, submissionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("Submission not found")
		}
		return nil, apperr.Wrap(err, "failed to load submission")
	}

	comment := &models.Comment{
		SubmissionID: submissionID,
		UserID:       userID,
		Content:      content,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, apperr.Wrap(err, "failed to create comment")
	}
	return comment, nil
}

// ListComments lists a submission's comments, oldest first
func (s *CommentService) ListComments(ctx context.Context, submissionID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	comments, err := s.repo.ListComments(ctx, submissionID, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list comments")
	}
	return comments, nil
}
