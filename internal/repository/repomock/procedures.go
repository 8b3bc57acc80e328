// Package repomock provides testify mocks for repository interfaces
package repomock

import (
	"context"

	"art-contest/internal/models"
	"art-contest/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Procedures struct {
	mock.Mock
}

var _ repository.Procedures = (*Procedures)(nil)

func (m *Procedures) AddJackpotEntries(ctx context.Context, params repository.AddEntriesParams) (*models.JackpotEntry, error) {
	args := m.Called(ctx, params)
	if entry, ok := args.Get(0).(*models.JackpotEntry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Procedures) SelectJackpotWinner(ctx context.Context, drawID uuid.UUID) (*repository.DrawResult, error) {
	args := m.Called(ctx, drawID)
	if result, ok := args.Get(0).(*repository.DrawResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}
