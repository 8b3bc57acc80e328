package services

import (
	"testing"
	"time"

	"art-contest/internal/apperr"
	"art-contest/internal/auth"
	"art-contest/internal/repository"
	"art-contest/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db      *gorm.DB
	repo    *repository.Repository
	jackpot *JackpotService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	auth.InitJWT("services-test-secret", time.Hour, time.Minute)

	db := testutil.NewDB(t)
	repo := repository.NewRepository(db)
	return &testEnv{
		db:      db,
		repo:    repo,
		jackpot: NewJackpotService(repo, repository.NewProcedures(db)),
	}
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperr.Is(err, kind), "unexpected error: %v", err)
}
