package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"art-contest/internal/models"
	"art-contest/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateDrawClosesPreviousAndAttachesLooseEntries(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	artist := testutil.CreateProfile(t, db, "artist", "")

	_, err := NewProcedures(db).AddJackpotEntries(ctx, AddEntriesParams{
		UserID: artist.ID, EntryCount: 4, SourceReason: models.EntrySourceSubmission,
	})
	require.NoError(t, err)

	first := &models.JackpotDraw{StartDate: time.Now(), EndDate: time.Now().Add(time.Hour), PrizeAmount: decimal.Zero}
	require.NoError(t, repo.CreateDraw(ctx, first))
	assert.Equal(t, 4, first.TotalEntries)

	second := &models.JackpotDraw{StartDate: time.Now(), EndDate: time.Now().Add(time.Hour), PrizeAmount: decimal.Zero}
	require.NoError(t, repo.CreateDraw(ctx, second))
	assert.Equal(t, 0, second.TotalEntries)

	active, err := repo.GetActiveDraw(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	reloaded, err := repo.GetDrawByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)
}

func TestRankSubmissionsBreaksTiesByCreation(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	artist := testutil.CreateProfile(t, db, "artist", "")
	contest := testutil.CreateContest(t, db, artist.ID, time.Now())

	base := time.Now().Add(-time.Hour)
	mk := func(votes int, offset time.Duration) uuid.UUID {
		s := &models.Submission{
			ContestID: contest.ID, UserID: artist.ID, Title: "x", ImageURL: "u",
			VoteCount: votes, CreatedAt: base.Add(offset),
		}
		require.NoError(t, db.Create(s).Error)
		return s.ID
	}
	late := mk(7, 2*time.Minute)
	early := mk(7, time.Minute)
	top := mk(9, 3*time.Minute)
	mk(1, 0)

	ranked, err := repo.RankSubmissions(context.Background(), contest.ID, 3)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, []uuid.UUID{top, early, late}, []uuid.UUID{ranked[0].ID, ranked[1].ID, ranked[2].ID})
}

func TestMarkContestCompletedOnlyOnce(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	admin := testutil.CreateProfile(t, db, "admin", models.RoleAdmin)
	contest := testutil.CreateContest(t, db, admin.ID, time.Now().Add(-time.Minute))

	due, err := repo.ListContestsDueForResults(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, due, 1)

	require.NoError(t, repo.MarkContestCompleted(ctx, contest.ID, time.Now()))
	err = repo.MarkContestCompleted(ctx, contest.ID, time.Now())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	due, err = repo.ListContestsDueForResults(ctx, time.Now())
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestGetActiveVoteMultiplier(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	voter := testutil.CreateProfile(t, db, "voter", "")
	contestID := uuid.New()
	now := time.Now()

	m, err := repo.GetActiveVoteMultiplier(ctx, voter.ID, contestID, now)
	require.NoError(t, err)
	assert.Nil(t, m)

	require.NoError(t, repo.CreateVoteMultiplier(ctx, &models.VoteMultiplier{
		UserID: voter.ID, Multiplier: 3, ExpiresAt: now.Add(-time.Minute),
	}))
	require.NoError(t, repo.CreateVoteMultiplier(ctx, &models.VoteMultiplier{
		UserID: voter.ID, Multiplier: 2, ExpiresAt: now.Add(time.Hour),
	}))

	m, err = repo.GetActiveVoteMultiplier(ctx, voter.ID, contestID, now)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 2, m.Multiplier)
}

func TestSubmissionPinLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	artist := testutil.CreateProfile(t, db, "artist", "")
	contest := testutil.CreateContest(t, db, artist.ID, time.Now().Add(time.Hour))
	submission := testutil.CreateSubmission(t, db, contest.ID, artist.ID, 0)

	require.NoError(t, repo.CreateSubmissionPin(ctx, &models.SubmissionPin{
		SubmissionID: submission.ID, UserID: artist.ID, ExpiresAt: time.Now().Add(time.Hour),
	}))
	pinned, err := repo.GetSubmissionByID(ctx, submission.ID)
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)

	n, err := repo.UnpinExpired(ctx, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestLikesAndCounters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	artist := testutil.CreateProfile(t, db, "artist", "")
	fan := testutil.CreateProfile(t, db, "fan", "")
	contest := testutil.CreateContest(t, db, artist.ID, time.Now().Add(time.Hour))
	submission := testutil.CreateSubmission(t, db, contest.ID, artist.ID, 0)

	require.NoError(t, repo.CreateLike(ctx, &models.Like{SubmissionID: submission.ID, UserID: fan.ID}))
	assert.Error(t, repo.CreateLike(ctx, &models.Like{SubmissionID: submission.ID, UserID: fan.ID}))

	like, err := repo.FindLike(ctx, submission.ID, fan.ID)
	require.NoError(t, err)
	require.NotNil(t, like)

	require.NoError(t, repo.AdjustLikeCount(ctx, submission.ID, 1))
	require.NoError(t, repo.IncrementVoteCount(ctx, submission.ID, 2))
	assert.ErrorIs(t, repo.IncrementVoteCount(ctx, uuid.New(), 1), gorm.ErrRecordNotFound)

	reloaded, err := repo.GetSubmissionByID(ctx, submission.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.LikeCount)
	assert.Equal(t, 2, reloaded.VoteCount)
}

func TestCreateVoteDuplicateMapsToErrDuplicateVote(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	artist := testutil.CreateProfile(t, db, "artist", "")
	contest := testutil.CreateContest(t, db, artist.ID, time.Now().Add(time.Hour))
	submission := testutil.CreateSubmission(t, db, contest.ID, artist.ID, 0)

	ballot := func() *models.Vote {
		return &models.Vote{SubmissionID: submission.ID, VoterID: artist.ID, Category: models.VoteCategoryCommunity, Weight: 1}
	}
	require.NoError(t, repo.CreateVote(ctx, ballot()))

	err := repo.CreateVote(ctx, ballot())
	assert.ErrorIs(t, err, ErrDuplicateVote)

	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
}
