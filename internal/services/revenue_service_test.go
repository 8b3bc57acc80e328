package services

import (
	"context"
	"testing"
	"time"

	"art-contest/internal/apperr"
	"art-contest/internal/models"
	"art-contest/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSplit(t *testing.T) {
	tests := []struct {
		txType    models.TransactionType
		amount    string
		platform  string
		prizePool string
	}{
		{models.TransactionTypeEntryFee, "100", "40", "60"},
		{models.TransactionTypeSubmissionPin, "300", "60", "240"},
		{models.TransactionTypeVoteMultiplier, "9.99", "2", "7.99"},
		{models.TransactionTypeProfileBoost, "4.999", "1", "4"},
		{models.TransactionTypeEntryFee, "0.05", "0.02", "0.03"},
	}
	for _, tt := range tests {
		t.Run(string(tt.txType)+"_"+tt.amount, func(t *testing.T) {
			split, err := CalculateSplit(tt.txType, decimal.RequireFromString(tt.amount))
			require.NoError(t, err)
			assert.True(t, split.PlatformCut.Equal(decimal.RequireFromString(tt.platform)), "platform cut %s", split.PlatformCut)
			assert.True(t, split.PrizePoolContribution.Equal(decimal.RequireFromString(tt.prizePool)), "prize pool %s", split.PrizePoolContribution)
		})
	}
}

func TestCalculateSplitRejectsBadInput(t *testing.T) {
	_, err := CalculateSplit("gift_card", decimal.NewFromInt(10))
	requireKind(t, err, apperr.BadRequest)

	_, err = CalculateSplit(models.TransactionTypeEntryFee, decimal.Zero)
	requireKind(t, err, apperr.BadRequest)
}

func TestParseCheckoutMetadata(t *testing.T) {
	userID := uuid.New()
	tests := []struct {
		name string
		raw  map[string]string
		ok   bool
	}{
		{"entry fee", map[string]string{"type": "entry_fee", "amount": "5", "user_id": userID.String()}, true},
		{"unknown type", map[string]string{"type": "tip", "amount": "5", "user_id": userID.String()}, false},
		{"bad amount", map[string]string{"type": "entry_fee", "amount": "five", "user_id": userID.String()}, false},
		{"negative amount", map[string]string{"type": "entry_fee", "amount": "-1", "user_id": userID.String()}, false},
		{"missing user", map[string]string{"type": "entry_fee", "amount": "5"}, false},
		{"pin without submission", map[string]string{"type": "submission_pin", "amount": "3", "user_id": userID.String()}, false},
		{"bad contest", map[string]string{"type": "vote_multiplier", "amount": "3", "user_id": userID.String(), "contest_id": "x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := ParseCheckoutMetadata(tt.raw)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, userID, meta.UserID)
				return
			}
			requireKind(t, err, apperr.BadRequest)
		})
	}
}

func TestProcessCheckoutCompletedEntryFee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	buyer := testutil.CreateProfile(t, env.db, "buyer", "")
	draw := testutil.CreateDraw(t, env.db, 100)
	svc := NewRevenueService(env.repo, env.jackpot)

	result, err := svc.ProcessCheckoutCompleted(ctx, "cs_test_1", map[string]string{
		"type":    "entry_fee",
		"amount":  "100",
		"user_id": buyer.ID.String(),
	})
	require.NoError(t, err)
	for _, effect := range result.SideEffects {
		assert.True(t, effect.OK(), "side effect %s failed: %v", effect.Name, effect.Err)
	}
	assert.True(t, result.Transaction.PlatformCut.Equal(decimal.NewFromInt(40)))
	assert.True(t, result.Transaction.PrizePoolContribution.Equal(decimal.NewFromInt(60)))

	var stored models.RevenueTransaction
	require.NoError(t, env.db.First(&stored, "stripe_session_id = ?", "cs_test_1").Error)
	assert.Equal(t, models.TransactionTypeEntryFee, stored.TransactionType)

	var entry models.JackpotEntry
	require.NoError(t, env.db.First(&entry, "user_id = ?", buyer.ID).Error)
	assert.Equal(t, models.EntrySourceEntryFee, entry.SourceReason)
	assert.Equal(t, 1, entry.EntryCount)

	updated, err := env.repo.GetDrawByID(ctx, draw.ID)
	require.NoError(t, err)
	assert.True(t, updated.PrizeAmount.Equal(decimal.NewFromInt(160)), "prize %s", updated.PrizeAmount)
}

func TestProcessCheckoutCompletedPurchases(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	buyer := testutil.CreateProfile(t, env.db, "buyer", "")
	contest := testutil.CreateContest(t, env.db, buyer.ID, time.Now().Add(time.Hour))
	submission := testutil.CreateSubmission(t, env.db, contest.ID, buyer.ID, 0)
	svc := NewRevenueService(env.repo, env.jackpot)

	_, err := svc.ProcessCheckoutCompleted(ctx, "cs_pin", map[string]string{
		"type": "submission_pin", "amount": "300", "user_id": buyer.ID.String(), "submission_id": submission.ID.String(),
	})
	require.NoError(t, err)
	pinned, err := env.repo.GetSubmissionByID(ctx, submission.ID)
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)

	_, err = svc.ProcessCheckoutCompleted(ctx, "cs_mult", map[string]string{
		"type": "vote_multiplier", "amount": "2.50", "user_id": buyer.ID.String(), "contest_id": contest.ID.String(),
	})
	require.NoError(t, err)
	m, err := env.repo.GetActiveVoteMultiplier(ctx, buyer.ID, contest.ID, time.Now())
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 2, m.Multiplier)

	result, err := svc.ProcessCheckoutCompleted(ctx, "cs_boost", map[string]string{
		"type": "profile_boost", "amount": "10", "user_id": buyer.ID.String(),
	})
	require.NoError(t, err)
	featured, err := env.repo.ListBoostedProfiles(ctx, time.Now(), 10)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, buyer.ID, featured[0].ID)

	// no draw is open, so only the contribution step fails
	require.Len(t, result.SideEffects, 2)
	assert.True(t, result.SideEffects[0].OK())
	assert.ErrorIs(t, result.SideEffects[1].Err, ErrNoActiveDraw)

	var count int64
	env.db.Model(&models.RevenueTransaction{}).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestProcessCheckoutCompletedRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRevenueService(env.repo, env.jackpot)

	_, err := svc.ProcessCheckoutCompleted(context.Background(), "cs_bad", map[string]string{
		"type": "donation", "amount": "5", "user_id": uuid.NewString(),
	})
	requireKind(t, err, apperr.BadRequest)

	var count int64
	env.db.Model(&models.RevenueTransaction{}).Count(&count)
	assert.Zero(t, count)
}
