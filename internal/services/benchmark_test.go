package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"art-contest/internal/models"
	"art-contest/internal/repository"
	"art-contest/internal/testutil"

	"github.com/shopspring/decimal"
)

func BenchmarkCalculateSplit(b *testing.B) {
	amount := decimal.RequireFromString("19.99")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := CalculateSplit(models.TransactionTypeEntryFee, amount); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCastVote(b *testing.B) {
	db := testutil.NewDB(b)
	repo := repository.NewRepository(db)
	service := NewVoteService(repo, NewJackpotService(repo, repository.NewProcedures(db)))

	artist := testutil.CreateProfile(b, db, "artist", "")
	contest := testutil.CreateContest(b, db, artist.ID, time.Now().Add(time.Hour))
	submission := testutil.CreateSubmission(b, db, contest.ID, artist.ID, 0)

	voters := make([]*models.Profile, b.N)
	for i := range voters {
		voters[i] = testutil.CreateProfile(b, db, fmt.Sprintf("voter_%d", i), "")
	}

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := service.CastVote(ctx, CastVoteInput{
			VoterID:      voters[i].ID,
			SubmissionID: submission.ID,
			Category:     models.VoteCategoryCommunity,
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}
