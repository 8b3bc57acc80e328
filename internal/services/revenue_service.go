package services

import (
	"context"
	"fmt"
	"time"

	"art-contest/internal/apperr"
	"art-contest/internal/logger"
	"art-contest/internal/models"
	"art-contest/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	pinDuration         = 7 * 24 * time.Hour
	multiplierDuration  = 24 * time.Hour
	boostDuration       = 7 * 24 * time.Hour
	purchasedMultiplier = 2
)

// platformShare is the fraction of each payment the platform keeps; the rest
// goes to the prize pool.
var platformShare = map[models.TransactionType]decimal.Decimal{
	models.TransactionTypeEntryFee:       decimal.RequireFromString("0.40"),
	models.TransactionTypeSubmissionPin:  decimal.RequireFromString("0.20"),
	models.TransactionTypeVoteMultiplier: decimal.RequireFromString("0.20"),
	models.TransactionTypeProfileBoost:   decimal.RequireFromString("0.20"),
}

type Split struct {
	PlatformCut           decimal.Decimal `json:"platform_cut"`
	PrizePoolContribution decimal.Decimal `json:"prize_pool_contribution"`
}

// CalculateSplit divides a payment between the platform and the prize pool,
// rounded to cents. The two parts always sum to the rounded amount.
func CalculateSplit(txType models.TransactionType, amount decimal.Decimal) (Split, error) {
	share, ok := platformShare[txType]
	if !ok {
		return Split{}, apperr.Invalid("Unknown transaction type", fmt.Sprintf("%q is not a known transaction type", txType))
	}
	if !amount.IsPositive() {
		return Split{}, apperr.Invalid("Invalid amount", "amount must be positive")
	}

	total := amount.Round(2)
	cut := total.Mul(share).Round(2)
	return Split{
		PlatformCut:           cut,
		PrizePoolContribution: total.Sub(cut),
	}, nil
}

// CheckoutMetadata is the metadata attached to a checkout session at creation
type CheckoutMetadata struct {
	Type         models.TransactionType
	Amount       decimal.Decimal
	UserID       uuid.UUID
	SubmissionID *uuid.UUID
	ContestID    *uuid.UUID
}

// ParseCheckoutMetadata validates the raw session metadata
func ParseCheckoutMetadata(raw map[string]string) (*CheckoutMetadata, error) {
	meta := &CheckoutMetadata{Type: models.TransactionType(raw["type"])}
	if _, ok := platformShare[meta.Type]; !ok {
		return nil, apperr.Invalid("Unknown transaction type", fmt.Sprintf("%q is not a known transaction type", raw["type"]))
	}

	amount, err := decimal.NewFromString(raw["amount"])
	if err != nil || !amount.IsPositive() {
		return nil, apperr.Invalid("Invalid amount", fmt.Sprintf("%q is not a positive amount", raw["amount"]))
	}
	meta.Amount = amount

	userID, err := uuid.Parse(raw["user_id"])
	if err != nil {
		return nil, apperr.Invalid("Invalid user_id", "user_id metadata must be a UUID")
	}
	meta.UserID = userID

	if v := raw["submission_id"]; v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, apperr.Invalid("Invalid submission_id", "submission_id metadata must be a UUID")
		}
		meta.SubmissionID = &id
	}
	if meta.Type == models.TransactionTypeSubmissionPin && meta.SubmissionID == nil {
		return nil, apperr.Invalid("Missing submission_id", "submission_pin payments require submission_id")
	}

	if v := raw["contest_id"]; v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, apperr.Invalid("Invalid contest_id", "contest_id metadata must be a UUID")
		}
		meta.ContestID = &id
	}
	return meta, nil
}

type RevenueResult struct {
	Transaction *models.RevenueTransaction `json:"transaction"`
	SideEffects []SideEffect               `json:"side_effects"`
}

type RevenueService struct {
	repo    *repository.Repository
	jackpot *JackpotService
	now     func() time.Time
}

func NewRevenueService(repo *repository.Repository, jackpot *JackpotService) *RevenueService {
	return &RevenueService{repo: repo, jackpot: jackpot, now: time.Now}
}

// ProcessCheckoutCompleted records a completed payment and applies the purchase
func (s *RevenueService) ProcessCheckoutCompleted(ctx context.Context, sessionID string, raw map[string]string) (*RevenueResult, error) {
	meta, err := ParseCheckoutMetadata(raw)
	if err != nil {
		return nil, err
	}
	split, err := CalculateSplit(meta.Type, meta.Amount)
	if err != nil {
		return nil, err
	}

	txn := &models.RevenueTransaction{
		UserID:                meta.UserID,
		TransactionType:       meta.Type,
		AmountPaid:            meta.Amount.Round(2),
		PlatformCut:           split.PlatformCut,
		PrizePoolContribution: split.PrizePoolContribution,
		StripeSessionID:       sessionID,
	}
	if err := s.repo.CreateRevenueTransaction(ctx, txn); err != nil {
		return nil, apperr.Wrap(err, "failed to record revenue transaction")
	}

	effects := []SideEffect{
		runSideEffect(string(meta.Type), func() error { return s.applyPurchase(ctx, meta) }),
		runSideEffect("prize_pool_contribution", func() error {
			return s.jackpot.ContributeToPrizePool(ctx, split.PrizePoolContribution)
		}),
	}

	fields := logrus.Fields{
		"session_id":       sessionID,
		"user_id":          meta.UserID,
		"transaction_type": meta.Type,
		"amount":           txn.AmountPaid.StringFixed(2),
	}
	logSideEffects("checkout_completed", fields, effects)
	logger.WithFields(fields).Info("revenue transaction recorded")

	return &RevenueResult{Transaction: txn, SideEffects: effects}, nil
}

func (s *RevenueService) applyPurchase(ctx context.Context, meta *CheckoutMetadata) error {
	now := s.now()
	switch meta.Type {
	case models.TransactionTypeSubmissionPin:
		return s.repo.CreateSubmissionPin(ctx, &models.SubmissionPin{
			SubmissionID: *meta.SubmissionID,
			UserID:       meta.UserID,
			ExpiresAt:    now.Add(pinDuration),
		})
	case models.TransactionTypeVoteMultiplier:
		return s.repo.CreateVoteMultiplier(ctx, &models.VoteMultiplier{
			UserID:     meta.UserID,
			ContestID:  meta.ContestID,
			Multiplier: purchasedMultiplier,
			ExpiresAt:  now.Add(multiplierDuration),
		})
	case models.TransactionTypeProfileBoost:
		return s.repo.CreateProfileBoost(ctx, &models.ProfileBoost{
			UserID:    meta.UserID,
			ExpiresAt: now.Add(boostDuration),
		})
	case models.TransactionTypeEntryFee:
		_, err := s.jackpot.AwardEntries(ctx, repository.AddEntriesParams{
			UserID:        meta.UserID,
			EntryCount:    1,
			SourceReason:  models.EntrySourceEntryFee,
			CompetitionID: meta.ContestID,
		})
		return err
	}
	return fmt.Errorf("unhandled transaction type %q", meta.Type)
}
