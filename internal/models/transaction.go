package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeEntryFee       TransactionType = "entry_fee"
	TransactionTypeSubmissionPin  TransactionType = "submission_pin"
	TransactionTypeVoteMultiplier TransactionType = "vote_multiplier"
	TransactionTypeProfileBoost   TransactionType = "profile_boost"
)

// RevenueTransaction records how one payment was split between the platform and the prize pool
type RevenueTransaction struct {
	Base
	UserID                uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	TransactionType       TransactionType `gorm:"size:50;not null;index" json:"transaction_type"`
	AmountPaid            decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount_paid"`
	PlatformCut           decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"platform_cut"`
	PrizePoolContribution decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"prize_pool_contribution"`
	StripeSessionID       string          `gorm:"size:255;index" json:"stripe_session_id"`
	CreatedAt             time.Time       `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for RevenueTransaction model
func (RevenueTransaction) TableName() string {
	return "revenue_transactions"
}

type SubmissionPin struct {
	Base
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index" json:"submission_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func (SubmissionPin) TableName() string {
	return "submission_pins"
}

type VoteMultiplier struct {
	Base
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ContestID  *uuid.UUID `gorm:"type:uuid" json:"contest_id,omitempty"`
	Multiplier int        `gorm:"not null" json:"multiplier"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (VoteMultiplier) TableName() string {
	return "vote_multipliers"
}

type ProfileBoost struct {
	Base
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProfileBoost) TableName() string {
	return "profile_boosts"
}
