package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MinEntryCount = 1
	MaxEntryCount = 1000
)

type EntrySource string

const (
	EntrySourceSubmission           EntrySource = "submission"
	EntrySourceVoteReceived         EntrySource = "vote_received"
	EntrySourceCompetitionWin       EntrySource = "competition_win"
	EntrySourceCompetitionPlacement EntrySource = "competition_placement"
	EntrySourceEntryFee             EntrySource = "entry_fee"
	EntrySourceAdminBonus           EntrySource = "admin_bonus"
)

var EntrySources = []EntrySource{
	EntrySourceSubmission,
	EntrySourceVoteReceived,
	EntrySourceCompetitionWin,
	EntrySourceCompetitionPlacement,
	EntrySourceEntryFee,
	EntrySourceAdminBonus,
}

func (s EntrySource) Valid() bool {
	for _, known := range EntrySources {
		if s == known {
			return true
		}
	}
	return false
}

// JackpotDraw is one prize draw period. Only the winner-selection procedure sets WinnerUserID.
type JackpotDraw struct {
	Base
	PrizeAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"prize_amount"`
	StartDate    time.Time       `gorm:"not null" json:"start_date"`
	EndDate      time.Time       `gorm:"not null" json:"end_date"`
	IsActive     bool            `gorm:"not null;index" json:"is_active"`
	WinnerUserID *uuid.UUID      `gorm:"type:uuid" json:"winner_user_id"`
	Winner       *Profile        `gorm:"foreignKey:WinnerUserID" json:"winner,omitempty"`
	TotalEntries int             `gorm:"not null;default:0" json:"total_entries"`
	DrawnAt      *time.Time      `json:"drawn_at"`
	CreatedBy    uuid.UUID       `gorm:"type:uuid" json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (JackpotDraw) TableName() string {
	return "jackpot_draws"
}

// JackpotEntry is append-only. DrawID is nil until a draw is open to take it.
type JackpotEntry struct {
	Base
	UserID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	DrawID        *uuid.UUID  `gorm:"type:uuid;index" json:"draw_id"`
	CompetitionID *uuid.UUID  `gorm:"type:uuid" json:"competition_id,omitempty"`
	SourceReason  EntrySource `gorm:"size:40;not null" json:"source_reason"`
	EntryCount    int         `gorm:"not null" json:"entry_count"`
	CreatedAt     time.Time   `json:"created_at"`
}

func (JackpotEntry) TableName() string {
	return "jackpot_entries"
}
