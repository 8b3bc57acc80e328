package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ContestStatus string

const (
	ContestStatusUpcoming  ContestStatus = "upcoming"
	ContestStatusActive    ContestStatus = "active"
	ContestStatusVoting    ContestStatus = "voting"
	ContestStatusCompleted ContestStatus = "completed"
)

// Contest is a themed competition that submissions are entered into
type Contest struct {
	Base
	Title              string          `gorm:"size:255;not null" json:"title"`
	Description        string          `gorm:"type:text" json:"description"`
	Theme              string          `gorm:"size:100" json:"theme"`
	StartDate          time.Time       `gorm:"not null" json:"start_date"`
	EndDate            time.Time       `gorm:"not null;index" json:"end_date"`
	Status             ContestStatus   `gorm:"size:20;not null;index" json:"status"`
	PrizePool          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"prize_pool"`
	CreatedBy          uuid.UUID       `gorm:"type:uuid;not null" json:"created_by"`
	ResultsProcessedAt *time.Time      `json:"results_processed_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func (Contest) TableName() string {
	return "contests"
}

// Submission is one artwork entered into a contest
type Submission struct {
	Base
	ContestID   uuid.UUID `gorm:"type:uuid;not null;index" json:"contest_id"`
	Contest     *Contest  `gorm:"foreignKey:ContestID" json:"contest,omitempty"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Artist      *Profile  `gorm:"foreignKey:UserID" json:"artist,omitempty"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"size:1000;not null" json:"image_url"`
	VoteCount   int       `gorm:"not null;default:0" json:"vote_count"`
	LikeCount   int       `gorm:"not null;default:0" json:"like_count"`
	IsPinned    bool      `json:"is_pinned"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Submission) TableName() string {
	return "submissions"
}
