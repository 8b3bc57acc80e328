package models

import (
	"time"

	"github.com/google/uuid"
)

type VoteCategory string

const (
	VoteCategoryCommunity     VoteCategory = "community_vote"
	VoteCategoryJudge         VoteCategory = "judge_vote"
	VoteCategoryPeoplesChoice VoteCategory = "peoples_choice"
)

var VoteCategories = []VoteCategory{
	VoteCategoryCommunity,
	VoteCategoryJudge,
	VoteCategoryPeoplesChoice,
}

func (c VoteCategory) Valid() bool {
	for _, known := range VoteCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Vote is one voter's ballot for a submission in one category
type Vote struct {
	Base
	SubmissionID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_votes_submission_voter_category" json:"submission_id"`
	VoterID      uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_votes_submission_voter_category;index" json:"voter_id"`
	Category     VoteCategory `gorm:"size:32;not null;uniqueIndex:idx_votes_submission_voter_category" json:"category"`
	Weight       int          `gorm:"not null;default:1" json:"weight"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (Vote) TableName() string {
	return "votes"
}

type Comment struct {
	Base
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index" json:"submission_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Author       *Profile  `gorm:"foreignKey:UserID" json:"author,omitempty"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}

type Like struct {
	Base
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_submission_user" json:"submission_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_submission_user" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
