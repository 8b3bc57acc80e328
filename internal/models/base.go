package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base gives every row a client-generated UUID primary key
type Base struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&Profile{},
		&Contest{},
		&Submission{},
		&Vote{},
		&Comment{},
		&Like{},
		&JackpotDraw{},
		&JackpotEntry{},
		&RevenueTransaction{},
		&SubmissionPin{},
		&VoteMultiplier{},
		&ProfileBoost{},
		&AdminLog{},
	}
}
