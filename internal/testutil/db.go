// Package testutil holds shared fixtures for package tests
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"art-contest/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens an isolated in-memory database with every model migrated
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, model := range models.All() {
		if err := db.AutoMigrate(model); err != nil {
			t.Fatalf("failed to migrate %T: %v", model, err)
		}
	}
	return db
}

// CreateProfile inserts a profile whose password is "password123"
func CreateProfile(t testing.TB, db *gorm.DB, username string, role string) *models.Profile {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if role == "" {
		role = models.RoleUser
	}
	profile := &models.Profile{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.WithContext(context.Background()).Create(profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return profile
}

// CreateContest inserts an active contest that started an hour ago
func CreateContest(t testing.TB, db *gorm.DB, creator uuid.UUID, end time.Time) *models.Contest {
	t.Helper()

	contest := &models.Contest{
		Title:     "Neon Nights",
		Theme:     "cyberpunk",
		StartDate: time.Now().Add(-time.Hour),
		EndDate:   end,
		Status:    models.ContestStatusActive,
		PrizePool: decimal.NewFromInt(100),
		CreatedBy: creator,
	}
	if err := db.Create(contest).Error; err != nil {
		t.Fatalf("failed to create contest: %v", err)
	}
	return contest
}

// CreateSubmission inserts a submission with the given vote count
func CreateSubmission(t testing.TB, db *gorm.DB, contestID, artistID uuid.UUID, votes int) *models.Submission {
	t.Helper()

	submission := &models.Submission{
		ContestID: contestID,
		UserID:    artistID,
		Title:     "Untitled",
		ImageURL:  "https://cdn.example.com/art.png",
		VoteCount: votes,
	}
	if err := db.Create(submission).Error; err != nil {
		t.Fatalf("failed to create submission: %v", err)
	}
	return submission
}

// CreateDraw inserts an active draw directly, bypassing entry attachment
func CreateDraw(t testing.TB, db *gorm.DB, prize int64) *models.JackpotDraw {
	t.Helper()

	draw := &models.JackpotDraw{
		PrizeAmount: decimal.NewFromInt(prize),
		StartDate:   time.Now().Add(-time.Hour),
		EndDate:     time.Now().Add(7 * 24 * time.Hour),
		IsActive:    true,
	}
	if err := db.Create(draw).Error; err != nil {
		t.Fatalf("failed to create draw: %v", err)
	}
	return draw
}
