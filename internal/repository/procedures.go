package repository

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"art-contest/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidEntryCount   = errors.New("entry count must be between 1 and 1000")
	ErrInvalidSourceReason = errors.New("invalid source reason")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrDrawNotFound        = errors.New("draw not found")
	ErrDrawCompleted       = errors.New("draw already completed")
	ErrNoEntries           = errors.New("draw has no entries")
)

// Procedures are the multi-row writes that must commit atomically
type Procedures interface {
	AddJackpotEntries(ctx context.Context, params AddEntriesParams) (*models.JackpotEntry, error)
	SelectJackpotWinner(ctx context.Context, drawID uuid.UUID) (*DrawResult, error)
}

type AddEntriesParams struct {
	UserID        uuid.UUID
	EntryCount    int
	SourceReason  models.EntrySource
	CompetitionID *uuid.UUID
}

// DrawResult is the outcome of a completed draw
type DrawResult struct {
	DrawID           uuid.UUID       `json:"draw_id"`
	WinnerUserID     uuid.UUID       `json:"winner_user_id"`
	WinnerUsername   string          `json:"winner_username"`
	PrizeAmount      decimal.Decimal `json:"prize_amount"`
	TotalEntries     int             `json:"total_entries"`
	ParticipantCount int             `json:"participant_count"`
}

// EntryTally is one participant's summed entries in a draw
type EntryTally struct {
	UserID  uuid.UUID
	Entries int64
}

type GormProcedures struct {
	db      *gorm.DB
	randInt func(n int64) (int64, error)
	now     func() time.Time
}

type ProceduresOption func(*GormProcedures)

// WithRandSource replaces the crypto/rand picker
func WithRandSource(fn func(n int64) (int64, error)) ProceduresOption {
	return func(p *GormProcedures) {
		p.randInt = fn
	}
}

func WithClock(now func() time.Time) ProceduresOption {
	return func(p *GormProcedures) {
		p.now = now
	}
}

func NewProcedures(db *gorm.DB, opts ...ProceduresOption) *GormProcedures {
	p := &GormProcedures{
		db:      db,
		randInt: cryptoRandInt,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func cryptoRandInt(n int64) (int64, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0, err
	}
	return v.Int64(), nil
}

// AddJackpotEntries records an entry row, bumps the user's running total and
// attaches the entry to the active draw if one is open.
func (p *GormProcedures) AddJackpotEntries(ctx context.Context, params AddEntriesParams) (*models.JackpotEntry, error) {
	if params.EntryCount < models.MinEntryCount || params.EntryCount > models.MaxEntryCount {
		return nil, ErrInvalidEntryCount
	}
	if !params.SourceReason.Valid() {
		return nil, ErrInvalidSourceReason
	}

	entry := &models.JackpotEntry{
		UserID:        params.UserID,
		CompetitionID: params.CompetitionID,
		SourceReason:  params.SourceReason,
		EntryCount:    params.EntryCount,
	}

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Profile{}).
			Where("id = ?", params.UserID).
			Update("current_jackpot_entries", gorm.Expr("current_jackpot_entries + ?", params.EntryCount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProfileNotFound
		}

		var draw models.JackpotDraw
		err := tx.Where("is_active = ?", true).Order("created_at DESC").Take(&draw).Error
		switch {
		case err == nil:
			entry.DrawID = &draw.ID
			if err := tx.Model(&models.JackpotDraw{}).
				Where("id = ?", draw.ID).
				Update("total_entries", gorm.Expr("total_entries + ?", params.EntryCount)).Error; err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// SelectJackpotWinner draws a winner for the given draw, weighted by entry
// count, closes the draw and consumes the participants' entries.
func (p *GormProcedures) SelectJackpotWinner(ctx context.Context, drawID uuid.UUID) (*DrawResult, error) {
	var result *DrawResult

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var draw models.JackpotDraw
		if err := query.Where("id = ?", drawID).Take(&draw).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDrawNotFound
			}
			return err
		}
		if draw.WinnerUserID != nil {
			return ErrDrawCompleted
		}

		var tallies []EntryTally
		if err := tx.Model(&models.JackpotEntry{}).
			Select("user_id, SUM(entry_count) AS entries").
			Where("draw_id = ?", drawID).
			Group("user_id").
			Order("user_id").
			Scan(&tallies).Error; err != nil {
			return fmt.Errorf("failed to tally entries: %w", err)
		}

		var total int64
		for _, t := range tallies {
			total += t.Entries
		}
		if total == 0 {
			return ErrNoEntries
		}

		r, err := p.randInt(total)
		if err != nil {
			return fmt.Errorf("failed to draw random number: %w", err)
		}
		winner := pickWeighted(tallies, r)

		now := p.now()
		if err := tx.Model(&models.JackpotDraw{}).
			Where("id = ?", drawID).
			Updates(map[string]interface{}{
				"winner_user_id": winner,
				"is_active":      false,
				"drawn_at":       now,
				"total_entries":  total,
			}).Error; err != nil {
			return err
		}

		for _, t := range tallies {
			if err := tx.Model(&models.Profile{}).
				Where("id = ?", t.UserID).
				Update("current_jackpot_entries", gorm.Expr(
					"CASE WHEN current_jackpot_entries > ? THEN current_jackpot_entries - ? ELSE 0 END",
					t.Entries, t.Entries,
				)).Error; err != nil {
				return err
			}
		}

		var profile models.Profile
		username := ""
		if err := tx.Select("username").Where("id = ?", winner).Take(&profile).Error; err == nil {
			username = profile.Username
		}

		result = &DrawResult{
			DrawID:           drawID,
			WinnerUserID:     winner,
			WinnerUsername:   username,
			PrizeAmount:      draw.PrizeAmount,
			TotalEntries:     int(total),
			ParticipantCount: len(tallies),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// pickWeighted maps r in [0, total) onto the participant owning that slot
func pickWeighted(tallies []EntryTally, r int64) uuid.UUID {
	var cumulative int64
	for _, t := range tallies {
		cumulative += t.Entries
		if r < cumulative {
			return t.UserID
		}
	}
	return tallies[len(tallies)-1].UserID
}
