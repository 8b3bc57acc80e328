package handlers

import (
	"net/http"
	"time"

	"art-contest/internal/models"
	"art-contest/internal/repository"
	"art-contest/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type JackpotHandler struct {
	jackpotService *services.JackpotService
	profileService *services.ProfileService
	adminService   *services.AdminService
}

func NewJackpotHandler(
	jackpotService *services.JackpotService,
	profileService *services.ProfileService,
	adminService *services.AdminService,
) *JackpotHandler {
	return &JackpotHandler{
		jackpotService: jackpotService,
		profileService: profileService,
		adminService:   adminService,
	}
}

// ListEntries returns the caller's entry history and current total
// GET /api/jackpot/entries
func (h *JackpotHandler) ListEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	limit, offset := pagination(c)
	entries, err := h.jackpotService.ListEntries(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, entries)
}

// AwardEntries grants entries to a user
// POST /api/jackpot/entries (admin)
func (h *JackpotHandler) AwardEntries(c *gin.Context) {
	var req struct {
		UserID        string  `json:"userId" binding:"required"`
		EntryCount    int     `json:"entryCount" binding:"required"`
		SourceReason  string  `json:"sourceReason" binding:"required"`
		CompetitionID *string `json:"competitionId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, ok := parseID(c, "userId", req.UserID)
	if !ok {
		return
	}
	if req.EntryCount < models.MinEntryCount || req.EntryCount > models.MaxEntryCount {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid entryCount",
			"details": "entryCount must be between 1 and 1000",
		})
		return
	}
	reason := models.EntrySource(req.SourceReason)
	if !reason.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid sourceReason",
			"details": "sourceReason must be one of submission, vote_received, competition_win, competition_placement, entry_fee, admin_bonus",
		})
		return
	}

	var competitionID *uuid.UUID
	if req.CompetitionID != nil && *req.CompetitionID != "" {
		id, ok := parseID(c, "competitionId", *req.CompetitionID)
		if !ok {
			return
		}
		competitionID = &id
	}

	entry, err := h.jackpotService.AwardEntries(c.Request.Context(), repository.AddEntriesParams{
		UserID:        userID,
		EntryCount:    req.EntryCount,
		SourceReason:  reason,
		CompetitionID: competitionID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.adminService.LogAdminAction(c.Request.Context(), adminID(c), services.ActionAwardEntries, "profile", &userID,
		map[string]interface{}{
			"entry_count":   req.EntryCount,
			"source_reason": req.SourceReason,
		})

	respondData(c, http.StatusCreated, entry)
}

// ListDraws lists draws, newest first
// GET /api/jackpot/draws
func (h *JackpotHandler) ListDraws(c *gin.Context) {
	limit, offset := pagination(c)
	draws, err := h.jackpotService.ListDraws(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, draws)
}

// GetDraw returns one draw with its entries
// GET /api/jackpot/draws/:id
func (h *JackpotHandler) GetDraw(c *gin.Context) {
	id, ok := parseID(c, "id", c.Param("id"))
	if !ok {
		return
	}

	detail, err := h.jackpotService.GetDraw(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, detail)
}

// CreateDraw opens a new draw
// POST /api/jackpot/draws (admin)
func (h *JackpotHandler) CreateDraw(c *gin.Context) {
	var req struct {
		PrizeAmount decimal.Decimal `json:"prizeAmount"`
		StartDate   time.Time       `json:"startDate" binding:"required"`
		EndDate     time.Time       `json:"endDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	draw, err := h.jackpotService.CreateDraw(c.Request.Context(), adminID(c), services.CreateDrawInput{
		PrizeAmount: req.PrizeAmount,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.adminService.LogAdminAction(c.Request.Context(), adminID(c), services.ActionCreateDraw, "jackpot_draw", &draw.ID,
		map[string]interface{}{
			"prize_amount":  draw.PrizeAmount.StringFixed(2),
			"total_entries": draw.TotalEntries,
		})

	respondData(c, http.StatusCreated, draw)
}

// Active returns the open draw, with the caller's entry total when signed in
// GET /api/jackpot/active
func (h *JackpotHandler) Active(c *gin.Context) {
	draw, err := h.jackpotService.GetActiveDraw(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	data := gin.H{"draw": draw}
	if userID := optionalUserID(c); userID != nil {
		if profile, err := h.profileService.GetProfile(c.Request.Context(), *userID); err == nil {
			data["my_entries"] = profile.CurrentJackpotEntries
		}
	}

	respondData(c, http.StatusOK, data)
}
