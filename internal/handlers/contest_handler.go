package handlers

import (
	"net/http"
	"time"

	"art-contest/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ContestHandler struct {
	contestService *services.ContestService
	adminService   *services.AdminService
}

func NewContestHandler(contestService *services.ContestService, adminService *services.AdminService) *ContestHandler {
	return &ContestHandler{
		contestService: contestService,
		adminService:   adminService,
	}
}

// ListContests lists contests, optionally filtered by ?status=
// GET /api/contests
func (h *ContestHandler) ListContests(c *gin.Context) {
	limit, offset := pagination(c)
	contests, err := h.contestService.ListContests(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, contests)
}

// GetContest returns one contest
// GET /api/contests/:id
func (h *ContestHandler) GetContest(c *gin.Context) {
	id, ok := parseID(c, "id", c.Param("id"))
	if !ok {
		return
	}

	contest, err := h.contestService.GetContest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, contest)
}

// CreateContest opens a new contest
// POST /api/contests (admin)
func (h *ContestHandler) CreateContest(c *gin.Context) {
	var req struct {
		Title       string          `json:"title" binding:"required,max=255"`
		Description string          `json:"description"`
		Theme       string          `json:"theme" binding:"max=100"`
		StartDate   time.Time       `json:"startDate" binding:"required"`
		EndDate     time.Time       `json:"endDate" binding:"required"`
		PrizePool   decimal.Decimal `json:"prizePool"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	contest, err := h.contestService.CreateContest(c.Request.Context(), adminID(c), services.CreateContestInput{
		Title:       req.Title,
		Description: req.Description,
		Theme:       req.Theme,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		PrizePool:   req.PrizePool,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.adminService.LogAdminAction(c.Request.Context(), adminID(c), services.ActionCreateContest, "contest", &contest.ID,
		map[string]interface{}{"title": contest.Title})

	respondData(c, http.StatusCreated, contest)
}

// UpdateContest edits an open contest
// PATCH /api/contests/:id (admin)
func (h *ContestHandler) UpdateContest(c *gin.Context) {
	id, ok := parseID(c, "id", c.Param("id"))
	if !ok {
		return
	}

	var req struct {
		Title       *string    `json:"title" binding:"omitempty,max=255"`
		Description *string    `json:"description"`
		Theme       *string    `json:"theme" binding:"omitempty,max=100"`
		EndDate     *time.Time `json:"endDate"`
		Status      *string    `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	contest, err := h.contestService.UpdateContest(c.Request.Context(), id, services.UpdateContestInput{
		Title:       req.Title,
		Description: req.Description,
		Theme:       req.Theme,
		EndDate:     req.EndDate,
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.adminService.LogAdminAction(c.Request.Context(), adminID(c), services.ActionUpdateContest, "contest", &contest.ID,
		map[string]interface{}{"status": contest.Status})

	respondData(c, http.StatusOK, contest)
}
