package handlers

import (
	"net/http"

	"art-contest/internal/models"
	"art-contest/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	profileService *services.ProfileService
	adminService   *services.AdminService
	jackpotService *services.JackpotService
}

func NewAdminHandler(
	profileService *services.ProfileService,
	adminService *services.AdminService,
	jackpotService *services.JackpotService,
) *AdminHandler {
	return &AdminHandler{
		profileService: profileService,
		adminService:   adminService,
		jackpotService: jackpotService,
	}
}

// AdminMiddleware checks the caller's stored role. Must run after AuthMiddleware.
func (h *AdminHandler) AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			c.Abort()
			return
		}

		admin, err := h.profileService.RequireAdmin(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}

		c.Set("admin_id", admin.ID)
		c.Next()
	}
}

func adminID(c *gin.Context) uuid.UUID {
	if id, ok := c.Get("admin_id"); ok {
		if v, ok := id.(uuid.UUID); ok {
			return v
		}
	}
	return uuid.Nil
}

// DrawWinner picks the winner of a jackpot draw
// POST /api/admin/jackpot/draw-winner
func (h *AdminHandler) DrawWinner(c *gin.Context) {
	var req struct {
		DrawID string `json:"drawId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	drawID, ok := parseID(c, "drawId", req.DrawID)
	if !ok {
		return
	}

	result, err := h.jackpotService.DrawWinner(c.Request.Context(), drawID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.adminService.LogAdminAction(c.Request.Context(), adminID(c), services.ActionDrawWinner, "jackpot_draw", &drawID,
		map[string]interface{}{
			"draw_id":        drawID.String(),
			"winner_user_id": result.WinnerUserID.String(),
			"total_entries":  result.TotalEntries,
		})

	respondData(c, http.StatusOK, result)
}

// GetLogs returns admin activity logs
// GET /api/admin/logs
func (h *AdminHandler) GetLogs(c *gin.Context) {
	limit, offset := pagination(c)
	logs, err := h.adminService.GetAdminLogs(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, logs)
}

// GetRevenue lists recorded payments
// GET /api/admin/revenue
func (h *AdminHandler) GetRevenue(c *gin.Context) {
	limit, offset := pagination(c)
	txns, err := h.adminService.ListRevenue(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, txns)
}

// GetStats returns platform counters
// GET /api/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetPlatformStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, stats)
}

// SetRole promotes or demotes a profile
// POST /api/admin/profiles/:id/role
func (h *AdminHandler) SetRole(c *gin.Context) {
	profileID, ok := parseID(c, "id", c.Param("id"))
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	actor := adminID(c)
	if profileID == actor && req.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admins cannot demote themselves"})
		return
	}

	profile, err := h.adminService.SetRole(c.Request.Context(), profileID, req.Role, &actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, profile)
}
