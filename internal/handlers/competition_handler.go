package handlers

import (
	"net/http"

	"art-contest/internal/services"

	"github.com/gin-gonic/gin"
)

type CompetitionHandler struct {
	resultsService *services.ResultsService
	adminService   *services.AdminService
}

func NewCompetitionHandler(resultsService *services.ResultsService, adminService *services.AdminService) *CompetitionHandler {
	return &CompetitionHandler{
		resultsService: resultsService,
		adminService:   adminService,
	}
}

// ProcessResults closes a contest and awards the winners
// POST /api/competitions/process-results (admin)
func (h *CompetitionHandler) ProcessResults(c *gin.Context) {
	var req struct {
		CompetitionID string `json:"competitionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	contestID, ok := parseID(c, "competitionId", req.CompetitionID)
	if !ok {
		return
	}

	results, err := h.resultsService.ProcessResults(c.Request.Context(), contestID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.adminService.LogAdminAction(c.Request.Context(), adminID(c), services.ActionProcessResults, "contest", &contestID,
		map[string]interface{}{"winners": len(results.Winners)})

	respondData(c, http.StatusOK, results)
}
