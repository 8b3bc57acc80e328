package handlers

import (
	"net/http"

	"art-contest/internal/services"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// ListSubmissions lists a contest's submissions
// GET /api/submissions?contestId=
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	contestID, ok := parseID(c, "contestId", c.Query("contestId"))
	if !ok {
		return
	}

	limit, offset := pagination(c)
	submissions, err := h.submissionService.ListSubmissions(c.Request.Context(), contestID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, submissions)
}

// GetSubmission returns one submission
// GET /api/submissions/:id
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id, ok := parseID(c, "id", c.Param("id"))
	if !ok {
		return
	}

	submission, err := h.submissionService.GetSubmission(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, submission)
}

// GetBySlug resolves a short share link
// GET /api/s/:slug
func (h *SubmissionHandler) GetBySlug(c *gin.Context) {
	submission, err := h.submissionService.GetSubmissionBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, submission)
}

// CreateSubmission enters an artwork into a contest
// POST /api/submissions
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		ContestID   string `json:"contestId" binding:"required"`
		Title       string `json:"title" binding:"required,max=255"`
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	contestID, ok := parseID(c, "contestId", req.ContestID)
	if !ok {
		return
	}

	result, err := h.submissionService.CreateSubmission(c.Request.Context(), userID, services.CreateSubmissionInput{
		ContestID:   contestID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, result)
}
