package handlers

import (
	"net/http"

	"art-contest/internal/models"
	"art-contest/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// ListComments lists a submission's comments
// GET /api/comments?submissionId=
func (h *CommentHandler) ListComments(c *gin.Context) {
	submissionID, ok := parseID(c, "submissionId", c.Query("submissionId"))
	if !ok {
		return
	}

	limit, offset := pagination(c)
	comments, err := h.commentService.ListComments(c.Request.Context(), submissionID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, comments)
}

// CreateComment adds a comment
// POST /api/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		SubmissionID string `json:"submissionId" binding:"required"`
		Content      string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	submissionID, ok := parseID(c, "submissionId", req.SubmissionID)
	if !ok {
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), userID, submissionID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, comment)
}

type LikeHandler struct {
	likeService *services.LikeService
}

func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// GetLikes returns the like count and whether the caller liked it
// GET /api/likes?submissionId=
func (h *LikeHandler) GetLikes(c *gin.Context) {
	submissionID, ok := parseID(c, "submissionId", c.Query("submissionId"))
	if !ok {
		return
	}

	status, err := h.likeService.GetStatus(c.Request.Context(), submissionID, optionalUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, status)
}

// ToggleLike likes or unlikes a submission
// POST /api/likes
func (h *LikeHandler) ToggleLike(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		SubmissionID string `json:"submissionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	submissionID, ok := parseID(c, "submissionId", req.SubmissionID)
	if !ok {
		return
	}

	status, err := h.likeService.ToggleLike(c.Request.Context(), userID, submissionID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, status)
}

type VoteHandler struct {
	voteService    *services.VoteService
	profileService *services.ProfileService
}

func NewVoteHandler(voteService *services.VoteService, profileService *services.ProfileService) *VoteHandler {
	return &VoteHandler{
		voteService:    voteService,
		profileService: profileService,
	}
}

// GetVotes tallies a submission's votes and lists the caller's categories
// GET /api/votes?submissionId=
func (h *VoteHandler) GetVotes(c *gin.Context) {
	submissionID, ok := parseID(c, "submissionId", c.Query("submissionId"))
	if !ok {
		return
	}

	summary, err := h.voteService.GetVoteSummary(c.Request.Context(), submissionID, optionalUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, summary)
}

// CastVote records a ballot. The response does not depend on follow-up
// bookkeeping such as jackpot entries.
// POST /api/votes
func (h *VoteHandler) CastVote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		SubmissionID string `json:"submissionId" binding:"required"`
		Category     string `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	submissionID, ok := parseID(c, "submissionId", req.SubmissionID)
	if !ok {
		return
	}

	category := models.VoteCategory(req.Category)
	isAdmin := false
	if category == models.VoteCategoryJudge {
		_, err := h.profileService.RequireAdmin(c.Request.Context(), userID)
		isAdmin = err == nil
	}

	_, err := h.voteService.CastVote(c.Request.Context(), services.CastVoteInput{
		VoterID:      userID,
		VoterIsAdmin: isAdmin,
		SubmissionID: submissionID,
		Category:     category,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
