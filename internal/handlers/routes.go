package handlers

import (
	"net/http"

	"art-contest/internal/auth"
	"art-contest/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers groups every route handler
type Handlers struct {
	Auth        *AuthHandler
	Profile     *ProfileHandler
	Admin       *AdminHandler
	Contest     *ContestHandler
	Submission  *SubmissionHandler
	Comment     *CommentHandler
	Like        *LikeHandler
	Vote        *VoteHandler
	Jackpot     *JackpotHandler
	Competition *CompetitionHandler
	Webhook     *WebhookHandler
}

func NewHandlers(svc *services.Services, webhookSecret string) *Handlers {
	return &Handlers{
		Auth:        NewAuthHandler(svc.Auth, svc.Profile),
		Profile:     NewProfileHandler(svc.Profile),
		Admin:       NewAdminHandler(svc.Profile, svc.Admin, svc.Jackpot),
		Contest:     NewContestHandler(svc.Contest, svc.Admin),
		Submission:  NewSubmissionHandler(svc.Submission),
		Comment:     NewCommentHandler(svc.Comment),
		Like:        NewLikeHandler(svc.Like),
		Vote:        NewVoteHandler(svc.Vote, svc.Profile),
		Jackpot:     NewJackpotHandler(svc.Jackpot, svc.Profile, svc.Admin),
		Competition: NewCompetitionHandler(svc.Results, svc.Admin),
		Webhook:     NewWebhookHandler(svc.Revenue, webhookSecret),
	}
}

// Register mounts every route under /api
func (h *Handlers) Register(router *gin.Engine) {
	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.POST("/webhooks/stripe", h.Webhook.Stripe)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.Auth.Signup)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", auth.AuthMiddleware(), h.Auth.Me)
		authGroup.PATCH("/me", auth.AuthMiddleware(), h.Auth.UpdateMe)
	}

	requireAuth := auth.AuthMiddleware()
	optionalAuth := auth.OptionalAuth()
	requireAdmin := h.Admin.AdminMiddleware()

	api.GET("/profiles/featured", h.Profile.Featured)
	api.GET("/profiles/:id", h.Profile.GetProfile)

	api.GET("/contests", h.Contest.ListContests)
	api.GET("/contests/:id", h.Contest.GetContest)
	api.POST("/contests", requireAuth, requireAdmin, h.Contest.CreateContest)
	api.PATCH("/contests/:id", requireAuth, requireAdmin, h.Contest.UpdateContest)

	api.GET("/submissions", h.Submission.ListSubmissions)
	api.GET("/submissions/:id", h.Submission.GetSubmission)
	api.POST("/submissions", requireAuth, h.Submission.CreateSubmission)
	api.GET("/s/:slug", h.Submission.GetBySlug)

	api.GET("/comments", h.Comment.ListComments)
	api.POST("/comments", requireAuth, h.Comment.CreateComment)

	api.GET("/likes", optionalAuth, h.Like.GetLikes)
	api.POST("/likes", requireAuth, h.Like.ToggleLike)

	api.GET("/votes", optionalAuth, h.Vote.GetVotes)
	api.POST("/votes", requireAuth, h.Vote.CastVote)

	jackpot := api.Group("/jackpot")
	{
		jackpot.GET("/entries", requireAuth, h.Jackpot.ListEntries)
		jackpot.POST("/entries", requireAuth, requireAdmin, h.Jackpot.AwardEntries)
		jackpot.GET("/draws", h.Jackpot.ListDraws)
		jackpot.GET("/draws/:id", h.Jackpot.GetDraw)
		jackpot.POST("/draws", requireAuth, requireAdmin, h.Jackpot.CreateDraw)
		jackpot.GET("/active", optionalAuth, h.Jackpot.Active)
	}

	api.POST("/competitions/process-results", requireAuth, requireAdmin, h.Competition.ProcessResults)

	admin := api.Group("/admin")
	admin.Use(requireAuth, requireAdmin)
	{
		admin.POST("/jackpot/draw-winner", h.Admin.DrawWinner)
		admin.GET("/logs", h.Admin.GetLogs)
		admin.GET("/stats", h.Admin.GetStats)
		admin.GET("/revenue", h.Admin.GetRevenue)
		admin.POST("/profiles/:id/role", h.Admin.SetRole)
	}
}
