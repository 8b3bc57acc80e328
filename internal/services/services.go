package services

import (
	"art-contest/internal/repository"
)

// Services bundles every service over one repository
type Services struct {
	Auth       *AuthService
	Profile    *ProfileService
	Contest    *ContestService
	Submission *SubmissionService
	Comment    *CommentService
	Like       *LikeService
	Vote       *VoteService
	Jackpot    *JackpotService
	Revenue    *RevenueService
	Results    *ResultsService
	Admin      *AdminService
}

func NewServices(repo *repository.Repository, procs repository.Procedures) *Services {
	jackpot := NewJackpotService(repo, procs)
	return &Services{
		Auth:       NewAuthService(repo),
		Profile:    NewProfileService(repo),
		Contest:    NewContestService(repo),
		Submission: NewSubmissionService(repo, jackpot),
		Comment:    NewCommentService(repo),
		Like:       NewLikeService(repo),
		Vote:       NewVoteService(repo, jackpot),
		Jackpot:    jackpot,
		Revenue:    NewRevenueService(repo, jackpot),
		Results:    NewResultsService(repo, jackpot),
		Admin:      NewAdminService(repo),
	}
}
