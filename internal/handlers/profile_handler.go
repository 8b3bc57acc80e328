package handlers

import (
	"net/http"

	"art-contest/internal/services"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves public profile pages
type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile returns a public profile
// GET /api/profiles/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := parseID(c, "id", c.Param("id"))
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, profile)
}

// Featured lists boosted profiles
// GET /api/profiles/featured
func (h *ProfileHandler) Featured(c *gin.Context) {
	limit, _ := pagination(c)
	profiles, err := h.profileService.FeaturedProfiles(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, profiles)
}
