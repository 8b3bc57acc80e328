package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"art-contest/internal/apperr"
	"art-contest/internal/auth"
	"art-contest/internal/logger"
	"art-contest/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// respondError writes an error body. Internal errors are logged and hidden.
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Errorf("request failed: %v", err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	var appErr *apperr.Error
	errors.As(err, &appErr)
	body := gin.H{"error": appErr.Message}
	if appErr.Details != "" {
		body["details"] = appErr.Details
	}
	c.JSON(status, body)
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// parseID validates a v4 UUID taken from the named input field
func parseID(c *gin.Context, field, raw string) (uuid.UUID, bool) {
	id, ok := utils.ParseUUIDv4(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid " + field,
			"details": field + " must be a UUID v4",
		})
		return uuid.Nil, false
	}
	return id, true
}

func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return userID, true
}

// optionalUserID returns the caller's ID when OptionalAuth found one
func optionalUserID(c *gin.Context) *uuid.UUID {
	if userID, ok := auth.GetUserID(c); ok {
		return &userID
	}
	return nil
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
