package handlers

import (
	"strings"

	apperrors "github.com/amar-295/changelog-hub/pkg/errors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// getUserID returns the authenticated user's id set by the auth middleware
func getUserID(c *gin.Context) string {
	userID, _ := c.Get("userId")
	if userID == nil {
		return ""
	}
	return userID.(string)
}

// getWorkspaceID returns the caller's tenant id. It is always resolved
// from the verified token claims, never from request input.
func getWorkspaceID(c *gin.Context) string {
	workspaceID, _ := c.Get("workspaceId")
	if workspaceID == nil {
		return ""
	}
	return workspaceID.(string)
}

func respondError(c *gin.Context, err *apperrors.AppError) {
	c.JSON(err.Code, gin.H{"error": err.Message})
}

// isDuplicateKeyErr reports whether err is a unique constraint
// violation. Postgres and SQLite (tests) phrase it differently.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
