package handlers

import (
	"net/http"
	"strings"

	"github.com/amar-295/changelog-hub/internal/database"
	"github.com/amar-295/changelog-hub/internal/models"
	apperrors "github.com/amar-295/changelog-hub/pkg/errors"
	"github.com/amar-295/changelog-hub/pkg/logger"
	"github.com/amar-295/changelog-hub/pkg/utils"
	"github.com/gin-gonic/gin"
)

type UpdateWorkspaceInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logoUrl"`
	Subdomain   *string `json:"subdomain"`
}

// GetWorkspace handles GET /workspace
func GetWorkspace(c *gin.Context) {
	var workspace models.Workspace
	if err := database.DB.First(&workspace, "id = ?", getWorkspaceID(c)).Error; err != nil {
		respondError(c, apperrors.NotFound("Workspace not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"workspace": workspace})
}

// UpdateWorkspace handles PATCH /workspace. A changed subdomain is
// re-slugified and must stay globally unique since it is the public
// address of the workspace.
func UpdateWorkspace(c *gin.Context) {
	workspaceID := getWorkspaceID(c)

	var workspace models.Workspace
	if err := database.DB.First(&workspace, "id = ?", workspaceID).Error; err != nil {
		respondError(c, apperrors.NotFound("Workspace not found"))
		return
	}

	var input UpdateWorkspaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}

	updates := map[string]interface{}{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			respondError(c, apperrors.BadRequest("Workspace name cannot be empty"))
			return
		}
		updates["name"] = name
	}

	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}

	if input.LogoURL != nil {
		updates["logo_url"] = *input.LogoURL
	}

	if input.Subdomain != nil {
		subdomain := utils.GenerateSlug(*input.Subdomain)
		if subdomain == "" {
			respondError(c, apperrors.BadRequest("Subdomain must contain at least one letter or number"))
			return
		}

		var count int64
		err := database.DB.Model(&models.Workspace{}).
			Where("subdomain = ? AND id <> ?", subdomain, workspaceID).
			Count(&count).Error
		if err != nil {
			respondError(c, apperrors.Internal("Failed to update workspace"))
			return
		}
		if count > 0 {
			respondError(c, apperrors.Conflict("This subdomain is already taken"))
			return
		}

		updates["subdomain"] = subdomain
	}

	if len(updates) == 0 {
		respondError(c, apperrors.BadRequest("No updates provided"))
		return
	}

	if err := database.DB.Model(&workspace).Updates(updates).Error; err != nil {
		if isDuplicateKeyErr(err) {
			respondError(c, apperrors.Conflict("This subdomain is already taken"))
			return
		}
		logger.Error().Err(err).Str("workspace_id", workspaceID).Msg("Failed to update workspace")
		respondError(c, apperrors.Internal("Failed to update workspace"))
		return
	}
	database.DB.First(&workspace, "id = ?", workspaceID)

	c.JSON(http.StatusOK, gin.H{"workspace": workspace})
}
