package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/amar-295/changelog-hub/internal/database"
	"github.com/amar-295/changelog-hub/internal/models"
	apperrors "github.com/amar-295/changelog-hub/pkg/errors"
	"github.com/amar-295/changelog-hub/pkg/logger"
	"github.com/amar-295/changelog-hub/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	WorkspaceName string `json:"workspaceName" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates the user together with their workspace. The
// workspace subdomain is derived from the workspace name the same way
// release slugs are derived from titles.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}

	subdomain := utils.GenerateSlug(input.WorkspaceName)
	if subdomain == "" {
		respondError(c, apperrors.BadRequest("Workspace name must contain at least one letter or number"))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		respondError(c, apperrors.Internal("Failed to create account"))
		return
	}

	user := models.User{
		ID:       utils.GenerateID(),
		Name:     input.Name,
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: string(hashedPassword),
	}
	workspace := models.Workspace{
		ID:        utils.GenerateID(),
		Name:      strings.TrimSpace(input.WorkspaceName),
		Subdomain: subdomain,
		OwnerID:   user.ID,
		Members:   pq.StringArray{user.ID},
	}
	user.WorkspaceID = workspace.ID

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&workspace).Error; err != nil {
			return err
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		if isDuplicateKeyErr(err) {
			var existing models.User
			if dbErr := database.DB.Where("email = ?", user.Email).First(&existing).Error; dbErr == nil {
				respondError(c, apperrors.Conflict("An account with this email already exists. Please sign in instead."))
				return
			}
			respondError(c, apperrors.Conflict("A workspace with this name already exists. Please choose another one."))
			return
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Registration failed")
		respondError(c, apperrors.Internal("Failed to create account"))
		return
	}

	token, err := utils.GenerateToken(user.ID, workspace.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		respondError(c, apperrors.Internal("Failed to generate token"))
		return
	}

	logger.Info().Str("user_id", user.ID).Str("workspace_id", workspace.ID).Msg("User registered successfully")

	c.JSON(http.StatusCreated, gin.H{
		"token":     token,
		"user":      user,
		"workspace": workspace,
	})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}

	var user models.User
	if result := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user); result.Error != nil {
		logger.Warn().Str("email", input.Email).Msg("Login failed: user not found")
		respondError(c, apperrors.Unauthorized("Invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		logger.Warn().Str("email", input.Email).Msg("Login failed: invalid password")
		respondError(c, apperrors.Unauthorized("Invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.WorkspaceID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		respondError(c, apperrors.Internal("Failed to generate token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout revokes the current token by blacklisting its jti until the
// token would have expired anyway.
func Logout(c *gin.Context) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		respondError(c, apperrors.ErrUnauthorized)
		return
	}
	claims := claimsVal.(*utils.Claims)

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > 0 {
		if err := database.BlacklistToken(claims.GetJTI(), ttl); err != nil {
			logger.Warn().Err(err).Msg("Failed to blacklist token")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the authenticated user and their workspace
func Me(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", getUserID(c)).Error; err != nil {
		respondError(c, apperrors.NotFound("User not found"))
		return
	}

	var workspace models.Workspace
	if err := database.DB.First(&workspace, "id = ?", getWorkspaceID(c)).Error; err != nil {
		respondError(c, apperrors.NotFound("Workspace not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"workspace": workspace,
	})
}
