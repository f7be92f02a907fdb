package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amar-295/changelog-hub/internal/database"
	"github.com/amar-295/changelog-hub/internal/models"
	apperrors "github.com/amar-295/changelog-hub/pkg/errors"
	"github.com/amar-295/changelog-hub/pkg/logger"
	"github.com/amar-295/changelog-hub/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// -- Inputs --

type CreateReleaseInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Version  string `json:"version"`
	Category string `json:"category"`
}

// UpdateReleaseInput uses pointers so "field absent" and "field set to
// empty" are distinguishable. Only these four fields are mutable;
// anything else in the request body is ignored. Status is deliberately
// not here: it changes only through publish/unpublish/archive.
type UpdateReleaseInput struct {
	Title    *string `json:"title"`
	Version  *string `json:"version"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

// deletePolicy decides whether a release may be deleted. The V1 policy
// allows deleting anything, published included; tightening later means
// swapping this function, not editing the handler.
var deletePolicy = func(r *models.Release) *apperrors.AppError {
	return nil
}

// -- Helpers --

// slugTaken checks workspace-scoped slug uniqueness. excludeID skips
// the record being updated. The composite unique index remains the
// authority for concurrent writers; this pre-check just produces a
// clean 409 without burning an insert.
func slugTaken(workspaceID, slug, excludeID string) (bool, error) {
	var count int64
	query := database.DB.Model(&models.Release{}).
		Where("workspace_id = ? AND slug = ?", workspaceID, slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// findWorkspaceRelease loads a release within the caller's workspace.
// A matching id in another workspace is indistinguishable from a
// missing record, so cross-tenant probes always see 404.
func findWorkspaceRelease(id, workspaceID string) (*models.Release, error) {
	if !utils.IsUUID(id) {
		return nil, gorm.ErrRecordNotFound
	}
	var release models.Release
	err := database.DB.First(&release, "id = ? AND workspace_id = ?", id, workspaceID).Error
	if err != nil {
		return nil, err
	}
	return &release, nil
}

func invalidatePublicCache(workspaceID string) {
	if err := database.CacheInvalidate("public_releases:" + workspaceID + ":*"); err != nil {
		logger.Warn().Err(err).Str("workspace_id", workspaceID).Msg("Failed to invalidate public cache")
	}
}

// -- Handlers --

// CreateRelease handles POST /releases
func CreateRelease(c *gin.Context) {
	workspaceID := getWorkspaceID(c)
	userID := getUserID(c)

	var input CreateReleaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}

	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" {
		respondError(c, apperrors.BadRequest("Title and content are required"))
		return
	}

	category := models.CategoryOther
	if input.Category != "" {
		category = models.ReleaseCategory(input.Category)
		if !category.Valid() {
			respondError(c, apperrors.BadRequest("Invalid category"))
			return
		}
	}

	slug := utils.GenerateSlug(title)
	if slug == "" {
		// All-symbol titles slugify to nothing; an empty slug would be
		// unroutable, so reject instead of storing it.
		respondError(c, apperrors.BadRequest("Title must contain at least one letter or number"))
		return
	}

	taken, err := slugTaken(workspaceID, slug, "")
	if err != nil {
		respondError(c, apperrors.Internal("Failed to create release"))
		return
	}
	if taken {
		respondError(c, apperrors.ErrDuplicateSlug)
		return
	}

	release := models.Release{
		ID:          utils.GenerateID(),
		Title:       title,
		Slug:        slug,
		Content:     content,
		Version:     input.Version,
		Category:    category,
		Status:      models.StatusDraft,
		WorkspaceID: workspaceID,
		CreatedBy:   userID,
	}

	if err := database.DB.Create(&release).Error; err != nil {
		// Lost a race with a concurrent create; the composite unique
		// index guarantees only one winner.
		if isDuplicateKeyErr(err) {
			respondError(c, apperrors.ErrDuplicateSlug)
			return
		}
		logger.Error().Err(err).Str("workspace_id", workspaceID).Msg("Failed to create release")
		respondError(c, apperrors.Internal("Failed to create release"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"release": release})
}

// ListReleases handles GET /releases with filtering and pagination
func ListReleases(c *gin.Context) {
	workspaceID := getWorkspaceID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}

	query := database.DB.Model(&models.Release{}).Where("workspace_id = ?", workspaceID)

	if status := c.Query("status"); status != "" {
		if !models.ReleaseStatus(status).Valid() {
			respondError(c, apperrors.BadRequest("Invalid status"))
			return
		}
		query = query.Where("status = ?", status)
	}

	if category := c.Query("category"); category != "" {
		if !models.ReleaseCategory(category).Valid() {
			respondError(c, apperrors.BadRequest("Invalid category"))
			return
		}
		query = query.Where("category = ?", category)
	}

	if search := c.Query("search"); search != "" {
		// Escaped so wildcards in user input match literally.
		// LOWER/LIKE instead of ILIKE keeps the query portable to the
		// sqlite test database.
		searchLike := utils.SanitizeSearchQuery(search)
		query = query.Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, searchLike)
	}

	var totalReleases int64
	if err := query.Count(&totalReleases).Error; err != nil {
		respondError(c, apperrors.Internal("Failed to fetch releases"))
		return
	}

	releases := []models.Release{}
	err := query.
		Order("created_at DESC, id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&releases).Error
	if err != nil {
		respondError(c, apperrors.Internal("Failed to fetch releases"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"releases": releases,
		"pagination": gin.H{
			"currentPage":   page,
			"totalPages":    int(math.Ceil(float64(totalReleases) / float64(limit))),
			"totalReleases": totalReleases,
			"limit":         limit,
		},
	})
}

// GetRelease handles GET /releases/:id
func GetRelease(c *gin.Context) {
	release, err := findWorkspaceRelease(c.Param("id"), getWorkspaceID(c))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, apperrors.NotFound("Release not found"))
		} else {
			respondError(c, apperrors.Internal("Failed to fetch release"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"release": release})
}

// UpdateRelease handles PATCH /releases/:id
func UpdateRelease(c *gin.Context) {
	workspaceID := getWorkspaceID(c)
	userID := getUserID(c)

	release, err := findWorkspaceRelease(c.Param("id"), workspaceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, apperrors.NotFound("Release not found"))
		} else {
			respondError(c, apperrors.Internal("Failed to fetch release"))
		}
		return
	}

	var input UpdateReleaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperrors.BadRequest(err.Error()))
		return
	}

	updates := map[string]interface{}{}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			respondError(c, apperrors.BadRequest("Title cannot be empty"))
			return
		}

		// Slug always regenerates with the title and must stay unique
		// within the workspace (excluding this record).
		slug := utils.GenerateSlug(title)
		if slug == "" {
			respondError(c, apperrors.BadRequest("Title must contain at least one letter or number"))
			return
		}

		taken, err := slugTaken(workspaceID, slug, release.ID)
		if err != nil {
			respondError(c, apperrors.Internal("Failed to update release"))
			return
		}
		if taken {
			respondError(c, apperrors.ErrDuplicateSlug)
			return
		}

		updates["title"] = title
		updates["slug"] = slug
	}

	if input.Content != nil {
		content := strings.TrimSpace(*input.Content)
		if content == "" {
			respondError(c, apperrors.BadRequest("Content cannot be empty"))
			return
		}
		updates["content"] = content
	}

	if input.Version != nil {
		updates["version"] = *input.Version
	}

	if input.Category != nil {
		if !models.ReleaseCategory(*input.Category).Valid() {
			respondError(c, apperrors.BadRequest("Invalid category"))
			return
		}
		updates["category"] = *input.Category
	}

	if len(updates) == 0 {
		respondError(c, apperrors.BadRequest("No updates provided"))
		return
	}

	updates["updated_by"] = userID

	if err := database.DB.Model(release).Updates(updates).Error; err != nil {
		if isDuplicateKeyErr(err) {
			respondError(c, apperrors.ErrDuplicateSlug)
			return
		}
		logger.Error().Err(err).Str("release_id", release.ID).Msg("Failed to update release")
		respondError(c, apperrors.Internal("Failed to update release"))
		return
	}

	// Map updates don't write back into the struct; reload for the response
	database.DB.First(release, "id = ?", release.ID)

	if release.Status == models.StatusPublished {
		invalidatePublicCache(workspaceID)
	}

	c.JSON(http.StatusOK, gin.H{"release": release})
}

// DeleteRelease handles DELETE /releases/:id
func DeleteRelease(c *gin.Context) {
	workspaceID := getWorkspaceID(c)

	release, err := findWorkspaceRelease(c.Param("id"), workspaceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, apperrors.NotFound("Release not found"))
		} else {
			respondError(c, apperrors.Internal("Failed to fetch release"))
		}
		return
	}

	if policyErr := deletePolicy(release); policyErr != nil {
		respondError(c, policyErr)
		return
	}

	if err := database.DB.Delete(release).Error; err != nil {
		logger.Error().Err(err).Str("release_id", release.ID).Msg("Failed to delete release")
		respondError(c, apperrors.Internal("Failed to delete release"))
		return
	}

	invalidatePublicCache(workspaceID)

	c.JSON(http.StatusOK, gin.H{"message": "Release deleted successfully"})
}

// PublishRelease handles POST /releases/:id/publish
func PublishRelease(c *gin.Context) {
	workspaceID := getWorkspaceID(c)

	release, err := findWorkspaceRelease(c.Param("id"), workspaceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, apperrors.NotFound("Release not found"))
		} else {
			respondError(c, apperrors.Internal("Failed to fetch release"))
		}
		return
	}

	if release.Status == models.StatusPublished {
		respondError(c, apperrors.ErrInvalidTransition)
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.StatusPublished,
		"published_at": &now,
		"updated_by":   getUserID(c),
	}

	if err := database.DB.Model(release).Updates(updates).Error; err != nil {
		logger.Error().Err(err).Str("release_id", release.ID).Msg("Failed to publish release")
		respondError(c, apperrors.Internal("Failed to publish release"))
		return
	}
	database.DB.First(release, "id = ?", release.ID)

	invalidatePublicCache(workspaceID)

	c.JSON(http.StatusOK, gin.H{"release": release})
}

// UnpublishRelease handles POST /releases/:id/unpublish.
// The release goes back to draft; publishedAt is cleared.
func UnpublishRelease(c *gin.Context) {
	workspaceID := getWorkspaceID(c)

	release, err := findWorkspaceRelease(c.Param("id"), workspaceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, apperrors.NotFound("Release not found"))
		} else {
			respondError(c, apperrors.Internal("Failed to fetch release"))
		}
		return
	}

	updates := map[string]interface{}{
		"status":       models.StatusDraft,
		"published_at": nil,
		"updated_by":   getUserID(c),
	}

	if err := database.DB.Model(release).Updates(updates).Error; err != nil {
		logger.Error().Err(err).Str("release_id", release.ID).Msg("Failed to unpublish release")
		respondError(c, apperrors.Internal("Failed to unpublish release"))
		return
	}
	database.DB.First(release, "id = ?", release.ID)

	invalidatePublicCache(workspaceID)

	c.JSON(http.StatusOK, gin.H{"release": release})
}

// ArchiveRelease handles POST /releases/:id/archive
func ArchiveRelease(c *gin.Context) {
	workspaceID := getWorkspaceID(c)

	release, err := findWorkspaceRelease(c.Param("id"), workspaceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, apperrors.NotFound("Release not found"))
		} else {
			respondError(c, apperrors.Internal("Failed to fetch release"))
		}
		return
	}

	if release.Status == models.StatusArchived {
		respondError(c, apperrors.BadRequest("Release is already archived"))
		return
	}

	updates := map[string]interface{}{
		"status":       models.StatusArchived,
		"published_at": nil,
		"updated_by":   getUserID(c),
	}

	if err := database.DB.Model(release).Updates(updates).Error; err != nil {
		logger.Error().Err(err).Str("release_id", release.ID).Msg("Failed to archive release")
		respondError(c, apperrors.Internal("Failed to archive release"))
		return
	}
	database.DB.First(release, "id = ?", release.ID)

	invalidatePublicCache(workspaceID)

	c.JSON(http.StatusOK, gin.H{"release": release})
}

// UnarchiveRelease handles POST /releases/:id/unarchive
func UnarchiveRelease(c *gin.Context) {
	workspaceID := getWorkspaceID(c)

	release, err := findWorkspaceRelease(c.Param("id"), workspaceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, apperrors.NotFound("Release not found"))
		} else {
			respondError(c, apperrors.Internal("Failed to fetch release"))
		}
		return
	}

	if release.Status != models.StatusArchived {
		respondError(c, apperrors.BadRequest("Release is not archived"))
		return
	}

	updates := map[string]interface{}{
		"status":     models.StatusDraft,
		"updated_by": getUserID(c),
	}

	if err := database.DB.Model(release).Updates(updates).Error; err != nil {
		logger.Error().Err(err).Str("release_id", release.ID).Msg("Failed to unarchive release")
		respondError(c, apperrors.Internal("Failed to unarchive release"))
		return
	}
	database.DB.First(release, "id = ?", release.ID)

	c.JSON(http.StatusOK, gin.H{"release": release})
}
