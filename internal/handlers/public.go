package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/amar-295/changelog-hub/internal/database"
	"github.com/amar-295/changelog-hub/internal/models"
	apperrors "github.com/amar-295/changelog-hub/pkg/errors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const publicCacheTTL = 60 * time.Second

// PublicRelease is the subset of a release exposed on the public
// changelog page. Audit fields and tenant internals stay private.
type PublicRelease struct {
	Title       string                 `json:"title"`
	Slug        string                 `json:"slug"`
	Content     string                 `json:"content"`
	Version     string                 `json:"version"`
	Category    models.ReleaseCategory `json:"category"`
	PublishedAt *time.Time             `json:"publishedAt"`
}

type publicWorkspace struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
	Subdomain   string `json:"subdomain"`
}

type publicFeedResponse struct {
	Workspace  publicWorkspace `json:"workspace"`
	Releases   []PublicRelease `json:"releases"`
	Pagination gin.H           `json:"pagination"`
}

func findWorkspaceBySubdomain(subdomain string) (*models.Workspace, error) {
	var workspace models.Workspace
	err := database.DB.First(&workspace, "subdomain = ?", subdomain).Error
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

// GetPublicReleases handles GET /public/:subdomain/releases.
// Published releases only, newest first, cached briefly in Redis since
// these pages take anonymous traffic.
func GetPublicReleases(c *gin.Context) {
	subdomain := c.Param("subdomain")

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

	workspace, err := findWorkspaceBySubdomain(subdomain)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, apperrors.NotFound("Workspace not found"))
		} else {
			respondError(c, apperrors.Internal("Failed to fetch releases"))
		}
		return
	}

	cacheKey := fmt.Sprintf("public_releases:%s:%d:%d", workspace.ID, page, limit)
	var cached publicFeedResponse
	if err := database.CacheGet(cacheKey, &cached); err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	query := database.DB.Model(&models.Release{}).
		Where("workspace_id = ? AND status = ?", workspace.ID, models.StatusPublished)

	var totalReleases int64
	if err := query.Count(&totalReleases).Error; err != nil {
		respondError(c, apperrors.Internal("Failed to fetch releases"))
		return
	}

	releases := []PublicRelease{}
	err = query.
		Order("published_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&releases).Error
	if err != nil {
		respondError(c, apperrors.Internal("Failed to fetch releases"))
		return
	}

	response := publicFeedResponse{
		Workspace: publicWorkspace{
			Name:        workspace.Name,
			Description: workspace.Description,
			LogoURL:     workspace.LogoURL,
			Subdomain:   workspace.Subdomain,
		},
		Releases: releases,
		Pagination: gin.H{
			"currentPage":   page,
			"totalPages":    int(math.Ceil(float64(totalReleases) / float64(limit))),
			"totalReleases": totalReleases,
			"limit":         limit,
		},
	}

	// Best effort; a cache miss next time just re-runs the query
	database.CacheSet(cacheKey, response, publicCacheTTL)

	c.JSON(http.StatusOK, response)
}

// GetPublicRelease handles GET /public/:subdomain/releases/:slug
func GetPublicRelease(c *gin.Context) {
	workspace, err := findWorkspaceBySubdomain(c.Param("subdomain"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondError(c, apperrors.NotFound("Workspace not found"))
		} else {
			respondError(c, apperrors.Internal("Failed to fetch release"))
		}
		return
	}

	var release PublicRelease
	err = database.DB.Model(&models.Release{}).
		Where("workspace_id = ? AND slug = ? AND status = ?",
			workspace.ID, c.Param("slug"), models.StatusPublished).
		First(&release).Error
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
