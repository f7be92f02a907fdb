package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/amar-295/changelog-hub/internal/database"
	"github.com/amar-295/changelog-hub/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestUpdateWorkspace(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	workspace := seedWorkspace("initech")

	w := perform(UpdateWorkspace, "PATCH", "/api/workspace", gin.H{
		"name":        "Initech Software",
		"description": "TPS reports, delivered",
		"subdomain":   "Initech HQ!",
	}, "owner_initech", workspace.ID, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Workspace
	database.DB.First(&updated, "id = ?", workspace.ID)
	assert.Equal(t, "Initech Software", updated.Name)
	assert.Equal(t, "initech-hq", updated.Subdomain)
}

func TestUpdateWorkspace_SubdomainConflict(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	seedWorkspace("taken")
	workspace := seedWorkspace("mine")

	w := perform(UpdateWorkspace, "PATCH", "/api/workspace", gin.H{
		"subdomain": "taken",
	}, "owner_mine", workspace.ID, nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateWorkspace_NoUpdates(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	workspace := seedWorkspace("quiet")

	w := perform(UpdateWorkspace, "PATCH", "/api/workspace", gin.H{},
		"owner_quiet", workspace.ID, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetWorkspace(t *testing.T) {
	SetupTestDB()
	gin.SetMode(gin.TestMode)

	workspace := seedWorkspace("viewme")

	w := perform(GetWorkspace, "GET", "/api/workspace", nil, "owner_viewme", workspace.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Workspace models.Workspace `json:"workspace"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "viewme", resp.Workspace.Subdomain)
}
