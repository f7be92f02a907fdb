package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/amar-295/changelog-hub/internal/config"
	"github.com/amar-295/changelog-hub/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupAuthTest() {
	SetupTestDB()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{
		JWTSecret: "test_secret_key_12345",
	}
}

func TestRegister_CreatesUserAndWorkspace(t *testing.T) {
	setupAuthTest()

	w := perform(Register, "POST", "/api/auth/register", gin.H{
		"name":          "Jordan",
		"email":         "Jordan@Example.com",
		"password":      "superSecret1",
		"workspaceName": "Acme Inc!",
	}, "", "", nil)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token     string           `json:"token"`
		User      models.User      `json:"user"`
		Workspace models.Workspace `json:"workspace"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jordan@example.com", resp.User.Email)
	assert.Equal(t, resp.Workspace.ID, resp.User.WorkspaceID)
	assert.Equal(t, "acme-inc", resp.Workspace.Subdomain)
	assert.Equal(t, resp.User.ID, resp.Workspace.OwnerID)

	// Password hash never leaves the server
	assert.NotContains(t, w.Body.String(), "superSecret1")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	setupAuthTest()

	first := perform(Register, "POST", "/api/auth/register", gin.H{
		"name":          "A",
		"email":         "dup@example.com",
		"password":      "superSecret1",
		"workspaceName": "First Workspace",
	}, "", "", nil)
	assert.Equal(t, http.StatusCreated, first.Code)

	second := perform(Register, "POST", "/api/auth/register", gin.H{
		"name":          "B",
		"email":         "dup@example.com",
		"password":      "superSecret1",
		"workspaceName": "Second Workspace",
	}, "", "", nil)
	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestRegister_WorkspaceNameSlugifiesToEmpty(t *testing.T) {
	setupAuthTest()

	w := perform(Register, "POST", "/api/auth/register", gin.H{
		"name":          "A",
		"email":         "symbols@example.com",
		"password":      "superSecret1",
		"workspaceName": "!!!",
	}, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	setupAuthTest()

	register := perform(Register, "POST", "/api/auth/register", gin.H{
		"name":          "Casey",
		"email":         "casey@example.com",
		"password":      "superSecret1",
		"workspaceName": "Casey Co",
	}, "", "", nil)
	assert.Equal(t, http.StatusCreated, register.Code)

	w := perform(Login, "POST", "/api/auth/login", gin.H{
		"email":    "casey@example.com",
		"password": "superSecret1",
	}, "", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NotEmpty(t, resp.Token)

	w = perform(Login, "POST", "/api/auth/login", gin.H{
		"email":    "casey@example.com",
		"password": "wrongPassword1",
	}, "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	setupAuthTest()

	register := perform(Register, "POST", "/api/auth/register", gin.H{
		"name":          "Robin",
		"email":         "robin@example.com",
		"password":      "superSecret1",
		"workspaceName": "Robin Labs",
	}, "", "", nil)
	assert.Equal(t, http.StatusCreated, register.Code)

	var created struct {
		User      models.User      `json:"user"`
		Workspace models.Workspace `json:"workspace"`
	}
	json.Unmarshal(register.Body.Bytes(), &created)

	w := perform(Me, "GET", "/api/auth/me", nil, created.User.ID, created.Workspace.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User      models.User      `json:"user"`
		Workspace models.Workspace `json:"workspace"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "robin@example.com", resp.User.Email)
	assert.Equal(t, "robin-labs", resp.Workspace.Subdomain)
}
