package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"qr_dine_backend/internal/handlers"
	"qr_dine_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAdminLoginRouter(username, password string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := handlers.NewAuthHandler(nil, nil, username, password)
	engine.POST("/api/v1/auth/admin/login", handler.LoginAdmin)
	return engine
}

func TestAdminLoginRejectedWhenPasswordUnconfigured(t *testing.T) {
	engine := setupAdminLoginRouter("admin", "")

	recorder := postJSON(engine, "/api/v1/auth/admin/login", gin.H{
		"username": "admin",
		"password": "anything",
	})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	engine := setupAdminLoginRouter("admin", "right-password")

	recorder := postJSON(engine, "/api/v1/auth/admin/login", gin.H{
		"username": "admin",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAdminLoginIssuesTokenForConfiguredCredentials(t *testing.T) {
	utils.InitJWT("test-secret")
	engine := setupAdminLoginRouter("admin", "right-password")

	recorder := postJSON(engine, "/api/v1/auth/admin/login", gin.H{
		"username": "admin",
		"password": "right-password",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])
}
