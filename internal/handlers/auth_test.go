package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codepulse/codepulse/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGitHubCallbackRedirectsToFrontend(t *testing.T) {
	config.AppConfig = &config.Config{
		Server: config.ServerConfig{FrontendURL: "http://dashboard.school.example"},
		GitHub: config.GitHubConfig{ClientID: "client", ClientSecret: "secret"},
	}
	gin.SetMode(gin.TestMode)

	handler := NewAuthHandler(nil)

	// Callback without a code must bounce back to the frontend with an
	// error marker, not to a route this API does not serve.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/github/callback", nil)

	handler.GitHubCallback(c)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://dashboard.school.example/?error=no_code", w.Header().Get("Location"))
}
