package handlers

import (
	"log"
	"net/http"

	"github.com/codepulse/codepulse/internal/middleware"
	"github.com/codepulse/codepulse/internal/models"
	"github.com/codepulse/codepulse/internal/services"
	"github.com/codepulse/codepulse/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	userService   *services.UserService
	githubService *services.GitHubService
	frontendURL   string
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		githubService: services.NewGitHubService(),
		frontendURL:   config.AppConfig.Server.FrontendURL,
	}
}

// redirectToApp sends the browser back to the frontend, optionally with
// a query string describing the outcome. The API itself serves no pages.
func (h *AuthHandler) redirectToApp(c *gin.Context, query string) {
	target := h.frontendURL + "/"
	if query != "" {
		target += "?" + query
	}
	c.Redirect(http.StatusFound, target)
}

// Me returns the authenticated user's session data
func (h *AuthHandler) Me(c *gin.Context) {
	session := middleware.GetSession(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":  session.UserID,
		"username": session.Username,
		"email":    session.Email,
	})
}

// Logout handles user logout
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GitHubLogin initiates GitHub OAuth flow
func (h *AuthHandler) GitHubLogin(c *gin.Context) {
	authURL := h.githubService.GetAuthURL()
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GitHubCallback handles GitHub OAuth callback
func (h *AuthHandler) GitHubCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		h.redirectToApp(c, "error=no_code")
		return
	}

	// Exchange code for token
	token, err := h.githubService.ExchangeCodeForToken(code)
	if err != nil {
		h.redirectToApp(c, "error=token_exchange_failed")
		return
	}

	// Get user info from GitHub
	githubUser, err := h.githubService.GetUserInfo(token)
	if err != nil {
		h.redirectToApp(c, "error=user_info_failed")
		return
	}

	// Check if user exists in our database
	user, err := h.userService.GetUserByEmail(githubUser.Email)
	if err != nil || user == nil {
		log.Printf("GitHub callback - creating user for %s", githubUser.Login)
		user = &models.User{
			ID:                uuid.New(),
			Name:              githubUser.Name,
			Username:          githubUser.Login,
			Email:             githubUser.Email,
			ProfilePicture:    githubUser.AvatarURL,
			GitHubAccessToken: token.AccessToken,
		}

		if err := h.userService.CreateUser(user); err != nil {
			h.redirectToApp(c, "error=user_creation_failed")
			return
		}
	} else {
		// Update existing user's GitHub token
		user.GitHubAccessToken = token.AccessToken
		if err := h.userService.UpdateUser(user); err != nil {
			h.redirectToApp(c, "error=user_update_failed")
			return
		}
	}

	if err := middleware.SetSession(c, user.ID.String(), user.Username, user.Email); err != nil {
		h.redirectToApp(c, "error=session_creation_failed")
		return
	}

	h.redirectToApp(c, "")
}
