package delivery

import (
	"log"
	"net/http"

	authdto "github.com/MSHIVVANI/smart-job-tracker/internal/auth/dto"
	"github.com/MSHIVVANI/smart-job-tracker/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication and mailbox connection endpoints.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	frontendURL string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authUsecase usecase.AuthUsecase, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		frontendURL: frontendURL,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.Register(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.Login(&req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.RefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.Logout(req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to logout"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GoogleConnect returns the consent URL the frontend redirects the browser to.
func (h *AuthHandler) GoogleConnect(c *gin.Context) {
	userID := c.GetString("userID")

	url, err := h.authUsecase.GoogleAuthURL(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build consent URL"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GoogleCallback is hit by Google after consent; it stores the credential and
// sends the browser back to the dashboard.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	if code == "" || state == "" {
		c.Redirect(http.StatusFound, h.frontendURL+"/dashboard?gmail_connected=false")
		return
	}

	if err := h.authUsecase.HandleGoogleCallback(code, state); err != nil {
		log.Printf("[AUTH] Google OAuth callback failed: %v", err)
		c.Redirect(http.StatusFound, h.frontendURL+"/dashboard?gmail_connected=false")
		return
	}
	c.Redirect(http.StatusFound, h.frontendURL+"/dashboard?gmail_connected=true")
}

// GoogleStatus reports the mailbox connection state, including revoked
// credentials awaiting a reconnect.
func (h *AuthHandler) GoogleStatus(c *gin.Context) {
	userID := c.GetString("userID")

	status, err := h.authUsecase.ConnectionStatus(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load connection status"})
		return
	}
	c.JSON(http.StatusOK, status)
}
