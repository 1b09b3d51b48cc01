package api

import (
	"net/http"

	"github.com/blog-community-api/internal/auth"
	"github.com/blog-community-api/internal/config"
	"github.com/blog-community-api/internal/models"
	"github.com/blog-community-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles registration, login and session endpoints
type AuthHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// Register handles POST /auth/register_with_password
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, token, err := h.services.Auth.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": authUserResponse(user)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login_with_password
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, token, err := h.services.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": authUserResponse(user)})
}

// Session handles GET /auth/session: validates the cookie, refreshes it and
// returns the current user
func (h *AuthHandler) Session(c *gin.Context) {
	token, err := c.Cookie(auth.SessionCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	user, refreshed, err := h.services.Auth.RefreshSession(c.Request.Context(), token)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.setSessionCookie(c, refreshed)
	c.JSON(http.StatusOK, gin.H{"user": authUserResponse(user)})
}

// Logout handles POST /auth/logout: deletes the session row and expires the
// cookie. Missing or stale cookies still log out cleanly.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(auth.SessionCookieName)

	if err := h.services.Auth.Logout(c.Request.Context(), token); err != nil {
		respondError(c, h.log, err)
		return
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		auth.SessionCookieName,
		token,
		int(auth.SessionDuration.Seconds()),
		"/",
		"",
		h.cfg.Auth.SecureCookie,
		true,
	)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		auth.SessionCookieName,
		"",
		-1,
		"/",
		"",
		h.cfg.Auth.SecureCookie,
		true,
	)
}

// authUserResponse is the user shape returned by auth endpoints: the full
// account view including email and role, unlike the public summary
func authUserResponse(u *models.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"email":       u.Email,
		"displayName": u.DisplayName,
		"avatarUrl":   u.AvatarURL,
		"role":        u.Role,
	}
}
