package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/blog-community-api/internal/auth"
	"github.com/blog-community-api/internal/config"
	"github.com/blog-community-api/internal/models"
	"github.com/blog-community-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const userContextKey = "currentUser"

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	authHandler := NewAuthHandler(services, cfg, log)
	postHandler := NewPostHandler(services, log)
	eventHandler := NewEventHandler(services, log)
	userHandler := NewUserHandler(services, log)

	requireAuth := authRequired(services, log)
	optionalAuth := authOptional(services)

	// Health check
	router.GET("/health", healthCheck)

	// Auth
	router.POST("/auth/register_with_password", authHandler.Register)
	router.POST("/auth/login_with_password", authHandler.Login)
	router.POST("/auth/logout", authHandler.Logout)
	router.GET("/auth/session", authHandler.Session)

	// Posts
	router.GET("/posts", optionalAuth, postHandler.List)
	router.GET("/post/by-slug/:slug", postHandler.GetBySlug)
	router.POST("/post/create", requireAuth, postHandler.Create)
	router.PUT("/post/update", requireAuth, postHandler.Update)
	router.DELETE("/post/delete", requireAuth, postHandler.Delete)
	router.POST("/post/like", requireAuth, postHandler.ToggleLike)
	router.POST("/post/comment", requireAuth, postHandler.CreateComment)

	// Events
	router.POST("/event/create", requireAuth, eventHandler.Create)
	router.PUT("/event/update", requireAuth, eventHandler.Update)
	router.DELETE("/event/delete", requireAuth, eventHandler.Delete)
	router.GET("/event/next", eventHandler.Next)
	router.GET("/events/list", eventHandler.List)

	// Users
	router.GET("/users/search", userHandler.Search)
	router.GET("/users/:id", userHandler.GetByID)
	router.GET("/user/comments", optionalAuth, userHandler.Comments)
	router.GET("/user/created-posts", requireAuth, userHandler.CreatedPosts)
	router.GET("/user/liked-posts", requireAuth, userHandler.LikedPosts)

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "blog-community-api",
	})
}

// authRequired resolves the session cookie and aborts with 401 when it does
// not identify a user
func authRequired(services *service.Services, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		user, err := services.Auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, service.ErrNotAuthenticated) {
				log.Error().Err(err).Msg("Session resolution failed")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// authOptional resolves the session cookie when present; anonymous requests
// proceed without a user
func authOptional(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookieName)
		if err == nil && token != "" {
			if user, err := services.Auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(userContextKey, user)
			}
		}
		c.Next()
	}
}

// currentUser returns the authenticated user set by the auth middleware, or
// nil for anonymous requests
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
