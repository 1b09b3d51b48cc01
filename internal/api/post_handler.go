package api

import (
	"net/http"

	"github.com/blog-community-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PostHandler handles post, like and comment endpoints
type PostHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		services: services,
		log:      log.With().Str("handler", "post").Logger(),
	}
}

// List handles GET /posts. ?mode=admin includes unpublished posts for admins.
func (h *PostHandler) List(c *gin.Context) {
	viewer := currentUser(c)
	adminMode := c.Query("mode") == "admin"

	posts, err := h.services.Post.List(c.Request.Context(), viewer, adminMode)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetBySlug handles GET /post/by-slug/:slug. Comment bodies in the response
// are mention-decoded.
func (h *PostHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug is required"})
		return
	}

	detail, err := h.services.Post.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

type createPostRequest struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// Create handles POST /post/create
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.services.Post.Create(c.Request.Context(), currentUser(c), req.Title, req.Slug, req.Content, req.Published)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

type updatePostRequest struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// Update handles PUT /post/update
func (h *PostHandler) Update(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.services.Post.Update(c.Request.Context(), currentUser(c), req.ID, req.Title, req.Slug, req.Content, req.Published)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type deletePostRequest struct {
	ID int64 `json:"id"`
}

// Delete handles DELETE /post/delete
func (h *PostHandler) Delete(c *gin.Context) {
	var req deletePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.services.Post.Delete(c.Request.Context(), currentUser(c), req.ID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type likeRequest struct {
	PostID int64 `json:"postId"`
}

// ToggleLike handles POST /post/like
func (h *PostHandler) ToggleLike(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	liked, err := h.services.Post.ToggleLike(c.Request.Context(), currentUser(c), req.PostID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

type createCommentRequest struct {
	PostID  int64  `json:"postId"`
	Content string `json:"content"`
}

// CreateComment handles POST /post/comment. The response carries the
// original name-form content; the stored body is mention-encoded.
func (h *PostHandler) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.services.Comment.Create(c.Request.Context(), currentUser(c), req.PostID, req.Content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}
