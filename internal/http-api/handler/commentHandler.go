package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photostack/internal/http-api/dto"
	"photostack/internal/http-api/middleware"
	"photostack/internal/http-api/service"
)

// CommentHandler exposes the comment REST endpoints.
type CommentHandler struct {
	comments service.CommentService
}

func NewCommentHandler(comments service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterRoutes mounts the comment routes. The listings are public
// behind the optional auth variant, everything else requires
// authentication.
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, auth, optional gin.HandlerFunc) {
	rg.GET("/photos/:id/comments", optional, h.ListByPhoto)
	rg.POST("/photos/:id/comments", auth, h.Create)
	rg.GET("/users/:id/comments", optional, h.ListByUser)

	comments := rg.Group("/comments")
	{
		comments.GET("/me", auth, h.ListMine)
		comments.GET("/:id", optional, h.Get)
		comments.PUT("/:id", auth, h.Update)
		comments.DELETE("/:id", auth, h.Delete)
	}
}

// ListByPhoto handles GET /photos/:id/comments.
func (h *CommentHandler) ListByPhoto(c *gin.Context) {
	photoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, fmt.Errorf("photo id must be an integer"))
		return
	}
	page, limit := dto.ParsePageParams(c.Query("page"), c.Query("limit"))

	comments, total, err := h.comments.ListByPhoto(photoID, page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       comments,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// Create handles POST /photos/:id/comments.
func (h *CommentHandler) Create(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authentication required"})
		return
	}

	photoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, fmt.Errorf("photo id must be an integer"))
		return
	}

	var input dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	comment, err := h.comments.Create(identity, photoID, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": comment, "message": "comment added"})
}

// ListMine handles GET /comments/me.
func (h *CommentHandler) ListMine(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authentication required"})
		return
	}
	page, limit := dto.ParsePageParams(c.Query("page"), c.Query("limit"))

	comments, total, err := h.comments.ListMine(identity, page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       comments,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// ListByUser handles GET /users/:id/comments with a public view of a
// user's comment history.
func (h *CommentHandler) ListByUser(c *gin.Context) {
	page, limit := dto.ParsePageParams(c.Query("page"), c.Query("limit"))

	comments, total, err := h.comments.ListByUser(c.Param("id"), page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       comments,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// Get handles GET /comments/:id.
func (h *CommentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, fmt.Errorf("comment id must be an integer"))
		return
	}

	comment, err := h.comments.GetByID(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": comment})
}

// Update handles PUT /comments/:id.
func (h *CommentHandler) Update(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authentication required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, fmt.Errorf("comment id must be an integer"))
		return
	}

	var input dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	comment, err := h.comments.Update(identity, id, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": comment, "message": "comment updated"})
}

// Delete handles DELETE /comments/:id.
func (h *CommentHandler) Delete(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authentication required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, fmt.Errorf("comment id must be an integer"))
		return
	}

	if err := h.comments.Delete(identity, id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "comment deleted"})
}
