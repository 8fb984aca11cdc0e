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

// RatingHandler exposes the rating REST endpoints nested under photos.
type RatingHandler struct {
	ratings service.RatingService
}

func NewRatingHandler(ratings service.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// RegisterRoutes mounts the rating routes. Stats are public, per-user
// operations require authentication.
func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("/photos/:id/ratings", h.Stats)
	rg.GET("/photos/:id/ratings/me", auth, h.GetMine)
	rg.POST("/photos/:id/ratings", auth, h.Upsert)
	rg.DELETE("/photos/:id/ratings", auth, h.Remove)
}

func photoIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("photo id must be an integer")
	}
	return id, nil
}

// Upsert handles POST /photos/:id/ratings, creating or replacing the
// caller's rating.
func (h *RatingHandler) Upsert(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authentication required"})
		return
	}

	photoID, err := photoIDParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	var input dto.CreateRatingDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	stats, err := h.ratings.Upsert(identity, photoID, input.Value)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats, "message": "rating saved"})
}

// Remove handles DELETE /photos/:id/ratings.
func (h *RatingHandler) Remove(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authentication required"})
		return
	}

	photoID, err := photoIDParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	stats, err := h.ratings.Remove(identity, photoID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats, "message": "rating removed"})
}

// Stats handles GET /photos/:id/ratings.
func (h *RatingHandler) Stats(c *gin.Context) {
	photoID, err := photoIDParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	stats, err := h.ratings.GetStats(photoID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// GetMine handles GET /photos/:id/ratings/me.
func (h *RatingHandler) GetMine(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authentication required"})
		return
	}

	photoID, err := photoIDParam(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	rating, err := h.ratings.GetUserRating(identity, photoID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": rating})
}
