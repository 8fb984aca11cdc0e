package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"photostack/internal/cache"
	"photostack/internal/http-api/dto"
	"photostack/internal/http-api/middleware"
	"photostack/internal/http-api/service"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// PhotoHandler exposes the photo REST endpoints.
type PhotoHandler struct {
	photos        service.PhotoService
	trendingCache *cache.TrendingCache
	maxUploadSize int64
}

func NewPhotoHandler(photos service.PhotoService, trendingCache *cache.TrendingCache, maxUploadSize int64) *PhotoHandler {
	return &PhotoHandler{
		photos:        photos,
		trendingCache: trendingCache,
		maxUploadSize: maxUploadSize,
	}
}

// RegisterRoutes mounts the photo routes. Reads are public behind the
// optional auth variant, writes require an authenticated creator.
func (h *PhotoHandler) RegisterRoutes(rg *gin.RouterGroup, auth, optional gin.HandlerFunc) {
	photos := rg.Group("/photos")
	{
		photos.GET("", optional, h.List)
		photos.GET("/search", optional, h.Search)
		photos.GET("/trending", optional, h.Trending)
		photos.GET("/creator/:creatorId", optional, h.ListByCreator)
		photos.GET("/:id", optional, h.Get)

		photos.POST("", auth, h.Create)
		photos.PUT("/:id", auth, h.Update)
		photos.DELETE("/:id", auth, h.Delete)
	}
}

// List handles GET /photos with filtering, sorting and pagination.
func (h *PhotoHandler) List(c *gin.Context) {
	page, limit := dto.ParsePageParams(c.Query("page"), c.Query("limit"))
	filters := dto.PhotoListFilters{
		CreatorID: c.Query("creator"),
		Location:  c.Query("location"),
		Search:    c.Query("search"),
		Sort:      c.Query("sort"),
	}

	photos, total, err := h.photos.List(c.Request.Context(), filters, page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       photos,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// Search handles GET /photos/search over text, tags, location and people.
func (h *PhotoHandler) Search(c *gin.Context) {
	page, limit := dto.ParsePageParams(c.Query("page"), c.Query("limit"))
	filters := dto.PhotoSearchFilters{
		Query:    c.Query("q"),
		Tags:     dto.SplitCSV(c.Query("tags")),
		Location: c.Query("location"),
		People:   dto.SplitCSV(c.Query("people")),
	}

	photos, total, err := h.photos.Search(c.Request.Context(), filters, page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       photos,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// Trending handles GET /photos/trending?period=day|week|month. Responses
// are served from the cache when one is available.
func (h *PhotoHandler) Trending(c *gin.Context) {
	period := c.DefaultQuery("period", "week")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if h.trendingCache != nil && limit == 20 {
		if cached, ok := h.trendingCache.Get(c.Request.Context(), period); ok {
			c.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	photos, err := h.photos.Trending(c.Request.Context(), period, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	body := gin.H{"success": true, "data": photos}
	if h.trendingCache != nil && limit == 20 {
		if raw, err := json.Marshal(body); err == nil {
			h.trendingCache.Set(c.Request.Context(), period, raw)
		}
	}
	c.JSON(http.StatusOK, body)
}

// ListByCreator handles GET /photos/creator/:creatorId.
func (h *PhotoHandler) ListByCreator(c *gin.Context) {
	page, limit := dto.ParsePageParams(c.Query("page"), c.Query("limit"))

	photos, total, err := h.photos.ListByCreator(c.Request.Context(), c.Param("creatorId"), page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       photos,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// Get handles GET /photos/:id and counts the view.
func (h *PhotoHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, fmt.Errorf("photo id must be an integer"))
		return
	}

	photo, err := h.photos.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": photo})
}

// Create handles POST /photos as a multipart upload.
func (h *PhotoHandler) Create(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authentication required"})
		return
	}

	var input dto.CreatePhotoDTO
	if err := c.ShouldBind(&input); err != nil {
		badRequest(c, err)
		return
	}

	image, err := h.readImage(c)
	if err != nil {
		badRequest(c, err)
		return
	}

	photo, err := h.photos.Create(c.Request.Context(), identity, input, image)
	if err != nil {
		abortWithError(c, err)
		return
	}
	h.invalidateTrending(c)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    photo,
		"message": "photo uploaded",
	})
}

// readImage pulls the "image" file out of the multipart form and checks
// its size and content type.
func (h *PhotoHandler) readImage(c *gin.Context) (dto.UploadedImage, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return dto.UploadedImage{}, fmt.Errorf("image file is required")
	}
	if h.maxUploadSize > 0 && fileHeader.Size > h.maxUploadSize {
		return dto.UploadedImage{}, fmt.Errorf("image exceeds the %d byte limit", h.maxUploadSize)
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[strings.ToLower(mimeType)] {
		return dto.UploadedImage{}, fmt.Errorf("unsupported image type %q", mimeType)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return dto.UploadedImage{}, fmt.Errorf("failed to read image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return dto.UploadedImage{}, fmt.Errorf("failed to read image: %w", err)
	}

	return dto.UploadedImage{
		Data:     data,
		FileName: fileHeader.Filename,
		MimeType: mimeType,
		Size:     fileHeader.Size,
	}, nil
}

// Update handles PUT /photos/:id.
func (h *PhotoHandler) Update(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authentication required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, fmt.Errorf("photo id must be an integer"))
		return
	}

	var input dto.UpdatePhotoDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	photo, err := h.photos.Update(c.Request.Context(), identity, id, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": photo, "message": "photo updated"})
}

// Delete handles DELETE /photos/:id.
func (h *PhotoHandler) Delete(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authentication required"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, fmt.Errorf("photo id must be an integer"))
		return
	}

	if err := h.photos.Delete(c.Request.Context(), identity, id); err != nil {
		abortWithError(c, err)
		return
	}
	h.invalidateTrending(c)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "photo deleted"})
}

// invalidateTrending drops the cached trending listings after a write
// that changes which photos can appear in them.
func (h *PhotoHandler) invalidateTrending(c *gin.Context) {
	if h.trendingCache != nil {
		h.trendingCache.Invalidate(c.Request.Context(), "day", "week", "month")
	}
}
