package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photostack/internal/http-api/dto"
	"photostack/internal/http-api/middleware"
	"photostack/internal/http-api/service"
)

// UserHandler exposes the user and profile REST endpoints.
type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes mounts the user routes.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	users := rg.Group("/users")
	{
		users.GET("/creators", h.ListCreators)
		users.GET("/subject/:subjectId", h.GetBySubject)
		users.GET("/:id", h.GetByID)

		users.GET("/me", auth, h.Me)
		users.PUT("/me", auth, h.UpdateProfile)
		users.GET("/me/stats", auth, h.Stats)
		users.PUT("/me/role", auth, h.UpdateRole)
		users.POST("/register", auth, h.Register)
	}
}

// Me handles GET /users/me, creating the account on first login.
func (h *UserHandler) Me(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authentication required"})
		return
	}

	user, err := h.users.GetOrCreate(identity)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// Register handles POST /users/register.
func (h *UserHandler) Register(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authentication required"})
		return
	}

	var input dto.RegisterUserDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.Register(identity, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": user, "message": "account registered"})
}

// UpdateProfile handles PUT /users/me.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authentication required"})
		return
	}

	var input dto.UpdateUserDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.UpdateProfile(identity, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user, "message": "profile updated"})
}

// Stats handles GET /users/me/stats.
func (h *UserHandler) Stats(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authentication required"})
		return
	}

	stats, err := h.users.Stats(identity)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// UpdateRole handles PUT /users/me/role.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "authentication required"})
		return
	}

	var input dto.UpdateRoleDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.UpdateRole(identity, input.Role)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user, "message": "role updated"})
}

// ListCreators handles GET /users/creators.
func (h *UserHandler) ListCreators(c *gin.Context) {
	page, limit := dto.ParsePageParams(c.Query("page"), c.Query("limit"))

	creators, total, err := h.users.ListCreators(page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	public := make([]*dto.PublicUserResponse, 0, len(creators))
	for i := range creators {
		public = append(public, dto.FromModelToPublicUser(&creators[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       public,
		"pagination": dto.NewPagination(page, limit, total),
	})
}

// GetByID handles GET /users/:id with a public view of the profile.
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.users.GetByID(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.FromModelToPublicUser(user)})
}

// GetBySubject handles GET /users/subject/:subjectId.
func (h *UserHandler) GetBySubject(c *gin.Context) {
	user, err := h.users.GetBySubject(c.Param("subjectId"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.FromModelToPublicUser(user)})
}
