package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photostack/internal/http-api/service"
)

// abortWithError maps service sentinel errors onto HTTP responses.
// Unrecognized errors become a 500 with the detail hidden outside
// debug mode.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "ValidationError", "message": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden", "message": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "NotFound", "message": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflict", "message": err.Error()})
	default:
		message := "something went wrong"
		if gin.Mode() != gin.ReleaseMode {
			message = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal", "message": message})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "ValidationError", "message": err.Error()})
}
