package dto

import (
	"time"

	"photostack/internal/http-api/models"
)

// RegisterUserDTO for the explicit first-login registration call
type RegisterUserDTO struct {
	DisplayName string `json:"display_name" binding:"omitempty,min=1,max=100"`
	Role        string `json:"role" binding:"omitempty,oneof=creator consumer"`
	Bio         string `json:"bio" binding:"max=500"`
	Avatar      string `json:"avatar"`
}

// UpdateUserDTO for profile edits; nil fields are left untouched
type UpdateUserDTO struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=1,max=100"`
	Bio         *string `json:"bio" binding:"omitempty,max=500"`
	Avatar      *string `json:"avatar"`
}

// UpdateRoleDTO for switching a user between creator and consumer
type UpdateRoleDTO struct {
	Role string `json:"role" binding:"required"`
}

// PublicUserResponse is a profile view that never leaks the email or
// external subject id.
type PublicUserResponse struct {
	ID           string     `json:"id"`
	DisplayName  string     `json:"display_name"`
	Role         string     `json:"role"`
	Avatar       string     `json:"avatar"`
	Bio          string     `json:"bio"`
	PhotoCount   int64      `json:"photo_count"`
	TotalViews   int64      `json:"total_views"`
	CommentCount int64      `json:"comment_count"`
	RatingCount  int64      `json:"rating_count"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// FromModelToPublicUser converts a User model to its public profile view
func FromModelToPublicUser(user *models.User) *PublicUserResponse {
	return &PublicUserResponse{
		ID:           user.ID,
		DisplayName:  user.DisplayName,
		Role:         user.Role,
		Avatar:       user.Avatar,
		Bio:          user.Bio,
		PhotoCount:   user.PhotoCount,
		TotalViews:   user.TotalViews,
		CommentCount: user.CommentCount,
		RatingCount:  user.RatingCount,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
		LastLoginAt:  user.LastLoginAt,
	}
}

// UserStatsResponse reports recomputed engagement numbers for the caller
type UserStatsResponse struct {
	Role         string     `json:"role"`
	PhotoCount   int64      `json:"photo_count"`
	TotalViews   int64      `json:"total_views"`
	TotalRatings int64      `json:"total_ratings"` // ratings received on the user's photos
	CommentCount int64      `json:"comment_count"` // comments made by the user
	RatingCount  int64      `json:"rating_count"`  // ratings made by the user
	MemberSince  time.Time  `json:"member_since"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}
