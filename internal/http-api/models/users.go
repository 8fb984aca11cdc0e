package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCreator  = "creator"
	RoleConsumer = "consumer"
)

type User struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	SubjectID   string `gorm:"uniqueIndex;not null" json:"subject_id"` // identity provider object id
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string `gorm:"not null" json:"display_name"`
	Role        string `gorm:"default:'consumer';not null;index" json:"role"` // "creator" or "consumer"
	Avatar      string `gorm:"default:''" json:"avatar"`
	Bio         string `gorm:"size:500;default:''" json:"bio"`

	// Denormalized engagement counts
	PhotoCount   int64 `gorm:"default:0" json:"photo_count"`
	TotalViews   int64 `gorm:"default:0" json:"total_views"`
	CommentCount int64 `gorm:"default:0" json:"comment_count"`
	RatingCount  int64 `gorm:"default:0" json:"rating_count"`

	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (u *User) IsCreator() bool {
	return u.Role == RoleCreator
}

func (User) TableName() string {
	return "users"
}
