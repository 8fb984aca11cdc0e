package models

import "time"

type Rating struct {
	ID      int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	PhotoID int64  `json:"photo_id" gorm:"not null;uniqueIndex:idx_rating_photo_user"`
	UserID  string `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_rating_photo_user"`
	Value   int    `json:"value" gorm:"not null;check:value >= 1 AND value <= 5"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Photo Photo `json:"photo,omitempty" gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE;"`
}

func (Rating) TableName() string {
	return "ratings"
}
