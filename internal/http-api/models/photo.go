package models

import "time"

type Photo struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatorID string `json:"creator_id" gorm:"type:uuid;not null;index"`
	Title     string `json:"title" gorm:"not null"`
	Caption   string `json:"caption" gorm:"default:''"`
	Location  string `json:"location" gorm:"default:'';index"`
	// Free-text people tags, normalized to a string slice at the API boundary
	People []string `json:"people" gorm:"serializer:json"`

	// Blob storage reference
	BlobURL  string `json:"blob_url" gorm:"not null"`
	BlobName string `json:"blob_name" gorm:"not null"`
	MimeType string `json:"mime_type" gorm:"not null"`
	FileSize int64  `json:"file_size" gorm:"not null"`

	// AI-derived metadata
	AITags         []string `json:"ai_tags" gorm:"serializer:json"`
	AIDescription  string   `json:"ai_description" gorm:"default:''"`
	DominantColors []string `json:"dominant_colors" gorm:"serializer:json"`
	IsAdultContent bool     `json:"is_adult_content" gorm:"default:false"`

	// Engagement metrics
	ViewCount     int64   `json:"view_count" gorm:"default:0"`
	AverageRating float64 `json:"average_rating" gorm:"default:0"`
	RatingCount   int64   `json:"rating_count" gorm:"default:0"`
	CommentCount  int64   `json:"comment_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Creator User `json:"creator,omitempty" gorm:"foreignKey:CreatorID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (Photo) TableName() string {
	return "photos"
}
