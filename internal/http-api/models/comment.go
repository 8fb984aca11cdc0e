package models

import "time"

const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
	SentimentUnknown  = "unknown"
)

type Comment struct {
	ID      int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	PhotoID int64  `json:"photo_id" gorm:"not null;index"`
	UserID  string `json:"user_id" gorm:"type:uuid;not null;index"`
	// Denormalized so comment lists render without a user join
	UserDisplayName string `json:"user_display_name" gorm:"not null"`
	Content         string `json:"content" gorm:"not null;size:1000"`

	// Sentiment analysis result; "unknown" when the analyzer is unavailable
	Sentiment      string  `json:"sentiment" gorm:"default:'unknown'"`
	SentimentScore float64 `json:"sentiment_score" gorm:"default:0"`

	IsEdited  bool      `json:"is_edited" gorm:"default:false"`
	IsDeleted bool      `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Photo Photo `json:"photo,omitempty" gorm:"foreignKey:PhotoID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
