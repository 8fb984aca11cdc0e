package dto

// CreateRatingDTO for creating or updating a rating
type CreateRatingDTO struct {
	Value int `json:"value" binding:"required,min=1,max=5"`
}

// RatingStatsResponse summarizes a photo's current rating set.
// Average is rounded to two decimals for display.
type RatingStatsResponse struct {
	Average      float64       `json:"average"`
	Total        int64         `json:"total"`
	Distribution map[int]int64 `json:"distribution"`
}

// UserRatingResponse is the caller's own rating for a photo
type UserRatingResponse struct {
	Value int `json:"value"`
}

// PhotoRatingStats is the aggregate echoed back after an upsert
type PhotoRatingStats struct {
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
}
