package dto

// CreateCommentDTO for posting a comment on a photo
type CreateCommentDTO struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// UpdateCommentDTO for editing a comment
type UpdateCommentDTO struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}
