package dto

type CreateReviewRequest struct {
	UserID     uint    `json:"user_id" binding:"required"`
	Mark       int     `json:"mark" binding:"required,min=1,max=5"`
	ReviewText *string `json:"review_text"`
}

// UpdateReviewRequest applies a sparse merge; created_at is never
// client-writable.
type UpdateReviewRequest struct {
	Mark       *int    `json:"mark" binding:"omitempty,min=1,max=5"`
	ReviewText *string `json:"review_text"`
}
