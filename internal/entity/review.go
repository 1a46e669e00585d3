package entity

import "time"

// Review is a user's rating and optional comment, independent of any document.
type Review struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	Mark       int     `gorm:"not null" json:"mark"`
	ReviewText *string `gorm:"type:text" json:"review_text,omitempty"`

	// Always server-assigned at creation, client input is ignored.
	CreatedAt time.Time `json:"created_at"`
}
