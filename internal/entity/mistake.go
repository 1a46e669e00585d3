package entity

import "github.com/google/uuid"

// MistakeType is a catalog entry of error categories.
type MistakeType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

// Mistake is one detected issue tied to a document.
type Mistake struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MistakeTypeID uint         `gorm:"not null" json:"mistake_type_id"`
	MistakeType   *MistakeType `gorm:"constraint:OnUpdate:CASCADE" json:"mistake_type,omitempty"`

	Description    string `gorm:"type:text;not null" json:"description"`
	Quantity       int    `gorm:"not null" json:"quantity"`
	CriticalStatus string `gorm:"size:50" json:"critical_status"`

	DocumentID uuid.UUID `gorm:"type:uuid;not null;index" json:"document_id"`
}
