package dto

type CreateMistakeTypeRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type UpdateMistakeTypeRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

type CreateMistakeRequest struct {
	MistakeTypeID  uint   `json:"mistake_type_id" binding:"required"`
	Description    string `json:"description" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required,min=1"`
	CriticalStatus string `json:"critical_status" binding:"max=50"`
	DocumentID     string `json:"document_id" binding:"required,uuid"`
}

// UpdateMistakeRequest applies a sparse merge: only supplied fields
// overwrite stored values.
type UpdateMistakeRequest struct {
	MistakeTypeID  *uint   `json:"mistake_type_id"`
	Description    *string `json:"description"`
	Quantity       *int    `json:"quantity" binding:"omitempty,min=1"`
	CriticalStatus *string `json:"critical_status" binding:"omitempty,max=50"`
	DocumentID     *string `json:"document_id" binding:"omitempty,uuid"`
}
