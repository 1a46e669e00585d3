package dto

type CreateStatusRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

type UpdateStatusRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=50"`
}
