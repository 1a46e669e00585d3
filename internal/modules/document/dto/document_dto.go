package dto

import (
	"io"
	"time"
)

type CreateDocumentRequest struct {
	FileName     string  `json:"file_name" binding:"required,max=255"`
	OriginalName string  `json:"original_name" binding:"max=255"`
	UploadedAt   string  `json:"uploaded_at"` // RFC 3339; defaults to now
	SizeMB       float64 `json:"size_mb" binding:"gte=0"`
	UserID       uint    `json:"user_id" binding:"required"`
	StatusID     uint    `json:"status_id" binding:"required"`
	ReportPath   string  `json:"report_path"`
	Score        float64 `json:"score" binding:"gte=0"`
	AnalysisTime float64 `json:"analysis_time" binding:"gte=0"`
}

// UpdateDocumentRequest is the write-back surface of the correction
// process: only supplied fields overwrite stored values.
type UpdateDocumentRequest struct {
	FileName     *string  `json:"file_name" binding:"omitempty,min=1,max=255"`
	OriginalName *string  `json:"original_name" binding:"omitempty,max=255"`
	StatusID     *uint    `json:"status_id"`
	ReportPath   *string  `json:"report_path"`
	Score        *float64 `json:"score" binding:"omitempty,gte=0"`
	AnalysisTime *float64 `json:"analysis_time" binding:"omitempty,gte=0"`
}

// UploadFile carries the raw upload stream plus the claimed original name.
type UploadFile struct {
	Reader   io.Reader
	FileName string
}

type UploadResponse struct {
	ID           string    `json:"id"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	FilePath     string    `json:"file_path"`
	SizeMB       float64   `json:"size_mb"`
	UploadedAt   time.Time `json:"uploaded_at"`
	UserID       uint      `json:"user_id"`
	Message      string    `json:"message"`
}

// DownloadResult points the delivery layer at the stored file.
type DownloadResult struct {
	Path         string
	OriginalName string
}
