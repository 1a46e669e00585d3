package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusUploaded is the initial lifecycle state assigned to fresh uploads.
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusComplete   = "complete"
)

// Status is a named state in a document's correction lifecycle.
type Status struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

// Document is one uploaded file plus its correction metadata.
type Document struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FileName     string    `gorm:"size:255;uniqueIndex;not null" json:"file_name"`
	OriginalName string    `gorm:"size:255" json:"original_name"`
	UploadedAt   time.Time `gorm:"not null" json:"uploaded_at"`
	// File size in MB, rounded to 2 decimals; must reflect actual bytes written.
	SizeMB float64 `gorm:"not null" json:"size_mb"`

	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `json:"-"`

	StatusID uint    `gorm:"not null" json:"status_id"`
	Status   *Status `gorm:"constraint:OnUpdate:CASCADE" json:"status,omitempty"`

	ReportPath string `gorm:"type:text" json:"report_path"`
	// GOST-compliance score, 1 decimal. Written back by the correction process.
	Score        float64 `json:"score"`
	AnalysisTime float64 `json:"analysis_time"`

	Mistakes []Mistake `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"mistakes,omitempty"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
