package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/normcontrol/corrector/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	FindAll(ctx context.Context) ([]entity.Document, error)
	// FindByID returns the document with its status and mistakes eagerly loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	FindByFileName(ctx context.Context, fileName string) (*entity.Document, error)
	FindByUser(ctx context.Context, userID uint) ([]entity.Document, error)
	Update(ctx context.Context, doc *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) FindAll(ctx context.Context) ([]entity.Document, error) {
	var docs []entity.Document
	if err := r.db.WithContext(ctx).Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var doc entity.Document
	err := r.db.WithContext(ctx).
		Preload("Status").
		Preload("Mistakes").
		First(&doc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindByFileName(ctx context.Context, fileName string) (*entity.Document, error) {
	var doc entity.Document
	if err := r.db.WithContext(ctx).Where("file_name = ?", fileName).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindByUser(ctx context.Context, userID uint) ([]entity.Document, error) {
	var docs []entity.Document
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) Update(ctx context.Context, doc *entity.Document) error {
	// The document may carry preloaded associations; only its own columns
	// are written back.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(doc).Error
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Document{}, "id = ?", id).Error
}
