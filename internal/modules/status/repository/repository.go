package repository

import (
	"context"

	"github.com/normcontrol/corrector/internal/entity"
	"gorm.io/gorm"
)

type StatusRepository interface {
	Create(ctx context.Context, status *entity.Status) error
	FindAll(ctx context.Context) ([]entity.Status, error)
	FindByID(ctx context.Context, id uint) (*entity.Status, error)
	FindByName(ctx context.Context, name string) (*entity.Status, error)
	Update(ctx context.Context, status *entity.Status) error
	Delete(ctx context.Context, id uint) error
}

type statusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Create(ctx context.Context, status *entity.Status) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *statusRepository) FindAll(ctx context.Context) ([]entity.Status, error) {
	var statuses []entity.Status
	if err := r.db.WithContext(ctx).Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *statusRepository) FindByID(ctx context.Context, id uint) (*entity.Status, error) {
	var status entity.Status
	if err := r.db.WithContext(ctx).First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) FindByName(ctx context.Context, name string) (*entity.Status, error) {
	var status entity.Status
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) Update(ctx context.Context, status *entity.Status) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *statusRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Status{}, id).Error
}
