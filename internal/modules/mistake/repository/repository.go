package repository

import (
	"context"

	"github.com/normcontrol/corrector/internal/entity"
	"gorm.io/gorm"
)

type MistakeTypeRepository interface {
	Create(ctx context.Context, mt *entity.MistakeType) error
	FindAll(ctx context.Context) ([]entity.MistakeType, error)
	FindByID(ctx context.Context, id uint) (*entity.MistakeType, error)
	FindByName(ctx context.Context, name string) (*entity.MistakeType, error)
	Update(ctx context.Context, mt *entity.MistakeType) error
	Delete(ctx context.Context, id uint) error
}

type MistakeRepository interface {
	Create(ctx context.Context, mistake *entity.Mistake) error
	FindAll(ctx context.Context) ([]entity.Mistake, error)
	FindByID(ctx context.Context, id uint) (*entity.Mistake, error)
	Update(ctx context.Context, mistake *entity.Mistake) error
	Delete(ctx context.Context, id uint) error
}

type mistakeTypeRepository struct {
	db *gorm.DB
}

func NewMistakeTypeRepository(db *gorm.DB) MistakeTypeRepository {
	return &mistakeTypeRepository{db: db}
}

func (r *mistakeTypeRepository) Create(ctx context.Context, mt *entity.MistakeType) error {
	return r.db.WithContext(ctx).Create(mt).Error
}

func (r *mistakeTypeRepository) FindAll(ctx context.Context) ([]entity.MistakeType, error) {
	var types []entity.MistakeType
	if err := r.db.WithContext(ctx).Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *mistakeTypeRepository) FindByID(ctx context.Context, id uint) (*entity.MistakeType, error) {
	var mt entity.MistakeType
	if err := r.db.WithContext(ctx).First(&mt, id).Error; err != nil {
		return nil, err
	}
	return &mt, nil
}

func (r *mistakeTypeRepository) FindByName(ctx context.Context, name string) (*entity.MistakeType, error) {
	var mt entity.MistakeType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&mt).Error; err != nil {
		return nil, err
	}
	return &mt, nil
}

func (r *mistakeTypeRepository) Update(ctx context.Context, mt *entity.MistakeType) error {
	return r.db.WithContext(ctx).Save(mt).Error
}

func (r *mistakeTypeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.MistakeType{}, id).Error
}

type mistakeRepository struct {
	db *gorm.DB
}

func NewMistakeRepository(db *gorm.DB) MistakeRepository {
	return &mistakeRepository{db: db}
}

func (r *mistakeRepository) Create(ctx context.Context, mistake *entity.Mistake) error {
	return r.db.WithContext(ctx).Create(mistake).Error
}

func (r *mistakeRepository) FindAll(ctx context.Context) ([]entity.Mistake, error) {
	var mistakes []entity.Mistake
	if err := r.db.WithContext(ctx).Find(&mistakes).Error; err != nil {
		return nil, err
	}
	return mistakes, nil
}

func (r *mistakeRepository) FindByID(ctx context.Context, id uint) (*entity.Mistake, error) {
	var mistake entity.Mistake
	if err := r.db.WithContext(ctx).First(&mistake, id).Error; err != nil {
		return nil, err
	}
	return &mistake, nil
}

func (r *mistakeRepository) Update(ctx context.Context, mistake *entity.Mistake) error {
	return r.db.WithContext(ctx).Save(mistake).Error
}

func (r *mistakeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Mistake{}, id).Error
}
