package mistake

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/normcontrol/corrector/internal/entity"
	documentRepo "github.com/normcontrol/corrector/internal/modules/document/repository"
	"github.com/normcontrol/corrector/internal/modules/mistake/dto"
	"github.com/normcontrol/corrector/internal/modules/mistake/repository"
	"github.com/normcontrol/corrector/pkg/apperror"
	"gorm.io/gorm"
)

type MistakeService interface {
	ListTypes(ctx context.Context) ([]entity.MistakeType, error)
	CreateType(ctx context.Context, req dto.CreateMistakeTypeRequest) (*entity.MistakeType, error)
	UpdateType(ctx context.Context, id uint, req dto.UpdateMistakeTypeRequest) (*entity.MistakeType, error)
	DeleteType(ctx context.Context, id uint) error

	List(ctx context.Context) ([]entity.Mistake, error)
	Create(ctx context.Context, req dto.CreateMistakeRequest) (*entity.Mistake, error)
	Update(ctx context.Context, id uint, req dto.UpdateMistakeRequest) (*entity.Mistake, error)
	Delete(ctx context.Context, id uint) error
}

type mistakeService struct {
	typeRepo    repository.MistakeTypeRepository
	mistakeRepo repository.MistakeRepository
	docRepo     documentRepo.DocumentRepository
}

func NewMistakeService(
	typeRepo repository.MistakeTypeRepository,
	mistakeRepo repository.MistakeRepository,
	docRepo documentRepo.DocumentRepository,
) MistakeService {
	return &mistakeService{
		typeRepo:    typeRepo,
		mistakeRepo: mistakeRepo,
		docRepo:     docRepo,
	}
}

func (s *mistakeService) ListTypes(ctx context.Context) ([]entity.MistakeType, error) {
	return s.typeRepo.FindAll(ctx)
}

func (s *mistakeService) CreateType(ctx context.Context, req dto.CreateMistakeTypeRequest) (*entity.MistakeType, error) {
	if existing, _ := s.typeRepo.FindByName(ctx, req.Name); existing != nil {
		return nil, fmt.Errorf("mistake type with name %q %w", req.Name, apperror.ErrConflict)
	}

	mt := &entity.MistakeType{Name: req.Name}
	if err := s.typeRepo.Create(ctx, mt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("mistake type with name %q %w", req.Name, apperror.ErrConflict)
		}
		return nil, err
	}
	return mt, nil
}

func (s *mistakeService) UpdateType(ctx context.Context, id uint, req dto.UpdateMistakeTypeRequest) (*entity.MistakeType, error) {
	mt, err := s.typeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mistake type %w", apperror.ErrNotFound)
	}

	if req.Name != nil {
		mt.Name = *req.Name
	}

	if err := s.typeRepo.Update(ctx, mt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("mistake type with name %q %w", mt.Name, apperror.ErrConflict)
		}
		return nil, err
	}
	return mt, nil
}

func (s *mistakeService) DeleteType(ctx context.Context, id uint) error {
	if _, err := s.typeRepo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("mistake type %w", apperror.ErrNotFound)
	}
	return s.typeRepo.Delete(ctx, id)
}

func (s *mistakeService) List(ctx context.Context) ([]entity.Mistake, error) {
	return s.mistakeRepo.FindAll(ctx)
}

func (s *mistakeService) Create(ctx context.Context, req dto.CreateMistakeRequest) (*entity.Mistake, error) {
	if _, err := s.typeRepo.FindByID(ctx, req.MistakeTypeID); err != nil {
		return nil, fmt.Errorf("mistake type %w", apperror.ErrNotFound)
	}

	docID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("%w: document id must be a uuid", apperror.ErrInvalidInput)
	}
	if _, err := s.docRepo.FindByID(ctx, docID); err != nil {
		return nil, fmt.Errorf("document %w", apperror.ErrNotFound)
	}

	mistake := &entity.Mistake{
		MistakeTypeID:  req.MistakeTypeID,
		Description:    req.Description,
		Quantity:       req.Quantity,
		CriticalStatus: req.CriticalStatus,
		DocumentID:     docID,
	}
	if err := s.mistakeRepo.Create(ctx, mistake); err != nil {
		return nil, err
	}
	return mistake, nil
}

func (s *mistakeService) Update(ctx context.Context, id uint, req dto.UpdateMistakeRequest) (*entity.Mistake, error) {
	mistake, err := s.mistakeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mistake %w", apperror.ErrNotFound)
	}

	if req.MistakeTypeID != nil {
		if _, err := s.typeRepo.FindByID(ctx, *req.MistakeTypeID); err != nil {
			return nil, fmt.Errorf("mistake type %w", apperror.ErrNotFound)
		}
		mistake.MistakeTypeID = *req.MistakeTypeID
	}
	if req.Description != nil {
		mistake.Description = *req.Description
	}
	if req.Quantity != nil {
		mistake.Quantity = *req.Quantity
	}
	if req.CriticalStatus != nil {
		mistake.CriticalStatus = *req.CriticalStatus
	}
	if req.DocumentID != nil {
		docID, err := uuid.Parse(*req.DocumentID)
		if err != nil {
			return nil, fmt.Errorf("%w: document id must be a uuid", apperror.ErrInvalidInput)
		}
		if _, err := s.docRepo.FindByID(ctx, docID); err != nil {
			return nil, fmt.Errorf("document %w", apperror.ErrNotFound)
		}
		mistake.DocumentID = docID
	}

	if err := s.mistakeRepo.Update(ctx, mistake); err != nil {
		return nil, err
	}
	return mistake, nil
}

func (s *mistakeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.mistakeRepo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("mistake %w", apperror.ErrNotFound)
	}
	return s.mistakeRepo.Delete(ctx, id)
}
