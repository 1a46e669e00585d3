package status

import (
	"context"
	"errors"
	"fmt"

	"github.com/normcontrol/corrector/internal/entity"
	"github.com/normcontrol/corrector/internal/modules/status/dto"
	"github.com/normcontrol/corrector/internal/modules/status/repository"
	"github.com/normcontrol/corrector/pkg/apperror"
	"gorm.io/gorm"
)

type StatusService interface {
	List(ctx context.Context) ([]entity.Status, error)
	Create(ctx context.Context, req dto.CreateStatusRequest) (*entity.Status, error)
	Update(ctx context.Context, id uint, req dto.UpdateStatusRequest) (*entity.Status, error)
	Delete(ctx context.Context, id uint) error
}

type statusService struct {
	repo repository.StatusRepository
}

func NewStatusService(repo repository.StatusRepository) StatusService {
	return &statusService{repo: repo}
}

func (s *statusService) List(ctx context.Context) ([]entity.Status, error) {
	return s.repo.FindAll(ctx)
}

func (s *statusService) Create(ctx context.Context, req dto.CreateStatusRequest) (*entity.Status, error) {
	if existing, _ := s.repo.FindByName(ctx, req.Name); existing != nil {
		return nil, fmt.Errorf("status with name %q %w", req.Name, apperror.ErrConflict)
	}

	status := &entity.Status{Name: req.Name}
	if err := s.repo.Create(ctx, status); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("status with name %q %w", req.Name, apperror.ErrConflict)
		}
		return nil, err
	}
	return status, nil
}

func (s *statusService) Update(ctx context.Context, id uint, req dto.UpdateStatusRequest) (*entity.Status, error) {
	status, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("status %w", apperror.ErrNotFound)
	}

	if req.Name != nil {
		status.Name = *req.Name
	}

	if err := s.repo.Update(ctx, status); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("status with name %q %w", status.Name, apperror.ErrConflict)
		}
		return nil, err
	}
	return status, nil
}

func (s *statusService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("status %w", apperror.ErrNotFound)
	}
	return s.repo.Delete(ctx, id)
}
