package review

import (
	"context"
	"fmt"
	"time"

	"github.com/normcontrol/corrector/internal/entity"
	"github.com/normcontrol/corrector/internal/modules/review/dto"
	"github.com/normcontrol/corrector/internal/modules/review/repository"
	userRepo "github.com/normcontrol/corrector/internal/modules/user/repository"
	"github.com/normcontrol/corrector/pkg/apperror"
)

type ReviewService interface {
	Create(ctx context.Context, req dto.CreateReviewRequest) (*entity.Review, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.Review, error)
	Update(ctx context.Context, id uint, req dto.UpdateReviewRequest) (*entity.Review, error)
	Delete(ctx context.Context, id uint) error
}

type reviewService struct {
	repo     repository.ReviewRepository
	userRepo userRepo.UserRepository
}

func NewReviewService(repo repository.ReviewRepository, users userRepo.UserRepository) ReviewService {
	return &reviewService{repo: repo, userRepo: users}
}

func (s *reviewService) Create(ctx context.Context, req dto.CreateReviewRequest) (*entity.Review, error) {
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("user %w", apperror.ErrNotFound)
	}

	review := &entity.Review{
		UserID:     req.UserID,
		Mark:       req.Mark,
		ReviewText: req.ReviewText,
		// Always server-assigned; client input is ignored.
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListByUser(ctx context.Context, userID uint) ([]entity.Review, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *reviewService) Update(ctx context.Context, id uint, req dto.UpdateReviewRequest) (*entity.Review, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("review %w", apperror.ErrNotFound)
	}

	if req.Mark != nil {
		review.Mark = *req.Mark
	}
	if req.ReviewText != nil {
		review.ReviewText = req.ReviewText
	}

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("review %w", apperror.ErrNotFound)
	}
	return s.repo.Delete(ctx, id)
}
