package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/normcontrol/corrector/internal/config"
	"github.com/normcontrol/corrector/internal/entity"
	document "github.com/normcontrol/corrector/internal/modules/document/service"
	"github.com/normcontrol/corrector/internal/modules/user/dto"
	"github.com/normcontrol/corrector/internal/modules/user/repository"
	"github.com/normcontrol/corrector/pkg/apperror"
	"gorm.io/gorm"
)

type UserService interface {
	List(ctx context.Context) ([]entity.User, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*entity.User, error)
	Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (*entity.User, error)
	Delete(ctx context.Context, id uint) error
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}

type userService struct {
	repo      repository.UserRepository
	documents document.DocumentService
	jwtSecret string
	tokenTTL  time.Duration
}

func NewUserService(repo repository.UserRepository, documents document.DocumentService, cfg *config.Config) UserService {
	return &userService{
		repo:      repo,
		documents: documents,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  cfg.JWTTTL,
	}
}

func (s *userService) List(ctx context.Context) ([]entity.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*entity.User, error) {
	if existing, _ := s.repo.FindByLogin(ctx, req.Login); existing != nil {
		return nil, fmt.Errorf("user with login %q %w", req.Login, apperror.ErrConflict)
	}

	theme := req.Theme
	if theme == "" {
		theme = entity.ThemeLight
	}

	user := &entity.User{
		FirstName:        req.FirstName,
		Surname:          req.Surname,
		Patronymic:       req.Patronymic,
		Login:            req.Login,
		Password:         req.Password,
		TgUsername:       req.TgUsername,
		IsTgSubscribed:   req.IsTgSubscribed,
		IsAdmin:          req.IsAdmin,
		Theme:            theme,
		NotificationPush: req.NotificationPush,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("user with login %q %w", req.Login, apperror.ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uint, req dto.UpdateUserRequest) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %w", apperror.ErrNotFound)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.Surname != nil {
		user.Surname = *req.Surname
	}
	if req.Patronymic != nil {
		user.Patronymic = *req.Patronymic
	}
	if req.TgUsername != nil {
		user.TgUsername = *req.TgUsername
	}
	if req.IsTgSubscribed != nil {
		user.IsTgSubscribed = *req.IsTgSubscribed
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.Theme != nil {
		user.Theme = *req.Theme
	}
	if req.NotificationPush != nil {
		user.NotificationPush = *req.NotificationPush
	}
	// Replaced only when supplied, non-empty and actually different.
	if req.Password != nil && *req.Password != "" && *req.Password != user.Password {
		user.Password = *req.Password
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account. The user's documents go through the
// document service first so their files leave the disk along with the
// rows; reviews are removed by the database cascade.
func (s *userService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("user %w", apperror.ErrNotFound)
	}

	docs, err := s.documents.ListByUser(ctx, id)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.documents.Delete(ctx, id, doc.ID); err != nil {
			return err
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByLogin(ctx, req.Login)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}

	// Plaintext comparison, kept for compatibility with existing clients.
	if user.Password != req.Password {
		return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
