package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/normcontrol/corrector/internal/config"
	"github.com/normcontrol/corrector/internal/entity"
	"github.com/normcontrol/corrector/internal/modules/document/dto"
	"github.com/normcontrol/corrector/internal/modules/document/repository"
	statusRepo "github.com/normcontrol/corrector/internal/modules/status/repository"
	userRepo "github.com/normcontrol/corrector/internal/modules/user/repository"
	"github.com/normcontrol/corrector/pkg/apperror"
	"github.com/normcontrol/corrector/pkg/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// allowedExtensions is the upload allow-set; anything else is rejected
// before a single byte is written.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

type DocumentService interface {
	List(ctx context.Context) ([]entity.Document, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	Create(ctx context.Context, req dto.CreateDocumentRequest) (*entity.Document, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateDocumentRequest) (*entity.Document, error)
	Delete(ctx context.Context, userID uint, id uuid.UUID) error

	Upload(ctx context.Context, userID uint, file dto.UploadFile) (*dto.UploadResponse, error)
	Download(ctx context.Context, userID uint, id uuid.UUID) (*dto.DownloadResult, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.Document, error)
}

type documentService struct {
	repo       repository.DocumentRepository
	userRepo   userRepo.UserRepository
	statusRepo statusRepo.StatusRepository
	files      storage.FileStorage
	cfg        *config.Config
	logger     *zap.SugaredLogger
}

func NewDocumentService(
	repo repository.DocumentRepository,
	users userRepo.UserRepository,
	statuses statusRepo.StatusRepository,
	files storage.FileStorage,
	cfg *config.Config,
	logger *zap.SugaredLogger,
) DocumentService {
	return &documentService{
		repo:       repo,
		userRepo:   users,
		statusRepo: statuses,
		files:      files,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *documentService) List(ctx context.Context) ([]entity.Document, error) {
	return s.repo.FindAll(ctx)
}

func (s *documentService) Get(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("document %w", apperror.ErrNotFound)
	}
	// An empty mistake list serializes as [], not null.
	if doc.Mistakes == nil {
		doc.Mistakes = []entity.Mistake{}
	}
	return doc, nil
}

func (s *documentService) Create(ctx context.Context, req dto.CreateDocumentRequest) (*entity.Document, error) {
	if existing, _ := s.repo.FindByFileName(ctx, req.FileName); existing != nil {
		return nil, fmt.Errorf("document with file name %q %w", req.FileName, apperror.ErrConflict)
	}
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("user %w", apperror.ErrNotFound)
	}
	if _, err := s.statusRepo.FindByID(ctx, req.StatusID); err != nil {
		return nil, fmt.Errorf("status %w", apperror.ErrNotFound)
	}

	uploadedAt := time.Now()
	if req.UploadedAt != "" {
		t, err := time.Parse(time.RFC3339, req.UploadedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: uploaded_at must be RFC 3339", apperror.ErrInvalidInput)
		}
		uploadedAt = t
	}

	doc := &entity.Document{
		FileName:     req.FileName,
		OriginalName: req.OriginalName,
		UploadedAt:   uploadedAt,
		SizeMB:       round2(req.SizeMB),
		UserID:       req.UserID,
		StatusID:     req.StatusID,
		ReportPath:   req.ReportPath,
		Score:        round1(req.Score),
		AnalysisTime: round2(req.AnalysisTime),
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("document with file name %q %w", req.FileName, apperror.ErrConflict)
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateDocumentRequest) (*entity.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("document %w", apperror.ErrNotFound)
	}

	if req.FileName != nil && *req.FileName != doc.FileName {
		if existing, _ := s.repo.FindByFileName(ctx, *req.FileName); existing != nil {
			return nil, fmt.Errorf("document with file name %q %w", *req.FileName, apperror.ErrConflict)
		}
		doc.FileName = *req.FileName
	}
	if req.OriginalName != nil {
		doc.OriginalName = *req.OriginalName
	}
	if req.StatusID != nil {
		if _, err := s.statusRepo.FindByID(ctx, *req.StatusID); err != nil {
			return nil, fmt.Errorf("status %w", apperror.ErrNotFound)
		}
		doc.StatusID = *req.StatusID
	}
	if req.ReportPath != nil {
		doc.ReportPath = *req.ReportPath
	}
	if req.Score != nil {
		doc.Score = round1(*req.Score)
	}
	if req.AnalysisTime != nil {
		doc.AnalysisTime = round2(*req.AnalysisTime)
	}

	if err := s.repo.Update(ctx, doc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("document with file name %q %w", doc.FileName, apperror.ErrConflict)
		}
		return nil, err
	}
	return doc, nil
}

// Delete removes both the stored file and the metadata row, only for the
// document's owner. A failed file removal aborts the operation so the two
// never diverge silently.
func (s *documentService) Delete(ctx context.Context, userID uint, id uuid.UUID) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil || doc.UserID != userID {
		return fmt.Errorf("document %w", apperror.ErrNotFound)
	}

	if s.files.Exists(doc.FileName) {
		if err := s.files.Delete(doc.FileName); err != nil {
			return fmt.Errorf("%w: %v", apperror.ErrStorage, err)
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *documentService) Upload(ctx context.Context, userID uint, file dto.UploadFile) (*dto.UploadResponse, error) {
	ext := strings.ToLower(filepath.Ext(file.FileName))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: file type %q is not allowed (allowed: .pdf, .doc, .docx, .txt)", apperror.ErrInvalidInput, ext)
	}

	maxBytes := s.cfg.MaxUploadBytes()
	data, err := io.ReadAll(io.LimitReader(file.Reader, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read upload: %v", apperror.ErrStorage, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: maximum size is %dMB", apperror.ErrPayloadTooLarge, s.cfg.MaxUploadSizeMB)
	}

	initial, err := s.statusRepo.FindByName(ctx, entity.StatusUploaded)
	if err != nil {
		return nil, fmt.Errorf("%w: initial status is not seeded", apperror.ErrInternal)
	}

	now := time.Now()
	storedName := fmt.Sprintf("%d_%s%s", userID, now.Format("20060102_150405"), ext)
	// Same user, same second — or an orphan file already holding the
	// canonical name: disambiguate instead of overwriting.
	existing, _ := s.repo.FindByFileName(ctx, storedName)
	if existing != nil || s.files.Exists(storedName) {
		storedName = fmt.Sprintf("%d_%s_%s%s", userID, now.Format("20060102_150405"), uuid.NewString()[:8], ext)
	}

	path, err := s.files.Save(storedName, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	doc := &entity.Document{
		FileName:     storedName,
		OriginalName: file.FileName,
		UploadedAt:   now,
		SizeMB:       round2(float64(len(data)) / (1024 * 1024)),
		UserID:       userID,
		StatusID:     initial.ID,
		ReportPath:   "",
		Score:        0,
		AnalysisTime: 0,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		// The file is already on disk; clean it up so storage never holds
		// an orphan. Best effort: a failed cleanup is logged, not fatal.
		if delErr := s.files.Delete(storedName); delErr != nil {
			s.logger.Errorw("failed to remove file after metadata insert error",
				"file_name", storedName, "error", delErr)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("document with file name %q %w", storedName, apperror.ErrConflict)
		}
		return nil, err
	}

	return &dto.UploadResponse{
		ID:           doc.ID.String(),
		FileName:     storedName,
		OriginalName: file.FileName,
		FilePath:     path,
		SizeMB:       doc.SizeMB,
		UploadedAt:   now,
		UserID:       userID,
		Message:      "file uploaded successfully",
	}, nil
}

func (s *documentService) Download(ctx context.Context, userID uint, id uuid.UUID) (*dto.DownloadResult, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil || doc.UserID != userID {
		return nil, fmt.Errorf("document %w", apperror.ErrNotFound)
	}

	// Missing row and missing file are distinct failures; both surface
	// as 404 but with distinguishable messages.
	if !s.files.Exists(doc.FileName) {
		return nil, fmt.Errorf("stored file %w", apperror.ErrNotFound)
	}

	name := doc.OriginalName
	if name == "" {
		name = doc.FileName
	}

	return &dto.DownloadResult{
		Path:         s.files.Path(doc.FileName),
		OriginalName: name,
	}, nil
}

func (s *documentService) ListByUser(ctx context.Context, userID uint) ([]entity.Document, error) {
	return s.repo.FindByUser(ctx, userID)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
