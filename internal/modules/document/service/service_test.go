package document

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/normcontrol/corrector/internal/config"
	"github.com/normcontrol/corrector/internal/entity"
	"github.com/normcontrol/corrector/internal/modules/document/dto"
	"github.com/normcontrol/corrector/internal/modules/document/repository"
	statusRepo "github.com/normcontrol/corrector/internal/modules/status/repository"
	userRepo "github.com/normcontrol/corrector/internal/modules/user/repository"
	"github.com/normcontrol/corrector/pkg/apperror"
	"github.com/normcontrol/corrector/pkg/storage"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Status{},
		&entity.Document{},
		&entity.MistakeType{},
		&entity.Mistake{},
		&entity.Review{},
	))
	for _, name := range []string{entity.StatusUploaded, entity.StatusProcessing, entity.StatusComplete} {
		require.NoError(t, db.Create(&entity.Status{Name: name}).Error)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, login string) *entity.User {
	t.Helper()

	user := &entity.User{
		FirstName:  "Ivan",
		Surname:    "Petrov",
		Patronymic: "Sergeevich",
		Login:      login,
		Password:   "secret",
		Theme:      entity.ThemeLight,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

type testEnv struct {
	svc       DocumentService
	repo      repository.DocumentRepository
	statuses  statusRepo.StatusRepository
	files     storage.FileStorage
	uploadDir string
	db        *gorm.DB
}

func newTestEnv(t *testing.T, maxMB int64) *testEnv {
	t.Helper()

	db := openTestDB(t)
	dir := t.TempDir()
	files, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	repo := repository.NewDocumentRepository(db)
	statuses := statusRepo.NewStatusRepository(db)
	cfg := &config.Config{UploadDir: dir, MaxUploadSizeMB: maxMB}
	svc := NewDocumentService(repo, userRepo.NewUserRepository(db), statuses, files, cfg, zap.NewNop().Sugar())

	return &testEnv{svc: svc, repo: repo, statuses: statuses, files: files, uploadDir: dir, db: db}
}

func (e *testEnv) storedFileCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(e.uploadDir)
	require.NoError(t, err)
	return len(entries)
}

func TestUpload_RejectsUnknownExtension(t *testing.T) {
	env := newTestEnv(t, 10)
	user := seedUser(t, env.db, "ivan")

	_, err := env.svc.Upload(context.Background(), user.ID, dto.UploadFile{
		Reader:   strings.NewReader("MZ"),
		FileName: "malware.exe",
	})

	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Zero(t, env.storedFileCount(t))
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	env := newTestEnv(t, 1)
	user := seedUser(t, env.db, "ivan")

	big := bytes.Repeat([]byte("a"), 1024*1024+1)
	_, err := env.svc.Upload(context.Background(), user.ID, dto.UploadFile{
		Reader:   bytes.NewReader(big),
		FileName: "thesis.pdf",
	})

	require.ErrorIs(t, err, apperror.ErrPayloadTooLarge)

	// Neither the file nor the metadata row may survive a rejected upload.
	assert.Zero(t, env.storedFileCount(t))
	var count int64
	require.NoError(t, env.db.Model(&entity.Document{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpload_StoresFileAndMetadata(t *testing.T) {
	env := newTestEnv(t, 10)
	user := seedUser(t, env.db, "ivan")

	content := []byte("GOST 7.32-2017 report body")
	resp, err := env.svc.Upload(context.Background(), user.ID, dto.UploadFile{
		Reader:   bytes.NewReader(content),
		FileName: "Thesis Final.PDF",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.FileName, fmt.Sprintf("%d_", user.ID)))
	assert.True(t, strings.HasSuffix(resp.FileName, ".pdf"))
	assert.Equal(t, "Thesis Final.PDF", resp.OriginalName)

	stored, err := env.files.Open(resp.FileName)
	require.NoError(t, err)
	assert.Equal(t, content, stored)

	doc, err := env.svc.Get(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, user.ID, doc.UserID)
	assert.Equal(t, entity.StatusUploaded, doc.Status.Name)
	assert.InDelta(t, float64(len(content))/(1024*1024), doc.SizeMB, 0.01)
}

func TestUpload_SecondUploadGetsDistinctName(t *testing.T) {
	env := newTestEnv(t, 10)
	user := seedUser(t, env.db, "ivan")

	first, err := env.svc.Upload(context.Background(), user.ID, dto.UploadFile{
		Reader:   strings.NewReader("one"),
		FileName: "a.txt",
	})
	require.NoError(t, err)

	second, err := env.svc.Upload(context.Background(), user.ID, dto.UploadFile{
		Reader:   strings.NewReader("two"),
		FileName: "b.txt",
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.FileName, second.FileName)
	assert.True(t, env.files.Exists(first.FileName))
	assert.True(t, env.files.Exists(second.FileName))
}

// failingCreateRepo simulates a metadata insert that fails after the
// file already landed on disk.
type failingCreateRepo struct {
	repository.DocumentRepository
}

func (r *failingCreateRepo) Create(ctx context.Context, doc *entity.Document) error {
	return gorm.ErrDuplicatedKey
}

func TestUpload_InsertFailureRemovesStoredFile(t *testing.T) {
	env := newTestEnv(t, 10)
	user := seedUser(t, env.db, "ivan")

	cfg := &config.Config{UploadDir: env.uploadDir, MaxUploadSizeMB: 10}
	svc := NewDocumentService(
		&failingCreateRepo{DocumentRepository: env.repo},
		userRepo.NewUserRepository(env.db),
		env.statuses,
		env.files,
		cfg,
		zap.NewNop().Sugar(),
	)

	_, err := svc.Upload(context.Background(), user.ID, dto.UploadFile{
		Reader:   strings.NewReader("payload"),
		FileName: "doc.docx",
	})

	require.ErrorIs(t, err, apperror.ErrConflict)
	assert.Zero(t, env.storedFileCount(t))
}

func TestDownload_EnforcesOwnership(t *testing.T) {
	env := newTestEnv(t, 10)
	owner := seedUser(t, env.db, "owner")
	intruder := seedUser(t, env.db, "intruder")

	resp, err := env.svc.Upload(context.Background(), owner.ID, dto.UploadFile{
		Reader:   strings.NewReader("private"),
		FileName: "private.txt",
	})
	require.NoError(t, err)

	_, err = env.svc.Download(context.Background(), intruder.ID, uuid.MustParse(resp.ID))
	require.ErrorIs(t, err, apperror.ErrNotFound)

	result, err := env.svc.Download(context.Background(), owner.ID, uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, env.files.Path(resp.FileName), result.Path)
	assert.Equal(t, "private.txt", result.OriginalName)
}

func TestDownload_MissingStoredFile(t *testing.T) {
	env := newTestEnv(t, 10)
	user := seedUser(t, env.db, "ivan")

	resp, err := env.svc.Upload(context.Background(), user.ID, dto.UploadFile{
		Reader:   strings.NewReader("gone"),
		FileName: "gone.txt",
	})
	require.NoError(t, err)
	require.NoError(t, env.files.Delete(resp.FileName))

	_, err = env.svc.Download(context.Background(), user.ID, uuid.MustParse(resp.ID))
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Contains(t, err.Error(), "stored file")
}

func TestDelete_RemovesFileAndRow(t *testing.T) {
	env := newTestEnv(t, 10)
	user := seedUser(t, env.db, "ivan")

	resp, err := env.svc.Upload(context.Background(), user.ID, dto.UploadFile{
		Reader:   strings.NewReader("bye"),
		FileName: "bye.doc",
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, env.svc.Delete(context.Background(), user.ID, id))

	assert.False(t, env.files.Exists(resp.FileName))
	_, err = env.svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDelete_EnforcesOwnership(t *testing.T) {
	env := newTestEnv(t, 10)
	owner := seedUser(t, env.db, "owner")
	intruder := seedUser(t, env.db, "intruder")

	resp, err := env.svc.Upload(context.Background(), owner.ID, dto.UploadFile{
		Reader:   strings.NewReader("mine"),
		FileName: "mine.txt",
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	err = env.svc.Delete(context.Background(), intruder.ID, id)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	// The document and its file survive the foreign delete attempt.
	assert.True(t, env.files.Exists(resp.FileName))
	_, err = env.svc.Get(context.Background(), id)
	assert.NoError(t, err)
}

func TestUpload_OrphanFileWithCanonicalNameIsNotOverwritten(t *testing.T) {
	env := newTestEnv(t, 10)
	user := seedUser(t, env.db, "ivan")

	// A file holding the canonical name with no matching row, left behind by
	// some earlier failure.
	orphanName := fmt.Sprintf("%d_%s.txt", user.ID, time.Now().Format("20060102_150405"))
	_, err := env.files.Save(orphanName, []byte("orphan"))
	require.NoError(t, err)

	resp, err := env.svc.Upload(context.Background(), user.ID, dto.UploadFile{
		Reader:   strings.NewReader("fresh upload"),
		FileName: "fresh.txt",
	})
	require.NoError(t, err)

	kept, err := env.files.Open(orphanName)
	require.NoError(t, err)
	assert.Equal(t, []byte("orphan"), kept)

	uploaded, err := env.files.Open(resp.FileName)
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh upload"), uploaded)
}

func TestCreate_DuplicateFileName(t *testing.T) {
	env := newTestEnv(t, 10)
	user := seedUser(t, env.db, "ivan")

	req := dto.CreateDocumentRequest{
		FileName: "1_20260101_120000.pdf",
		UserID:   user.ID,
		StatusID: 1,
		SizeMB:   0.5,
	}
	_, err := env.svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = env.svc.Create(context.Background(), req)
	require.ErrorIs(t, err, apperror.ErrConflict)
}

func TestCreate_UnknownUserOrStatus(t *testing.T) {
	env := newTestEnv(t, 10)
	user := seedUser(t, env.db, "ivan")

	_, err := env.svc.Create(context.Background(), dto.CreateDocumentRequest{
		FileName: "a.pdf", UserID: 999, StatusID: 1,
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = env.svc.Create(context.Background(), dto.CreateDocumentRequest{
		FileName: "a.pdf", UserID: user.ID, StatusID: 999,
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdate_SparseMerge(t *testing.T) {
	env := newTestEnv(t, 10)
	user := seedUser(t, env.db, "ivan")

	created, err := env.svc.Create(context.Background(), dto.CreateDocumentRequest{
		FileName:     "1_20260101_120000.pdf",
		OriginalName: "thesis.pdf",
		UserID:       user.ID,
		StatusID:     1,
		SizeMB:       1.25,
	})
	require.NoError(t, err)

	score := 87.456
	status := uint(3)
	updated, err := env.svc.Update(context.Background(), created.ID, dto.UpdateDocumentRequest{
		Score:    &score,
		StatusID: &status,
	})
	require.NoError(t, err)

	// Only the supplied fields change; the score is kept to one decimal.
	assert.Equal(t, 87.5, updated.Score)
	assert.Equal(t, uint(3), updated.StatusID)
	assert.Equal(t, "1_20260101_120000.pdf", updated.FileName)
	assert.Equal(t, "thesis.pdf", updated.OriginalName)
	assert.Equal(t, 1.25, updated.SizeMB)
}

func TestUpdate_UnknownStatus(t *testing.T) {
	env := newTestEnv(t, 10)
	user := seedUser(t, env.db, "ivan")

	created, err := env.svc.Create(context.Background(), dto.CreateDocumentRequest{
		FileName: "a.pdf", UserID: user.ID, StatusID: 1,
	})
	require.NoError(t, err)

	status := uint(42)
	_, err = env.svc.Update(context.Background(), created.ID, dto.UpdateDocumentRequest{StatusID: &status})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGet_EmptyMistakesIsList(t *testing.T) {
	env := newTestEnv(t, 10)
	user := seedUser(t, env.db, "ivan")

	created, err := env.svc.Create(context.Background(), dto.CreateDocumentRequest{
		FileName: "a.pdf", UserID: user.ID, StatusID: 1,
	})
	require.NoError(t, err)

	doc, err := env.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NotNil(t, doc.Mistakes)
	assert.Empty(t, doc.Mistakes)
}

func TestListByUser_NewestFirst(t *testing.T) {
	env := newTestEnv(t, 10)
	user := seedUser(t, env.db, "ivan")

	_, err := env.svc.Create(context.Background(), dto.CreateDocumentRequest{
		FileName: "old.pdf", UserID: user.ID, StatusID: 1, UploadedAt: "2026-01-01T10:00:00Z",
	})
	require.NoError(t, err)
	_, err = env.svc.Create(context.Background(), dto.CreateDocumentRequest{
		FileName: "new.pdf", UserID: user.ID, StatusID: 1, UploadedAt: "2026-02-01T10:00:00Z",
	})
	require.NoError(t, err)

	docs, err := env.svc.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "new.pdf", docs[0].FileName)
	assert.Equal(t, "old.pdf", docs[1].FileName)
}
