package review

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/normcontrol/corrector/internal/entity"
	"github.com/normcontrol/corrector/internal/modules/review/dto"
	"github.com/normcontrol/corrector/internal/modules/review/repository"
	userRepo "github.com/normcontrol/corrector/internal/modules/user/repository"
	"github.com/normcontrol/corrector/pkg/apperror"
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

	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Review{}))
	return db
}

func newTestService(t *testing.T) (ReviewService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	svc := NewReviewService(repository.NewReviewRepository(db), userRepo.NewUserRepository(db))
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()
	user := &entity.User{
		FirstName: "Ivan", Surname: "Petrov", Patronymic: "Sergeevich",
		Login: "ivan", Password: "secret", Theme: entity.ThemeLight,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCreate_SetsServerTimestamp(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db)

	text := "caught every margin violation in my thesis"
	before := time.Now()
	created, err := svc.Create(context.Background(), dto.CreateReviewRequest{
		UserID:     user.ID,
		Mark:       5,
		ReviewText: &text,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, created.Mark)
	require.NotNil(t, created.ReviewText)
	assert.Equal(t, text, *created.ReviewText)
	assert.False(t, created.CreatedAt.Before(before))
	assert.False(t, created.CreatedAt.After(time.Now()))
}

func TestCreate_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), dto.CreateReviewRequest{UserID: 999, Mark: 4})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListByUser(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db)

	for mark := 3; mark <= 5; mark++ {
		_, err := svc.Create(context.Background(), dto.CreateReviewRequest{UserID: user.ID, Mark: mark})
		require.NoError(t, err)
	}

	reviews, err := svc.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 3)

	none, err := svc.ListByUser(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdate_SparseMerge(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db)

	text := "good"
	created, err := svc.Create(context.Background(), dto.CreateReviewRequest{
		UserID:     user.ID,
		Mark:       3,
		ReviewText: &text,
	})
	require.NoError(t, err)

	mark := 5
	updated, err := svc.Update(context.Background(), created.ID, dto.UpdateReviewRequest{Mark: &mark})
	require.NoError(t, err)

	assert.Equal(t, 5, updated.Mark)
	require.NotNil(t, updated.ReviewText)
	assert.Equal(t, "good", *updated.ReviewText)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestUpdate_UnknownReview(t *testing.T) {
	svc, _ := newTestService(t)

	mark := 4
	_, err := svc.Update(context.Background(), 999, dto.UpdateReviewRequest{Mark: &mark})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, db := newTestService(t)
	user := seedUser(t, db)

	created, err := svc.Create(context.Background(), dto.CreateReviewRequest{UserID: user.ID, Mark: 4})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), apperror.ErrNotFound)
}
