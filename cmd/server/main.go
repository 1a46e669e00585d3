package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/normcontrol/corrector/internal/config"
	"github.com/normcontrol/corrector/internal/entity"
	"github.com/normcontrol/corrector/internal/server"
	"github.com/normcontrol/corrector/pkg/database"
	"github.com/normcontrol/corrector/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck
	logger := zapLogger.Sugar()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Status{},
		&entity.Document{},
		&entity.MistakeType{},
		&entity.Mistake{},
		&entity.Review{},
	); err != nil {
		logger.Fatalw("failed to run migrations", "error", err)
	}

	if err := seedStatuses(db); err != nil {
		logger.Fatalw("failed to seed statuses", "error", err)
	}

	files, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		logger.Fatalw("failed to init file storage", "error", err)
	}

	srv := server.NewServer(db, files, cfg, logger)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Infow("starting server", "addr", addr, "env", cfg.AppEnv)
	if err := srv.Run(addr); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// seedStatuses makes sure the workflow statuses exist before the first upload.
func seedStatuses(db *gorm.DB) error {
	ctx := context.Background()
	names := []string{entity.StatusUploaded, entity.StatusProcessing, entity.StatusComplete}

	for _, name := range names {
		var count int64
		if err := db.WithContext(ctx).Model(&entity.Status{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.WithContext(ctx).Create(&entity.Status{Name: name}).Error; err != nil {
			return err
		}
	}

	return nil
}
