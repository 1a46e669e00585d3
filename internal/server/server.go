package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/normcontrol/corrector/internal/config"
	"github.com/normcontrol/corrector/internal/middleware"
	"github.com/normcontrol/corrector/pkg/storage"

	documentHttp "github.com/normcontrol/corrector/internal/modules/document/delivery/http"
	documentRepo "github.com/normcontrol/corrector/internal/modules/document/repository"
	documentService "github.com/normcontrol/corrector/internal/modules/document/service"

	mistakeHttp "github.com/normcontrol/corrector/internal/modules/mistake/delivery/http"
	mistakeRepo "github.com/normcontrol/corrector/internal/modules/mistake/repository"
	mistakeService "github.com/normcontrol/corrector/internal/modules/mistake/service"

	reviewHttp "github.com/normcontrol/corrector/internal/modules/review/delivery/http"
	reviewRepo "github.com/normcontrol/corrector/internal/modules/review/repository"
	reviewService "github.com/normcontrol/corrector/internal/modules/review/service"

	statusHttp "github.com/normcontrol/corrector/internal/modules/status/delivery/http"
	statusRepo "github.com/normcontrol/corrector/internal/modules/status/repository"
	statusService "github.com/normcontrol/corrector/internal/modules/status/service"

	userHttp "github.com/normcontrol/corrector/internal/modules/user/delivery/http"
	userRepo "github.com/normcontrol/corrector/internal/modules/user/repository"
	userService "github.com/normcontrol/corrector/internal/modules/user/service"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
}

func NewServer(db *gorm.DB, files storage.FileStorage, cfg *config.Config, logger *zap.SugaredLogger) *Server {
	users := userRepo.NewUserRepository(db)
	statuses := statusRepo.NewStatusRepository(db)
	documents := documentRepo.NewDocumentRepository(db)
	mistakeTypes := mistakeRepo.NewMistakeTypeRepository(db)
	mistakes := mistakeRepo.NewMistakeRepository(db)
	reviews := reviewRepo.NewReviewRepository(db)

	statusSvc := statusService.NewStatusService(statuses)
	statusHandler := statusHttp.NewStatusHandler(statusSvc)

	documentSvc := documentService.NewDocumentService(documents, users, statuses, files, cfg, logger)
	documentHandler := documentHttp.NewDocumentHandler(documentSvc)

	mistakeSvc := mistakeService.NewMistakeService(mistakeTypes, mistakes, documents)
	mistakeHandler := mistakeHttp.NewMistakeHandler(mistakeSvc)

	userSvc := userService.NewUserService(users, documentSvc, cfg)
	userHandler := userHttp.NewUserHandler(userSvc)

	reviewSvc := reviewService.NewReviewService(reviews, users)
	reviewHandler := reviewHttp.NewReviewHandler(reviewSvc)

	router := gin.New()

	setupCORS(router, cfg)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", userHandler.Login)
	}

	api.GET("/users", userHandler.ListUsers)
	api.POST("/users", userHandler.CreateUser)
	api.PUT("/users/:id", userHandler.UpdateUser)
	api.DELETE("/users/:id", userHandler.DeleteUser)

	api.GET("/statuses", statusHandler.ListStatuses)
	api.POST("/statuses", statusHandler.CreateStatus)
	api.PUT("/statuses/:id", statusHandler.UpdateStatus)
	api.DELETE("/statuses/:id", statusHandler.DeleteStatus)

	api.GET("/mistake-types", mistakeHandler.ListMistakeTypes)
	api.POST("/mistake-types", mistakeHandler.CreateMistakeType)
	api.PUT("/mistake-types/:id", mistakeHandler.UpdateMistakeType)
	api.DELETE("/mistake-types/:id", mistakeHandler.DeleteMistakeType)

	api.GET("/mistakes", mistakeHandler.ListMistakes)
	api.POST("/mistakes", mistakeHandler.CreateMistake)
	api.PUT("/mistakes/:id", mistakeHandler.UpdateMistake)
	api.DELETE("/mistakes/:id", mistakeHandler.DeleteMistake)

	api.POST("/reviews", reviewHandler.CreateReview)
	api.GET("/reviews/user/:user_id", reviewHandler.ListUserReviews)
	api.PUT("/reviews/:id", reviewHandler.UpdateReview)
	api.DELETE("/reviews/:id", reviewHandler.DeleteReview)

	documentsGroup := api.Group("/documents")
	{
		documentsGroup.GET("", documentHandler.ListDocuments)
		documentsGroup.POST("", documentHandler.CreateDocument)
		documentsGroup.GET("/:id", documentHandler.GetDocument)
		documentsGroup.PUT("/:id", documentHandler.UpdateDocument)

		// Owner-scoped endpoints require an authenticated caller.
		owned := documentsGroup.Group("")
		owned.Use(authMiddleware.RequireAuth())
		{
			owned.POST("/upload", documentHandler.UploadDocument)
			owned.GET("/download/:id", documentHandler.DownloadDocument)
			owned.GET("/my-documents", documentHandler.ListMyDocuments)
			owned.DELETE("/:id", documentHandler.DeleteDocument)
		}
	}

	return &Server{
		engine: router,
		db:     db,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
