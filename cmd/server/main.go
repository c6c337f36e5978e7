package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	crmapp "github.com/crm/backend/internal/application/crm"
	identityapp "github.com/crm/backend/internal/application/identity"
	projectapp "github.com/crm/backend/internal/application/project"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/infrastructure/rendering"
	"github.com/crm/backend/internal/infrastructure/storage"
	"github.com/crm/backend/internal/interfaces/http/handler"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting CRM backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	prospectRepo := persistence.NewGormProspectRepository(db.DB)
	tagRepo := persistence.NewGormTagRepository(db.DB)
	workerRepo := persistence.NewGormWorkerRepository(db.DB)
	linkRepo := persistence.NewGormProspectWorkerRepository(db.DB)
	interactionRepo := persistence.NewGormInteractionRepository(db.DB)
	reminderRepo := persistence.NewGormReminderRepository(db.DB)
	attachmentRepo := persistence.NewGormAttachmentRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	deliverableRepo := persistence.NewGormDeliverableRepository(db.DB)
	teamRepo := persistence.NewGormTeamMemberRepository(db.DB)
	noteRepo := persistence.NewGormNoteRepository(db.DB)
	kanbanRepo := persistence.NewGormKanbanRepository(db.DB)
	diagramRepo := persistence.NewGormDiagramRepository(db.DB)

	// Token blacklist: Redis when enabled, in-process otherwise
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		blacklist = redisBlacklist
		log.Info("Token blacklist backed by Redis")
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Token blacklist is in-process only; revocations do not survive restarts")
	}

	// Object storage for prospect attachments
	var objectStorage crmapp.ObjectStorage
	if cfg.Storage.AccessKey != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Warn("Could not ensure storage bucket", zap.Error(err))
		}
		cancel()
		objectStorage = s3Storage
		log.Info("Object storage ready", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewMemoryObjectStorage()
		log.Warn("Object storage is in-memory only; attachments do not survive restarts")
	}

	// Diagram snapshot renderer
	var renderer projectapp.SnapshotRenderer
	if cfg.Render.Enabled {
		chromeRenderer, err := rendering.NewChromedpRenderer(&cfg.Render, log)
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		defer chromeRenderer.Close()
		renderer = chromeRenderer
		log.Info("PDF renderer ready", zap.Duration("timeout", cfg.Render.Timeout))
	} else {
		renderer = rendering.NewDisabledRenderer()
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)

	prospectService := crmapp.NewProspectService(prospectRepo, tagRepo, linkRepo, log)
	workerService := crmapp.NewWorkerService(workerRepo, prospectRepo, linkRepo, log)
	interactionService := crmapp.NewInteractionService(interactionRepo, reminderRepo, prospectRepo, log)
	attachmentService := crmapp.NewAttachmentService(attachmentRepo, prospectRepo, objectStorage, log)
	attachmentService.SetConfig(crmapp.AttachmentServiceConfig{
		MaxUploadSize:     cfg.Storage.UploadMaxSize,
		DownloadURLExpiry: crmapp.DefaultAttachmentServiceConfig().DownloadURLExpiry,
	})
	dashboardService := crmapp.NewDashboardService(prospectRepo, linkRepo, interactionRepo, reminderRepo)
	calendarService := crmapp.NewCalendarService(reminderRepo)
	exportService := crmapp.NewExportService(prospectRepo, linkRepo, workerRepo, userRepo)

	projectService := projectapp.NewProjectService(projectRepo, prospectRepo, log)
	workspaceService := projectapp.NewWorkspaceService(deliverableRepo, teamRepo, noteRepo, projectRepo, prospectRepo, workerRepo, log)
	kanbanService := projectapp.NewKanbanService(kanbanRepo, projectRepo, prospectRepo, log)
	diagramService := projectapp.NewDiagramService(diagramRepo, projectRepo, prospectRepo, renderer, log)

	// Gin engine and middleware stack
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFromHTTP(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Routes
	systemHandler := handler.NewSystemHandler(db.DB, cfg.App.Name, version)
	engine.GET("/health", systemHandler.Health)

	router.NewRouter(engine).
		Register(systemHandler).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewProspectHandler(prospectService, exportService)).
		Register(handler.NewWorkerHandler(workerService)).
		Register(handler.NewInteractionHandler(interactionService)).
		Register(handler.NewAttachmentHandler(attachmentService)).
		Register(handler.NewDashboardHandler(dashboardService, calendarService)).
		Register(handler.NewProjectHandler(projectService)).
		Register(handler.NewWorkspaceHandler(workspaceService)).
		Register(handler.NewKanbanHandler(kanbanService)).
		Register(handler.NewDiagramHandler(diagramService)).
		Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
