package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"school_backend/internal/config"
	"school_backend/internal/controller"
	"school_backend/internal/repository"
	"school_backend/internal/service"
	"school_backend/pkg/database"
	"school_backend/pkg/logger"
	"school_backend/pkg/monitoring"
	"school_backend/pkg/security"
	"school_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user      *repository.UserRepository
	classroom *repository.ClassroomRepository
	quiz      *repository.QuizRepository
	response  *repository.ResponseRepository
	analytics *repository.AnalyticsRepository
	event     *repository.EventRepository
	material  *repository.MaterialRepository
}

type services struct {
	auth      *service.AuthService
	user      *service.UserService
	classroom *service.ClassroomService
	quiz      *service.QuizService
	response  *service.QuizResponseService
	analytics *service.AnalyticsService
	storage   *service.StorageService
	material  *service.MaterialService
	event     *service.EventService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	classroom *controller.ClassroomController
	quiz      *controller.QuizController
	response  *controller.QuizResponseController
	analytics *controller.AnalyticsController
	material  *controller.MaterialController
	event     *controller.EventController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		classroom: repository.NewClassroomRepository(db),
		quiz:      repository.NewQuizRepository(db),
		response:  repository.NewResponseRepository(db),
		analytics: repository.NewAnalyticsRepository(db),
		event:     repository.NewEventRepository(db),
		material:  repository.NewMaterialRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	return &services{
		auth:      service.NewAuthService(repos.user, cfg),
		user:      service.NewUserService(repos.user),
		classroom: service.NewClassroomService(repos.classroom, repos.user),
		quiz:      service.NewQuizService(repos.quiz, repos.classroom, repos.response),
		response:  service.NewQuizResponseService(repos.quiz, repos.response, repos.classroom, repos.user, cfg),
		analytics: service.NewAnalyticsService(repos.analytics, repos.quiz, rdb),
		storage:   storage,
		material:  service.NewMaterialService(repos.material, repos.classroom, storage),
		event:     service.NewEventService(repos.event),
	}, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		user:      controller.NewUserController(s.user),
		classroom: controller.NewClassroomController(s.classroom),
		quiz:      controller.NewQuizController(s.quiz),
		response:  controller.NewQuizResponseController(s.response),
		analytics: controller.NewAnalyticsController(s.analytics),
		material:  controller.NewMaterialController(s.material),
		event:     controller.NewEventController(s.event),
		health:    controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	if cfg.RateLimit.MaxRequests > 0 {
		window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))
	}

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Redis 未配置时降级运行，报表缓存自动跳过
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, running without cache", zap.Error(err))
			rdb = nil
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("school-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
