package app

import (
	"academy_backend/internal/config"
	"academy_backend/internal/controller"
	"academy_backend/internal/repository"
	"academy_backend/internal/service"
	"academy_backend/pkg/database"
	"academy_backend/pkg/logger"
	"academy_backend/pkg/monitoring"
	"academy_backend/pkg/security"
	"academy_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	account       *repository.AccountRepository
	category      *repository.CategoryRepository
	instructor    *repository.InstructorRepository
	course        *repository.CourseRepository
	participation *repository.ParticipationRepository
	exam          *repository.ExamRepository
	submission    *repository.SubmissionRepository
	comment       *repository.CommentRepository
	review        *repository.ReviewRepository
	certificate   *repository.CertificateRepository
	video         *repository.VideoRepository
}

type services struct {
	auth          *service.AuthService
	user          *service.UserService
	email         *service.EmailService
	storage       *service.StorageService
	catalog       *service.CatalogService
	course        *service.CourseService
	participation *service.ParticipationService
	exam          *service.ExamService
	submission    *service.SubmissionService
	comment       *service.CommentService
	review        *service.ReviewService
	certificate   *service.CertificateService
	video         *service.VideoService
}

type controllers struct {
	auth          *controller.AuthController
	user          *controller.UserController
	catalog       *controller.CatalogController
	course        *controller.CourseController
	participation *controller.ParticipationController
	exam          *controller.ExamController
	submission    *controller.SubmissionController
	comment       *controller.CommentController
	review        *controller.ReviewController
	certificate   *controller.CertificateController
	video         *controller.VideoController
	health        *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热重载时通知所有已注册的回调
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		account:       repository.NewAccountRepository(db),
		category:      repository.NewCategoryRepository(db),
		instructor:    repository.NewInstructorRepository(db),
		course:        repository.NewCourseRepository(db),
		participation: repository.NewParticipationRepository(db),
		exam:          repository.NewExamRepository(db),
		submission:    repository.NewSubmissionRepository(db),
		comment:       repository.NewCommentRepository(db),
		review:        repository.NewReviewRepository(db),
		certificate:   repository.NewCertificateRepository(db),
		video:         repository.NewVideoRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	email := service.NewEmailService(&cfg.Email)
	storage := service.NewStorageService(cfg)

	return &services{
		auth:          service.NewAuthService(repos.user, repos.account, email, cfg),
		user:          service.NewUserService(repos.user, repos.account),
		email:         email,
		storage:       storage,
		catalog:       service.NewCatalogService(repos.category, repos.instructor, repos.course),
		course:        service.NewCourseService(repos.course, repos.participation, repos.instructor),
		participation: service.NewParticipationService(repos.participation, repos.course, repos.account, email),
		exam:          service.NewExamService(repos.exam),
		submission:    service.NewSubmissionService(db, repos.submission, repos.exam, repos.course, repos.participation, repos.account, email),
		comment:       service.NewCommentService(repos.comment, repos.participation),
		review:        service.NewReviewService(repos.review, repos.course, repos.participation),
		certificate:   service.NewCertificateService(repos.certificate),
		video:         service.NewVideoService(repos.video, storage, cfg, rdb),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:          controller.NewAuthController(s.auth),
		user:          controller.NewUserController(s.user),
		catalog:       controller.NewCatalogController(s.catalog),
		course:        controller.NewCourseController(s.course),
		participation: controller.NewParticipationController(s.participation),
		exam:          controller.NewExamController(s.exam),
		submission:    controller.NewSubmissionController(s.submission),
		comment:       controller.NewCommentController(s.comment),
		review:        controller.NewReviewController(s.review),
		certificate:   controller.NewCertificateController(s.certificate),
		video:         controller.NewVideoController(s.video),
		health:        controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(security.CORSOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
		MaxAge:         time.Duration(cfg.CORS.MaxAgeSeconds) * time.Second,
	}))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(security.RateLimiterOptions{
		MaxRequests: cfg.RateLimit.MaxRequests,
		Window:      time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute,
		Burst:       cfg.RateLimit.Burst,
		SkipPaths:   cfg.RateLimit.SkipPaths,
	}))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 每分钟扫一遍卡在待判分状态的考试提交
func (a *App) startBackgroundTasks(s *services) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			s.submission.SweepPending(50)
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 邮件配置支持热重载（如运行中开关 Brevo 发信）
	app.RegisterConfigCallback(func(c *config.Config) {
		services.email.Cfg = &c.Email
		logger.Log.Info("Email config reloaded", zap.Bool("active", c.Email.Active))
	})

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("academy-platform", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
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
