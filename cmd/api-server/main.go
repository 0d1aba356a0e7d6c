package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/school-admin-api/api/swagger"
	"github.com/noah-isme/school-admin-api/internal/handler"
	"github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/repository"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/cache"
	"github.com/noah-isme/school-admin-api/pkg/config"
	"github.com/noah-isme/school-admin-api/pkg/database"
	"github.com/noah-isme/school-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-admin-api/pkg/middleware/requestid"
)

// @title School Administration API
// @version 1.0.0
// @description Multi-tenant school administration API
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	// Redis backs the shared rate-limit counter. Without it a single
	// replica falls back to an in-process window.
	var counterStore middleware.CounterStore
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, using in-memory rate limit counter", zap.Error(err))
		counterStore = middleware.NewMemoryCounterStore()
	} else {
		defer redisClient.Close()
		counterStore = repository.NewRateLimitRepository(redisClient)
	}

	userRepo := repository.NewUserRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	studentRepo := repository.NewStudentRepository(db)

	validate := service.NewValidator()
	tokenSvc := service.NewTokenService(cfg.Tokens)
	authSvc := service.NewAuthService(userRepo, schoolRepo, tokenSvc, validate, logr)
	schoolSvc := service.NewSchoolService(schoolRepo, classroomRepo, studentRepo, validate, logr)
	classroomSvc := service.NewClassroomService(classroomRepo, schoolRepo, studentRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, schoolRepo, classroomRepo, validate, logr)
	exportSvc := service.NewExportService(studentRepo, logr)
	metricsSvc := service.NewMetricsService()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.RateLimit(counterStore, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	routes := handler.BuildRoutes(handler.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		School:    handler.NewSchoolHandler(schoolSvc),
		Classroom: handler.NewClassroomHandler(classroomSvc),
		Student:   handler.NewStudentHandler(studentSvc),
		Export:    handler.NewExportHandler(exportSvc),
	})
	if err := handler.Register(r, tokenSvc, routes); err != nil {
		logr.Sugar().Fatalw("failed to register routes", "error", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
