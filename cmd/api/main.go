package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rmendes/academia-api/api/swagger"
	"github.com/rmendes/academia-api/internal/handler"
	"github.com/rmendes/academia-api/internal/middleware"
	"github.com/rmendes/academia-api/internal/repository"
	"github.com/rmendes/academia-api/internal/service"
	"github.com/rmendes/academia-api/pkg/cache"
	"github.com/rmendes/academia-api/pkg/config"
	"github.com/rmendes/academia-api/pkg/database"
	"github.com/rmendes/academia-api/pkg/logger"
	corsmiddleware "github.com/rmendes/academia-api/pkg/middleware/cors"
	reqidmiddleware "github.com/rmendes/academia-api/pkg/middleware/requestid"
)

// @title Academia API
// @version 1.0.0
// @description Student management backend: alunos, pagamentos and delinquency
// @BasePath /
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repository.EnsureSchema(ctx, db); err != nil {
		logr.Sugar().Fatalw("failed to ensure schema", "error", err)
	}

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			repo := repository.NewCacheRepository(redisClient, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled && cacheRepo != nil)

	validate := validator.New()

	credentialRepo := repository.NewCredentialRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	authSvc := service.NewAuthService(credentialRepo, validate, logr, service.AuthConfig{
		Secret:      cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	credentialSvc := service.NewCredentialService(credentialRepo, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, paymentRepo, cacheSvc, metricsSvc, validate, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, studentRepo, cacheSvc, validate, logr)
	reportSvc := service.NewReportService(studentSvc, logr)

	if err := credentialSvc.EnsureDefaultAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		logr.Sugar().Fatalw("failed to seed admin credential", "error", err)
	}

	authHandler := handler.NewAuthHandler(authSvc)
	credentialHandler := handler.NewCredentialHandler(credentialSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/token", authHandler.Token)
	r.POST("/login/", authHandler.Login)
	r.POST("/usuarios/", credentialHandler.Create)

	protected := r.Group("/", middleware.JWT(authSvc))
	{
		protected.GET("/me", credentialHandler.Me)
		protected.POST("/alunos/", studentHandler.Create)
		protected.GET("/alunos/", studentHandler.List)
		protected.GET("/alunos/inadimplentes/", studentHandler.Delinquent)
		protected.GET("/alunos/inadimplentes/export", reportHandler.ExportDelinquent)
		protected.GET("/alunos/:id/status", studentHandler.Status)
		protected.POST("/pagamentos/", paymentHandler.Create)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
