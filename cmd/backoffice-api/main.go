package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Fodapt/marrelsrl-sub002/api/swagger"
	"github.com/Fodapt/marrelsrl-sub002/internal/handler"
	"github.com/Fodapt/marrelsrl-sub002/internal/middleware"
	"github.com/Fodapt/marrelsrl-sub002/internal/repository"
	"github.com/Fodapt/marrelsrl-sub002/internal/service"
	"github.com/Fodapt/marrelsrl-sub002/pkg/cache"
	"github.com/Fodapt/marrelsrl-sub002/pkg/config"
	"github.com/Fodapt/marrelsrl-sub002/pkg/database"
	"github.com/Fodapt/marrelsrl-sub002/pkg/logger"
	corsmiddleware "github.com/Fodapt/marrelsrl-sub002/pkg/middleware/cors"
	reqidmiddleware "github.com/Fodapt/marrelsrl-sub002/pkg/middleware/requestid"
)

// @title Marrel SRL Back-Office API
// @version 0.1.0
// @description Construction back-office: workers, work sites, Unilav history, attendance, pay ledger, document bundles, certifications and the expiry dashboard
// @BasePath /api/v1
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
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard caching disabled", "error", err)
	} else {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
		defer redisClient.Close() //nolint:errcheck
	}

	workerRepo := repository.NewWorkerRepository(db)
	siteRepo := repository.NewSiteRepository(db)
	unilavRepo := repository.NewUnilavRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	payrollRepo := repository.NewPayrollRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	certificationRepo := repository.NewCertificationRepository(db)

	workerSvc := service.NewWorkerService(workerRepo, nil, logr)
	siteSvc := service.NewSiteService(siteRepo, nil, logr)
	assignmentSvc := service.NewAssignmentService(unilavRepo, workerRepo, nil, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, unilavRepo, workerRepo, nil, logr)
	payrollSvc := service.NewPayrollService(payrollRepo, workerRepo, nil, logr)
	documentSvc := service.NewDocumentService(documentRepo, nil, logr)
	certificationSvc := service.NewCertificationService(certificationRepo, workerRepo, nil, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Certifications: certificationSvc,
		Workers:        workerRepo,
		Events:         unilavRepo,
		Sites:          siteRepo,
		Cache:          cacheSvc,
		Logger:         logr,
		Config: service.DashboardServiceConfig{
			CacheTTL: cfg.Dashboard.CacheTTL,
		},
	})
	exportSvc := service.NewExportService(workerRepo, unilavRepo, attendanceRepo, payrollRepo, logr, nil, nil)

	workerHandler := handler.NewWorkerHandler(workerSvc)
	siteHandler := handler.NewSiteHandler(siteSvc)
	unilavHandler := handler.NewUnilavHandler(assignmentSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	payrollHandler := handler.NewPayrollHandler(payrollSvc)
	documentHandler := handler.NewDocumentHandler(documentSvc)
	certificationHandler := handler.NewCertificationHandler(certificationSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc, cfg.Exports.Enabled)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.GET("/system/metrics", metricsHandler.Snapshot)

	workers := api.Group("/workers")
	{
		workers.GET("", workerHandler.List)
		workers.POST("", workerHandler.Create)
		workers.GET("/:id", workerHandler.Get)
		workers.PUT("/:id", workerHandler.Update)
		workers.DELETE("/:id", workerHandler.Delete)

		workers.GET("/:id/unilav", unilavHandler.List)
		workers.POST("/:id/unilav", unilavHandler.Create)
		workers.PUT("/:id/unilav/:eventId", unilavHandler.Update)
		workers.DELETE("/:id/unilav/:eventId", unilavHandler.Delete)
		workers.GET("/:id/status", unilavHandler.Status)
		workers.GET("/:id/unilav/active", unilavHandler.Active)

		workers.GET("/:id/attendance", attendanceHandler.ListMonth)
		workers.PUT("/:id/attendance", attendanceHandler.Upsert)
		workers.GET("/:id/attendance/summary", attendanceHandler.Summary)
		workers.DELETE("/:id/attendance/:recordId", attendanceHandler.Delete)

		workers.GET("/:id/pay", payrollHandler.List)
		workers.POST("/:id/pay", payrollHandler.Create)
		workers.GET("/:id/pay/:recordId", payrollHandler.Get)
		workers.DELETE("/:id/pay/:recordId", payrollHandler.Delete)
		workers.POST("/:id/pay/:recordId/disbursements", payrollHandler.AddDisbursement)
		workers.DELETE("/:id/pay/:recordId/disbursements/:disbursementId", payrollHandler.DeleteDisbursement)

		workers.GET("/:id/certifications", certificationHandler.List)
		workers.POST("/:id/certifications", certificationHandler.Create)
		workers.POST("/:id/certifications/:certId/renewals", certificationHandler.AddRenewal)
		workers.DELETE("/:id/certifications/:certId", certificationHandler.Delete)
	}

	sites := api.Group("/sites")
	{
		sites.GET("", siteHandler.List)
		sites.POST("", siteHandler.Create)
		sites.GET("/:id", siteHandler.Get)
		sites.PUT("/:id", siteHandler.Update)
		sites.DELETE("/:id", siteHandler.Delete)
	}

	bundles := api.Group("/bundles")
	{
		bundles.GET("", documentHandler.List)
		bundles.POST("", documentHandler.Create)
		bundles.GET("/:id", documentHandler.Get)
		bundles.DELETE("/:id", documentHandler.Delete)
		bundles.POST("/:id/documents", documentHandler.AddItem)
		bundles.PATCH("/:id/documents/:itemId", documentHandler.MarkItem)
		bundles.DELETE("/:id/documents/:itemId", documentHandler.DeleteItem)
	}

	api.GET("/certifications/expiring", certificationHandler.Expiring)

	if cfg.Dashboard.Enabled {
		api.GET("/dashboard/expiry", dashboardHandler.Overview)
	}

	api.GET("/exports/attendance", exportHandler.AttendanceSheet)
	api.GET("/exports/pay-ledger", exportHandler.PayLedger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
