package api

import (
	"context"
	"net/http"
	"time"

	"pantry-ingest/internal/api/handlers/health"
	ingestHandler "pantry-ingest/internal/api/handlers/ingest"
	pantryHandler "pantry-ingest/internal/api/handlers/pantry"
	"pantry-ingest/internal/api/middleware"
	"pantry-ingest/internal/core/extraction"
	"pantry-ingest/internal/core/pantry"
	recipeService "pantry-ingest/internal/core/recipe"
	"pantry-ingest/internal/infrastructure/config"
	"pantry-ingest/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置：抽取端最慢的路徑是長影片字幕
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB)：只收連結與食材文字
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, extractionService *extraction.Service) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 請求去重：分享面板連點只處理一次
	router.Use(middleware.Deduplication(cfg))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("extraction_enabled", cfg.Extraction.Enabled),
		zap.Int("queue_workers", cfg.Queue.Workers),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化匯入服務
	estimator := pantry.NewEstimator(cfg.Pricing.Currency, cfg.Pricing.WindowDays)
	importService := recipeService.NewImportService(extractionService, estimator)

	common.LogInfo("Import service initialized successfully",
		zap.Bool("extraction_service_initialized", extractionService != nil),
		zap.String("environment", cfg.App.Env),
	)

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		// 創建新的請求上下文
		req := c.Request.WithContext(ctx)
		c.Request = req

		// 設置配置與服務
		c.Set("config", cfg)
		c.Set("extraction_service", extractionService)
		c.Set("import_service", importService)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		ingestHandlerInstance := ingestHandler.NewHandler(importService)
		pantryHandlerInstance := pantryHandler.NewHandler(importService)

		// 連結驗證與匯入
		urlGroup := api.Group("/url")
		{
			urlGroup.POST("/validate", ingestHandlerInstance.HandleValidateURL)
		}

		recipeGroup := api.Group("/recipe")
		{
			recipeGroup.POST("/import", ingestHandlerInstance.HandleImportRecipe)
		}

		// 食材正規化
		ingredientGroup := api.Group("/ingredient")
		{
			ingredientGroup.POST("/normalize", func(c *gin.Context) {
				ingestHandler.HandleNormalizeIngredients(importService)(c.Writer, c.Request)
			})
		}

		// 庫存比對與成本估算
		pantryGroup := api.Group("/pantry")
		{
			pantryGroup.POST("/match", pantryHandlerInstance.HandleMatch)
			pantryGroup.POST("/cost", pantryHandlerInstance.HandleCost)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("extraction_service_initialized", extractionService != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
