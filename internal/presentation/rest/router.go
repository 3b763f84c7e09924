package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	adminapp "donation-server/internal/application/admin"
	authapp "donation-server/internal/application/auth"
	checkoutapp "donation-server/internal/application/checkout"
	statusapp "donation-server/internal/application/status"
	webhookapp "donation-server/internal/application/webhook"
	"donation-server/internal/infrastructure/config"
	otelinfra "donation-server/internal/infrastructure/observability/otel"
	"donation-server/internal/presentation/rest/handler"
	restmiddleware "donation-server/internal/presentation/rest/middleware"
)

// HealthChecker ストレージの疎通確認
type HealthChecker interface {
	HealthCheck() error
}

// Router REST APIルーター
type Router struct {
	echo            *echo.Echo
	statusHandler   *handler.StatusHandler
	checkoutHandler *handler.CheckoutHandler
	webhookHandler  *handler.WebhookHandler
	authHandler     *handler.AuthHandler
	adminHandler    *handler.AdminHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	statusService *statusapp.StatusApplicationService,
	checkoutService *checkoutapp.CheckoutApplicationService,
	webhookService *webhookapp.WebhookApplicationService,
	authService *authapp.AuthApplicationService,
	adminService *adminapp.AdminApplicationService,
	healthChecker HealthChecker,
) (*Router, error) {
	e := echo.New()

	// Echoのデフォルトエラーハンドラーを無効化（カスタムエラーハンドラーを使用）
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// エラーハンドリングミドルウェアで処理される
	}

	// ミドルウェアの設定
	setupMiddleware(e, cfg, logger, metrics)

	// ハンドラーの作成
	statusHandler := handler.NewStatusHandler(statusService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	webhookHandler := handler.NewWebhookHandler(webhookService)
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)

	// ルーティングの設定
	setupRoutes(e, cfg, logger, statusHandler, checkoutHandler, webhookHandler, authHandler, adminHandler, healthChecker)

	// Swagger UI / ReDoc統合
	SetupSwagger(e)

	return &Router{
		echo:            e,
		statusHandler:   statusHandler,
		checkoutHandler: checkoutHandler,
		webhookHandler:  webhookHandler,
		authHandler:     authHandler,
		adminHandler:    adminHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, cfg *config.Config, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	// リカバリーミドルウェア
	e.Use(middleware.Recover())

	// CORS設定
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Server.CORSAllowOrigin},
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// リクエストIDの設定
	e.Use(middleware.RequestID())

	// セキュリティヘッダー
	e.Use(restmiddleware.SecurityHeadersMiddleware())

	// トレーシングミドルウェア
	e.Use(restmiddleware.TracingMiddleware())

	// ログミドルウェア
	e.Use(restmiddleware.LoggingMiddleware(logger))

	// メトリクスミドルウェア
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// エラーハンドリングミドルウェア
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	logger *otelinfra.Logger,
	statusHandler *handler.StatusHandler,
	checkoutHandler *handler.CheckoutHandler,
	webhookHandler *handler.WebhookHandler,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	healthChecker HealthChecker,
) {
	// 公開エンドポイント
	api := e.Group("/api")
	api.GET("/status", statusHandler.GetStatus)
	api.POST("/create-checkout-session", checkoutHandler.CreateCheckoutSession)
	api.POST("/admin/login", authHandler.Login)

	// 決済プロバイダーからのWebhook（署名で保護される）
	e.POST("/webhook", webhookHandler.HandleWebhook)

	// 運用者向けエンドポイント（JWT認証が必要）
	adminGroup := api.Group("/admin", restmiddleware.AuthMiddleware(&cfg.JWT, logger))
	adminGroup.GET("/settings", adminHandler.GetSettings)
	adminGroup.POST("/settings", adminHandler.UpdateSettings)
	adminGroup.POST("/reset", adminHandler.Reset)
	adminGroup.GET("/donations", adminHandler.ListDonations)

	// ヘルスチェックエンドポイント（認証不要）
	e.GET("/health", func(c echo.Context) error {
		if err := healthChecker.HealthCheck(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status":    "degraded",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// 公開サイトの静的配信
	if cfg.Server.StaticDir != "" {
		e.Static("/", cfg.Server.StaticDir)
	}
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown サーバーをシャットダウン
func (r *Router) Shutdown() error {
	return r.echo.Close()
}
