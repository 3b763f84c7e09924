package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminapp "donation-server/internal/application/admin"
	authapp "donation-server/internal/application/auth"
	checkoutapp "donation-server/internal/application/checkout"
	statusapp "donation-server/internal/application/status"
	webhookapp "donation-server/internal/application/webhook"
	"donation-server/internal/domain/ledger"
	"donation-server/internal/domain/pricing"
	"donation-server/internal/domain/transaction"
	"donation-server/internal/infrastructure/config"
	otelinfra "donation-server/internal/infrastructure/observability/otel"
	"donation-server/internal/infrastructure/payment/stripe"
	"donation-server/internal/infrastructure/persistence/memory"
	"donation-server/internal/infrastructure/persistence/sqlite"
	"donation-server/internal/presentation/rest"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OpenTelemetryの初期化
	tracerShutdown, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	meterShutdown, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize meter: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown meter: %v", err)
		}
	}()

	// ロガーとメトリクスの初期化
	tracer := otelinfra.Tracer("donation-server")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("donation-server")
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	// ストレージの初期化
	var (
		ledgerRepo    ledger.LedgerRepository
		eventRepo     ledger.ProcessedEventRepository
		donationRepo  ledger.DonationRepository
		txManager     transaction.Manager
		healthChecker rest.HealthChecker
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverSQLite:
		db, err := sqlite.NewDB(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := db.Migrate(ctx); err != nil {
			cancel()
			log.Fatalf("Failed to migrate database: %v", err)
		}
		if err := db.Seed(ctx, &cfg.Ledger); err != nil {
			cancel()
			log.Fatalf("Failed to seed database: %v", err)
		}
		cancel()

		ledgerRepo = sqlite.NewLedgerRepository(db)
		eventRepo = sqlite.NewProcessedEventRepository(db)
		donationRepo = sqlite.NewDonationRepository(db)
		txManager = sqlite.NewTransactionManager(db)
		healthChecker = db

	case config.StorageDriverMemory:
		initial, err := ledger.NewLedger(0, cfg.Ledger.InitialClickGoal, 0, cfg.Ledger.CharityName, cfg.Ledger.DonationPercent)
		if err != nil {
			log.Fatalf("Failed to initialize ledger: %v", err)
		}
		store := memory.NewStore(initial)

		ledgerRepo = memory.NewLedgerRepository(store)
		eventRepo = memory.NewProcessedEventRepository(store)
		donationRepo = memory.NewDonationRepository(store)
		txManager = store
		healthChecker = store

	default:
		log.Fatalf("Unsupported storage driver: %s", cfg.Storage.Driver)
	}

	// 価格テーブルと決済ゲートウェイの初期化
	priceTable := pricing.NewTable(cfg.Stripe.PriceIDs)
	gateway := stripe.NewGateway(&cfg.Stripe)

	// アプリケーションサービスの初期化
	statusAppService := statusapp.NewStatusApplicationService(
		priceTable,
		ledgerRepo,
		logger,
	)

	checkoutAppService := checkoutapp.NewCheckoutApplicationService(
		priceTable,
		gateway,
		cfg.Server.PublicBaseURL,
		logger,
		metrics,
	)

	webhookAppService := webhookapp.NewWebhookApplicationService(
		gateway,
		priceTable,
		ledgerRepo,
		eventRepo,
		donationRepo,
		txManager,
		logger,
		metrics,
	)

	authAppService := authapp.NewAuthApplicationService(
		&cfg.JWT,
		&cfg.Admin,
		logger,
	)

	adminAppService := adminapp.NewAdminApplicationService(
		ledgerRepo,
		donationRepo,
		txManager,
		logger,
		metrics,
	)

	// REST APIルーターの初期化
	router, err := rest.NewRouter(
		cfg,
		logger,
		metrics,
		statusAppService,
		checkoutAppService,
		webhookAppService,
		authAppService,
		adminAppService,
		healthChecker,
	)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// サーバーアドレスの設定
	address := fmt.Sprintf(":%d", cfg.Server.Port)

	// グレースフルシャットダウンの設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// REST APIサーバーを別ゴルーチンで起動
	go func() {
		log.Printf("REST API server starting on %s", address)
		if err := router.Start(address); err != nil {
			log.Printf("REST API server error: %v", err)
		}
	}()

	// シグナルを待機
	<-quit
	log.Println("Shutting down server...")

	// グレースフルシャットダウン
	if err := router.Shutdown(); err != nil {
		log.Printf("Error shutting down REST API server: %v", err)
	}

	log.Println("Server stopped")
}
