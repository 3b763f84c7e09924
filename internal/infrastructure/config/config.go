package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ストレージドライバー
const (
	StorageDriverSQLite = "sqlite"
	StorageDriverMemory = "memory"
)

// Config アプリケーション全体の設定
type Config struct {
	Server        ServerConfig
	Storage       StorageConfig
	JWT           JWTConfig
	Admin         AdminConfig
	Stripe        StripeConfig
	Ledger        LedgerConfig
	OpenTelemetry OpenTelemetryConfig
	Environment   string
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	PublicBaseURL   string // 決済後のリダイレクト先を組み立てる公開URL
	StaticDir       string // 公開サイトの静的ファイルディレクトリ（空なら配信しない）
	CORSAllowOrigin string
}

// StorageConfig ストレージ設定
type StorageConfig struct {
	Driver          string // "sqlite" または "memory"
	SQLitePath      string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// JWTConfig JWT設定
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AdminConfig 管理者認証設定
type AdminConfig struct {
	Username     string
	PasswordHash string // bcryptハッシュ
}

// StripeConfig Stripe設定
type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	PriceIDs      map[string]string // 通貨コード -> Price ID（STRIPE_PRICE_<CCY>）
}

// LedgerConfig 台帳の初期値設定
type LedgerConfig struct {
	InitialClickGoal int64
	DonationPercent  int
	CharityName      string
}

// OpenTelemetryConfig OpenTelemetry設定
type OpenTelemetryConfig struct {
	Enabled         bool
	ServiceName     string
	ServiceVersion  string
	OTLPEndpoint    string
	OTLPInsecure    bool
	TraceExporter   string // "otlp", "stdout"
	MetricsExporter string // "otlp", "stdout"
}

// 価格IDの上書き対象となる通貨コード
var priceIDCurrencies = []string{"USD", "EUR", "GBP", "JPY", "INR", "CAD", "AUD", "BRL"}

// Load 設定を読み込む
func Load() (*Config, error) {
	// .envファイルを読み込む（存在しない場合は無視）
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "development")

	cfg := &Config{
		Environment: env,
		Server: ServerConfig{
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
			StaticDir:       getEnv("STATIC_DIR", ""),
			CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),
		},
		Storage: StorageConfig{
			Driver:          getEnv("STORAGE_DRIVER", StorageDriverSQLite),
			SQLitePath:      getEnv("SQLITE_PATH", "ledger.db"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 1),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			Expiration: getEnvAsDuration("JWT_EXPIRATION", 24*time.Hour),
			Issuer:     getEnv("JWT_ISSUER", "donation-server"),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			PriceIDs:      loadPriceIDs(),
		},
		Ledger: LedgerConfig{
			InitialClickGoal: getEnvAsInt64("INITIAL_CLICK_GOAL", 1_000_000),
			DonationPercent:  getEnvAsInt("DONATION_PERCENT", 50),
			CharityName:      getEnv("CHARITY_NAME", "Direct Relief"),
		},
		OpenTelemetry: OpenTelemetryConfig{
			Enabled:         getEnvAsBool("OTEL_ENABLED", false),
			ServiceName:     getEnv("OTEL_SERVICE_NAME", "donation-server"),
			ServiceVersion:  getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
			OTLPInsecure:    getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			TraceExporter:   getEnv("OTEL_TRACES_EXPORTER", "otlp"),
			MetricsExporter: getEnv("OTEL_METRICS_EXPORTER", "otlp"),
		},
	}

	// 必須設定の検証
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate 設定の検証
func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if c.Stripe.WebhookSecret == "" {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}
	if c.Storage.Driver != StorageDriverSQLite && c.Storage.Driver != StorageDriverMemory {
		return fmt.Errorf("unsupported storage driver: %s", c.Storage.Driver)
	}
	if c.Storage.Driver == StorageDriverSQLite && c.Storage.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
	}
	if c.Ledger.InitialClickGoal <= 0 {
		return fmt.Errorf("INITIAL_CLICK_GOAL must be positive")
	}
	if c.Ledger.DonationPercent < 0 || c.Ledger.DonationPercent > 100 {
		return fmt.Errorf("DONATION_PERCENT must be between 0 and 100")
	}
	return nil
}

// loadPriceIDs STRIPE_PRICE_<通貨コード>形式の環境変数を収集
func loadPriceIDs() map[string]string {
	ids := make(map[string]string)
	for _, cur := range priceIDCurrencies {
		if v := os.Getenv("STRIPE_PRICE_" + cur); v != "" {
			ids[strings.ToUpper(cur)] = v
		}
	}
	return ids
}

// getEnv 環境変数を取得（デフォルト値付き）
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt 環境変数を整数として取得
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsInt64 環境変数を64ビット整数として取得
func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool 環境変数を真偽値として取得
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration 環境変数を時間として取得
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
