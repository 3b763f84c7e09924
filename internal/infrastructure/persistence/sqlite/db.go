package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"donation-server/internal/infrastructure/config"

	_ "modernc.org/sqlite"
)

// DB データベース接続とスキーマ管理を提供
type DB struct {
	*sql.DB
}

// NewDB 新しいデータベース接続を作成
func NewDB(cfg *config.StorageConfig) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", cfg.SQLitePath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLiteは単一ライター。コネクションを1本に絞って書き込みを直列化する
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// 接続テスト
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Migrate スキーマを作成する（存在しない場合のみ）
func (db *DB) Migrate(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS ledger (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			current_clicks INTEGER NOT NULL DEFAULT 0,
			click_goal INTEGER NOT NULL,
			total_raised_cents INTEGER NOT NULL DEFAULT 0,
			charity_name TEXT NOT NULL,
			contact_email TEXT NOT NULL DEFAULT '',
			donation_percent INTEGER NOT NULL DEFAULT 50,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS processed_events (
			session_id TEXT PRIMARY KEY,
			processed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS donations (
			donation_id TEXT PRIMARY KEY,
			charity_name TEXT NOT NULL,
			amount_cents INTEGER NOT NULL,
			goal_reached INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

// Seed 台帳行が存在しない場合に初期値で作成する
func (db *DB) Seed(ctx context.Context, cfg *config.LedgerConfig) error {
	query := `
		INSERT INTO ledger (id, current_clicks, click_goal, total_raised_cents, charity_name, donation_percent)
		VALUES (1, 0, ?, 0, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := db.ExecContext(ctx, query, cfg.InitialClickGoal, cfg.CharityName, cfg.DonationPercent)
	if err != nil {
		return fmt.Errorf("failed to seed ledger: %w", err)
	}
	return nil
}

// Close データベース接続を閉じる
func (db *DB) Close() error {
	return db.DB.Close()
}

// HealthCheck データベースのヘルスチェックを実行
func (db *DB) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}
