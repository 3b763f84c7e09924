package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"donation-server/internal/domain/ledger"
)

// querier リポジトリが使うクエリ実行インターフェース
//
// コンテキストにトランザクションが載っていればそれを、なければ素の接続を使う。
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// LedgerRepository SQLite実装のLedgerRepository
type LedgerRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewLedgerRepository 新しいLedgerRepositoryを作成
func NewLedgerRepository(db *DB) *LedgerRepository {
	return &LedgerRepository{
		db:     db,
		tracer: otel.Tracer("ledger-repository"),
	}
}

// querier コンテキストに応じたクエリ実行先を返す
func (r *LedgerRepository) querier(ctx context.Context) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.DB
}

// Find 台帳を取得
//
// 台帳は常に1行（id=1）として読み書きされ、新しい行が追加されることはない。
func (r *LedgerRepository) Find(ctx context.Context) (*ledger.Ledger, error) {
	ctx, span := r.tracer.Start(ctx, "LedgerRepository.Find")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "ledger"),
	)

	query := `
		SELECT current_clicks, click_goal, total_raised_cents, charity_name, contact_email, donation_percent
		FROM ledger
		WHERE id = 1
	`

	var clicks, goal, raised int64
	var charityName, contactEmail string
	var donationPercent int

	err := r.querier(ctx).QueryRowContext(ctx, query).Scan(
		&clicks,
		&goal,
		&raised,
		&charityName,
		&contactEmail,
		&donationPercent,
	)

	if err == sql.ErrNoRows {
		span.SetStatus(otelcodes.Ok, "ledger not found")
		return nil, ledger.ErrLedgerNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find ledger: %w", err)
	}

	l, err := ledger.NewLedger(clicks, goal, raised, charityName, donationPercent)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ledger entity: %w", err)
	}
	l.SetContactEmail(contactEmail)

	span.SetAttributes(
		attribute.Int64("db.click_count", clicks),
		attribute.Int64("db.click_goal", goal),
	)
	span.SetStatus(otelcodes.Ok, "ledger found")
	return l, nil
}

// Save 台帳を保存（更新）
func (r *LedgerRepository) Save(ctx context.Context, l *ledger.Ledger) error {
	ctx, span := r.tracer.Start(ctx, "LedgerRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("db.click_count", l.ClickCount()),
		attribute.Int64("db.click_goal", l.ClickGoal()),
		attribute.Int64("db.total_raised_cents", l.TotalRaisedCents()),
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.table", "ledger"),
	)

	query := `
		UPDATE ledger
		SET current_clicks = ?, click_goal = ?, total_raised_cents = ?,
			charity_name = ?, contact_email = ?, donation_percent = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`

	result, err := r.querier(ctx).ExecContext(ctx, query,
		l.ClickCount(),
		l.ClickGoal(),
		l.TotalRaisedCents(),
		l.CharityName(),
		l.ContactEmail(),
		l.DonationPercent(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save ledger: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		span.SetStatus(otelcodes.Error, "ledger row missing")
		return ledger.ErrLedgerNotFound
	}

	span.SetStatus(otelcodes.Ok, "ledger saved")
	return nil
}
