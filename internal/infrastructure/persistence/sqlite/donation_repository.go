package sqlite

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"donation-server/internal/domain/ledger"
)

// DonationRepository SQLite実装のDonationRepository
type DonationRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewDonationRepository 新しいDonationRepositoryを作成
func NewDonationRepository(db *DB) *DonationRepository {
	return &DonationRepository{
		db:     db,
		tracer: otel.Tracer("donation-repository"),
	}
}

// querier コンテキストに応じたクエリ実行先を返す
func (r *DonationRepository) querier(ctx context.Context) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.DB
}

// Save 寄付予定通知を保存
func (r *DonationRepository) Save(ctx context.Context, d *ledger.DonationDue) error {
	ctx, span := r.tracer.Start(ctx, "DonationRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.donation_id", d.DonationID),
		attribute.Int64("db.amount_cents", d.AmountCents),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "donations"),
	)

	query := `
		INSERT INTO donations (donation_id, charity_name, amount_cents, goal_reached, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.querier(ctx).ExecContext(ctx, query,
		d.DonationID,
		d.CharityName,
		d.AmountCents,
		d.GoalReached,
		d.OccurredAt.UTC(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to save donation: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "donation saved")
	return nil
}

// FindRecent 直近の寄付予定通知を取得（新しい順）
func (r *DonationRepository) FindRecent(ctx context.Context, limit int) ([]*ledger.DonationDue, error) {
	ctx, span := r.tracer.Start(ctx, "DonationRepository.FindRecent")
	defer span.End()

	span.SetAttributes(
		attribute.Int("db.limit", limit),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.table", "donations"),
	)

	query := `
		SELECT donation_id, charity_name, amount_cents, goal_reached, created_at
		FROM donations
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.querier(ctx).QueryContext(ctx, query, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to find donations: %w", err)
	}
	defer rows.Close()

	var donations []*ledger.DonationDue
	for rows.Next() {
		var d ledger.DonationDue
		var createdAt time.Time
		if err := rows.Scan(&d.DonationID, &d.CharityName, &d.AmountCents, &d.GoalReached, &createdAt); err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		d.OccurredAt = createdAt
		donations = append(donations, &d)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate donations: %w", err)
	}

	span.SetAttributes(attribute.Int("db.result_count", len(donations)))
	span.SetStatus(otelcodes.Ok, "donations found")
	return donations, nil
}
