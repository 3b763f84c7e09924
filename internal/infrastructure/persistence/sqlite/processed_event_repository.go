package sqlite

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"donation-server/internal/domain/ledger"
)

// ProcessedEventRepository SQLite実装のProcessedEventRepository
type ProcessedEventRepository struct {
	db     *DB
	tracer trace.Tracer
}

// NewProcessedEventRepository 新しいProcessedEventRepositoryを作成
func NewProcessedEventRepository(db *DB) *ProcessedEventRepository {
	return &ProcessedEventRepository{
		db:     db,
		tracer: otel.Tracer("processed-event-repository"),
	}
}

// querier コンテキストに応じたクエリ実行先を返す
func (r *ProcessedEventRepository) querier(ctx context.Context) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.DB
}

// Record セッションIDを適用済みとして登録
//
// 主キー制約により同一セッションIDの二重登録はErrEventAlreadyProcessedになる。
// 台帳の変異と同じトランザクション内で呼ぶことで「正確に1回だけ適用」を保証する。
func (r *ProcessedEventRepository) Record(ctx context.Context, sessionID string) error {
	ctx, span := r.tracer.Start(ctx, "ProcessedEventRepository.Record")
	defer span.End()

	span.SetAttributes(
		attribute.String("db.session_id", sessionID),
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.table", "processed_events"),
	)

	query := `
		INSERT INTO processed_events (session_id)
		VALUES (?)
		ON CONFLICT (session_id) DO NOTHING
	`

	result, err := r.querier(ctx).ExecContext(ctx, query, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to record processed event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		span.SetStatus(otelcodes.Ok, "event already processed")
		return ledger.ErrEventAlreadyProcessed
	}

	span.SetStatus(otelcodes.Ok, "event recorded")
	return nil
}
