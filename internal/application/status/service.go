package status

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"donation-server/internal/domain/ledger"
	"donation-server/internal/domain/pricing"
	otelinfra "donation-server/internal/infrastructure/observability/otel"
)

// StatusApplicationService カウンター状況アプリケーションサービス
type StatusApplicationService struct {
	table      *pricing.Table
	ledgerRepo ledger.LedgerRepository
	logger     *otelinfra.Logger
	tracer     trace.Tracer
}

// NewStatusApplicationService 新しいStatusApplicationServiceを作成
func NewStatusApplicationService(
	table *pricing.Table,
	ledgerRepo ledger.LedgerRepository,
	logger *otelinfra.Logger,
) *StatusApplicationService {
	return &StatusApplicationService{
		table:      table,
		ledgerRepo: ledgerRepo,
		logger:     logger,
		tracer:     otel.Tracer("status-service"),
	}
}

// GetStatus 現在のカウンター状況と地域向けの価格を返す
//
// 未知の国コードはデフォルト価格帯にフォールバックし、エラーにはならない。
func (s *StatusApplicationService) GetStatus(ctx context.Context, req *GetStatusRequest) (*GetStatusResponse, error) {
	ctx, span := s.tracer.Start(ctx, "StatusApplicationService.GetStatus")
	defer span.End()

	span.SetAttributes(attribute.String("status.country", req.Country))

	l, err := s.ledgerRepo.Find(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to load ledger", err, nil)
		return nil, err
	}

	tier := s.table.Lookup(req.Country)

	return &GetStatusResponse{
		CurrentClicks:    l.ClickCount(),
		ClickGoal:        l.ClickGoal(),
		TotalRaisedCents: l.TotalRaisedCents(),
		CharityName:      l.CharityName(),
		DonationPercent:  l.DonationPercent(),
		Country:          tier.Country,
		Currency:         tier.Currency,
		DisplayAmount:    tier.DisplayAmount,
		UnitAmount:       tier.UnitAmount,
	}, nil
}
