package admin

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"donation-server/internal/domain/ledger"
	"donation-server/internal/domain/transaction"
	otelinfra "donation-server/internal/infrastructure/observability/otel"
)

// DefaultDonationListLimit 寄付予定一覧のデフォルト取得件数
const DefaultDonationListLimit = 50

// AdminApplicationService 運用者向けアプリケーションサービス
type AdminApplicationService struct {
	ledgerRepo   ledger.LedgerRepository
	donationRepo ledger.DonationRepository
	txManager    transaction.Manager
	logger       *otelinfra.Logger
	metrics      *otelinfra.Metrics
	tracer       trace.Tracer
}

// NewAdminApplicationService 新しいAdminApplicationServiceを作成
func NewAdminApplicationService(
	ledgerRepo ledger.LedgerRepository,
	donationRepo ledger.DonationRepository,
	txManager transaction.Manager,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *AdminApplicationService {
	return &AdminApplicationService{
		ledgerRepo:   ledgerRepo,
		donationRepo: donationRepo,
		txManager:    txManager,
		logger:       logger,
		metrics:      metrics,
		tracer:       otel.Tracer("admin-service"),
	}
}

// GetSettings 現在の運用設定を取得
func (s *AdminApplicationService) GetSettings(ctx context.Context) (*SettingsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AdminApplicationService.GetSettings")
	defer span.End()

	l, err := s.ledgerRepo.Find(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}
	return settingsResponse(l), nil
}

// UpdateSettings 運用設定を更新
//
// 指定されたフィールドのみ変更する。検証エラーの場合は何も変更されない。
func (s *AdminApplicationService) UpdateSettings(ctx context.Context, req *UpdateSettingsRequest) (*SettingsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AdminApplicationService.UpdateSettings")
	defer span.End()

	var result *SettingsResponse
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		l, err := s.ledgerRepo.Find(txCtx)
		if err != nil {
			return err
		}

		if req.CharityName != nil {
			if err := l.SetCharityName(*req.CharityName); err != nil {
				return err
			}
		}
		if req.ContactEmail != nil {
			l.SetContactEmail(*req.ContactEmail)
		}
		if req.ClickGoal != nil {
			if err := l.SetClickGoal(*req.ClickGoal); err != nil {
				return err
			}
		}
		if req.DonationPercent != nil {
			if err := l.SetDonationPercent(*req.DonationPercent); err != nil {
				return err
			}
		}

		if err := s.ledgerRepo.Save(txCtx, l); err != nil {
			return err
		}
		result = settingsResponse(l)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to update settings", err, nil)
		return nil, err
	}

	s.logger.Info(ctx, "Settings updated", map[string]interface{}{
		"charity_name":     result.CharityName,
		"click_goal":       result.ClickGoal,
		"donation_percent": result.DonationPercent,
	})
	s.metrics.RecordClickGoal(ctx, result.ClickGoal)
	return result, nil
}

// Reset カウンターをゼロに戻す
//
// 集計済みの寄付予定の記録には影響しない。
func (s *AdminApplicationService) Reset(ctx context.Context, req *ResetRequest) (*SettingsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AdminApplicationService.Reset")
	defer span.End()

	span.SetAttributes(attribute.Int64("admin.click_goal", req.ClickGoal))

	var result *SettingsResponse
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		l, err := s.ledgerRepo.Find(txCtx)
		if err != nil {
			return err
		}

		goal := req.ClickGoal
		if goal <= 0 {
			goal = l.ClickGoal()
		}
		if err := l.Reset(goal); err != nil {
			return err
		}

		if err := s.ledgerRepo.Save(txCtx, l); err != nil {
			return err
		}
		result = settingsResponse(l)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to reset counter", err, nil)
		return nil, err
	}

	s.logger.Warn(ctx, "Counter reset", map[string]interface{}{
		"click_goal": result.ClickGoal,
	})
	s.metrics.RecordClickGoal(ctx, result.ClickGoal)
	return result, nil
}

// ListDonations 記録された寄付予定を新しい順に取得
func (s *AdminApplicationService) ListDonations(ctx context.Context, req *ListDonationsRequest) (*ListDonationsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AdminApplicationService.ListDonations")
	defer span.End()

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultDonationListLimit
	}
	span.SetAttributes(attribute.Int("admin.limit", limit))

	donations, err := s.donationRepo.FindRecent(ctx, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to list donations", err, nil)
		return nil, err
	}

	records := make([]DonationRecord, 0, len(donations))
	for _, d := range donations {
		records = append(records, DonationRecord{
			DonationID:  d.DonationID,
			CharityName: d.CharityName,
			AmountCents: d.AmountCents,
			GoalReached: d.GoalReached,
			OccurredAt:  d.OccurredAt,
		})
	}
	return &ListDonationsResponse{Donations: records}, nil
}

func settingsResponse(l *ledger.Ledger) *SettingsResponse {
	return &SettingsResponse{
		CharityName:      l.CharityName(),
		ContactEmail:     l.ContactEmail(),
		ClickGoal:        l.ClickGoal(),
		DonationPercent:  l.DonationPercent(),
		CurrentClicks:    l.ClickCount(),
		TotalRaisedCents: l.TotalRaisedCents(),
		UpdatedAt:        l.UpdatedAt(),
	}
}
