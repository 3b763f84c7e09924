package webhook

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"donation-server/internal/domain/ledger"
	"donation-server/internal/domain/payment"
	"donation-server/internal/domain/pricing"
	"donation-server/internal/domain/transaction"
	otelinfra "donation-server/internal/infrastructure/observability/otel"
)

// WebhookApplicationService Webhookアプリケーションサービス
//
// 台帳を変異させる唯一の経路。署名検証済みの決済完了イベントのみが
// クリックとして計上される。
type WebhookApplicationService struct {
	gateway      payment.Gateway
	table        *pricing.Table
	ledgerRepo   ledger.LedgerRepository
	eventRepo    ledger.ProcessedEventRepository
	donationRepo ledger.DonationRepository
	txManager    transaction.Manager
	logger       *otelinfra.Logger
	metrics      *otelinfra.Metrics
	tracer       trace.Tracer
}

// NewWebhookApplicationService 新しいWebhookApplicationServiceを作成
func NewWebhookApplicationService(
	gateway payment.Gateway,
	table *pricing.Table,
	ledgerRepo ledger.LedgerRepository,
	eventRepo ledger.ProcessedEventRepository,
	donationRepo ledger.DonationRepository,
	txManager transaction.Manager,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *WebhookApplicationService {
	return &WebhookApplicationService{
		gateway:      gateway,
		table:        table,
		ledgerRepo:   ledgerRepo,
		eventRepo:    eventRepo,
		donationRepo: donationRepo,
		txManager:    txManager,
		logger:       logger,
		metrics:      metrics,
		tracer:       otel.Tracer("webhook-service"),
	}
}

// HandleEvent 受信したWebhookイベントを検証し、決済完了なら台帳に反映する
//
// セッションIDの重複登録・台帳の変異・寄付予定の記録は単一トランザクション
// で行われ、同じイベントが再送されても二重計上は起きない。
func (s *WebhookApplicationService) HandleEvent(ctx context.Context, payload []byte, signatureHeader string) (*HandleEventResponse, error) {
	ctx, span := s.tracer.Start(ctx, "WebhookApplicationService.HandleEvent")
	defer span.End()

	event, err := s.gateway.VerifyEvent(payload, signatureHeader)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Warn(ctx, "Rejected webhook event", map[string]interface{}{
			"reason": err.Error(),
		})
		s.metrics.RecordWebhookRejected(ctx)
		return nil, err
	}

	span.SetAttributes(attribute.String("webhook.event_type", event.Type))

	if event.Payment == nil {
		s.logger.Debug(ctx, "Ignoring webhook event", map[string]interface{}{
			"event_type": event.Type,
		})
		return &HandleEventResponse{Received: true}, nil
	}

	p := event.Payment
	if p.SessionID == "" {
		err := fmt.Errorf("checkout session id is missing")
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("webhook.session_id", p.SessionID),
		attribute.String("webhook.currency", p.Currency),
	)

	// 金額の正規化は価格表の固定レートに基づく。未知の通貨のイベントも
	// デフォルト価格帯として計上し、クリックを取りこぼさない。
	tier := s.table.Lookup(p.Currency)

	var due *ledger.DonationDue
	var clickGoal int64
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.eventRepo.Record(txCtx, p.SessionID); err != nil {
			return err
		}

		l, err := s.ledgerRepo.Find(txCtx)
		if err != nil {
			return err
		}

		due, err = l.ApplyPayment(tier.USDCents)
		if err != nil {
			return err
		}
		clickGoal = l.ClickGoal()

		if err := s.ledgerRepo.Save(txCtx, l); err != nil {
			return err
		}

		if due != nil {
			due.DonationID = uuid.New().String()
			if err := s.donationRepo.Save(txCtx, due); err != nil {
				return err
			}
		}
		return nil
	})

	if errors.Is(err, ledger.ErrEventAlreadyProcessed) {
		s.logger.Info(ctx, "Duplicate webhook event ignored", map[string]interface{}{
			"session_id": p.SessionID,
		})
		s.metrics.RecordDuplicateEvent(ctx)
		return &HandleEventResponse{Received: true, Duplicate: true}, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to apply payment to ledger", err, map[string]interface{}{
			"session_id": p.SessionID,
		})
		s.metrics.RecordError(ctx, "webhook_apply_failed")
		return nil, err
	}

	s.metrics.RecordClick(ctx, tier.Currency)
	s.metrics.RecordClickGoal(ctx, clickGoal)
	s.logger.Info(ctx, "Payment applied to ledger", map[string]interface{}{
		"session_id": p.SessionID,
		"currency":   tier.Currency,
	})

	if due != nil {
		// 寄付予定の通知。振込処理そのものは運用者の手に委ねられる。
		s.metrics.RecordDonationDue(ctx, due.CharityName)
		s.logger.Info(ctx, "Donation due: goal reached", map[string]interface{}{
			"donation_id":  due.DonationID,
			"charity_name": due.CharityName,
			"amount_cents": due.AmountCents,
			"goal_reached": due.GoalReached,
			"next_goal":    clickGoal,
		})
	}

	return &HandleEventResponse{
		Received:    true,
		Applied:     true,
		DonationDue: due != nil,
	}, nil
}
