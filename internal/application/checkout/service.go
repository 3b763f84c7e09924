package checkout

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"donation-server/internal/domain/payment"
	"donation-server/internal/domain/pricing"
	otelinfra "donation-server/internal/infrastructure/observability/otel"
)

// CheckoutApplicationService チェックアウトアプリケーションサービス
//
// 決済金額の決定はサーバー側の価格表のみに基づく。クライアントから送られた
// 金額は一切信用しない。
type CheckoutApplicationService struct {
	table         *pricing.Table
	gateway       payment.Gateway
	publicBaseURL string
	logger        *otelinfra.Logger
	metrics       *otelinfra.Metrics
	tracer        trace.Tracer
}

// NewCheckoutApplicationService 新しいCheckoutApplicationServiceを作成
func NewCheckoutApplicationService(
	table *pricing.Table,
	gateway payment.Gateway,
	publicBaseURL string,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *CheckoutApplicationService {
	return &CheckoutApplicationService{
		table:         table,
		gateway:       gateway,
		publicBaseURL: publicBaseURL,
		logger:        logger,
		metrics:       metrics,
		tracer:        otel.Tracer("checkout-service"),
	}
}

// CreateSession ホスト型決済ページへのセッションを作成
func (s *CheckoutApplicationService) CreateSession(ctx context.Context, req *CreateSessionRequest) (*CreateSessionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutApplicationService.CreateSession")
	defer span.End()

	span.SetAttributes(
		attribute.String("checkout.currency", req.Currency),
		attribute.String("checkout.country", req.Country),
	)

	var tier pricing.PriceTier
	if req.Currency != "" {
		var err error
		tier, err = s.table.Find(req.Currency)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			s.logger.Warn(ctx, "Rejected checkout for unsupported currency", map[string]interface{}{
				"currency": req.Currency,
			})
			return nil, err
		}
	} else {
		tier = s.table.Lookup(req.Country)
	}

	country := req.Country
	if country == "" {
		country = tier.Country
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, &payment.CheckoutRequest{
		Currency:      tier.Currency,
		Country:       country,
		UnitAmount:    tier.UnitAmount,
		StripePriceID: tier.StripePriceID,
		SuccessURL:    fmt.Sprintf("%s/thanks.html?session_id={CHECKOUT_SESSION_ID}", s.publicBaseURL),
		CancelURL:     fmt.Sprintf("%s/", s.publicBaseURL),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to create checkout session", err, map[string]interface{}{
			"currency": tier.Currency,
			"country":  country,
		})
		s.metrics.RecordError(ctx, "checkout_session_failed")
		return nil, err
	}

	s.metrics.RecordCheckoutSession(ctx, tier.Currency)
	s.logger.Info(ctx, "Checkout session created", map[string]interface{}{
		"session_id": sess.SessionID,
		"currency":   tier.Currency,
		"country":    country,
	})

	span.SetAttributes(attribute.String("checkout.session_id", sess.SessionID))
	return &CreateSessionResponse{
		SessionID: sess.SessionID,
		URL:       sess.URL,
	}, nil
}
