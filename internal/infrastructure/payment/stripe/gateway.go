package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	stripesdk "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"donation-server/internal/domain/payment"
	"donation-server/internal/infrastructure/config"
)

// productDisplayName チェックアウト画面に表示される商品名
const productDisplayName = "One Click"

// metadataCountryKey セッションのMetadataに国コードを載せるキー
const metadataCountryKey = "country"

// Gateway Stripe実装のpayment.Gateway
//
// 決済そのものはStripeのホスト型チェックアウトに完全委譲する。カード情報は
// 一切このサーバーを通らない。
type Gateway struct {
	webhookSecret string
	tracer        trace.Tracer
}

// NewGateway 新しいGatewayを作成
//
// StripeのSDKはグローバルなAPIキーを使用するため、プロセスにつき1つの
// アカウントのみ扱える。
func NewGateway(cfg *config.StripeConfig) *Gateway {
	stripesdk.Key = cfg.SecretKey
	return &Gateway{
		webhookSecret: cfg.WebhookSecret,
		tracer:        otel.Tracer("stripe-gateway"),
	}
}

// CreateCheckoutSession ワンタイム決済のチェックアウトセッションを作成
//
// 価格表にPrice IDが設定されている通貨はそれを参照し、未設定の通貨は
// インラインのprice_dataで金額を指定する。
func (g *Gateway) CreateCheckoutSession(ctx context.Context, req *payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	ctx, span := g.tracer.Start(ctx, "StripeGateway.CreateCheckoutSession")
	defer span.End()

	span.SetAttributes(
		attribute.String("stripe.currency", req.Currency),
		attribute.Int64("stripe.unit_amount", req.UnitAmount),
	)

	lineItem := &stripesdk.CheckoutSessionLineItemParams{
		Quantity: stripesdk.Int64(1),
	}
	if req.StripePriceID != "" {
		lineItem.Price = stripesdk.String(req.StripePriceID)
	} else {
		lineItem.PriceData = &stripesdk.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripesdk.String(strings.ToLower(req.Currency)),
			UnitAmount: stripesdk.Int64(req.UnitAmount),
			ProductData: &stripesdk.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripesdk.String(productDisplayName),
			},
		}
	}

	metadata := map[string]string{
		metadataCountryKey: req.Country,
	}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	params := &stripesdk.CheckoutSessionParams{
		LineItems:  []*stripesdk.CheckoutSessionLineItemParams{lineItem},
		Mode:       stripesdk.String(string(stripesdk.CheckoutSessionModePayment)),
		SuccessURL: stripesdk.String(req.SuccessURL),
		CancelURL:  stripesdk.String(req.CancelURL),
		Metadata:   metadata,
	}
	params.Context = ctx

	result, err := session.New(params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("%w: %v", payment.ErrGatewayUnavailable, err)
	}

	span.SetAttributes(attribute.String("stripe.session_id", result.ID))
	span.SetStatus(otelcodes.Ok, "checkout session created")
	return &payment.CheckoutSession{
		SessionID: result.ID,
		URL:       result.URL,
	}, nil
}

// VerifyEvent 受信したWebhookイベントを署名検証して解釈する
//
// 署名が不正な場合はErrInvalidSignatureを返す。checkout.session.completed
// 以外のイベントはPaymentをnilのまま返し、呼び出し側で無視される。
func (g *Gateway) VerifyEvent(payload []byte, signatureHeader string) (*payment.Event, error) {
	event, err := webhook.ConstructEvent(payload, signatureHeader, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrInvalidSignature, err)
	}

	result := &payment.Event{Type: string(event.Type)}
	if result.Type != payment.EventTypeCheckoutCompleted {
		return result, nil
	}

	var sess stripesdk.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}

	result.Payment = &payment.ConfirmedPayment{
		SessionID:   sess.ID,
		Currency:    strings.ToUpper(string(sess.Currency)),
		Country:     sess.Metadata[metadataCountryKey],
		AmountTotal: sess.AmountTotal,
	}
	return result, nil
}
