package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// 確定クリック数
	ClickCount metric.Int64Counter

	// 現在の目標クリック数
	ClickGoal metric.Int64Gauge

	// 目標到達で発行された寄付予定通知の数
	DonationDueCount metric.Int64Counter

	// 作成されたチェックアウトセッション数
	CheckoutSessionCount metric.Int64Counter

	// 署名検証で拒否されたWebhook数
	WebhookRejectedCount metric.Int64Counter

	// 重複として無視された決済イベント数
	DuplicateEventCount metric.Int64Counter

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := otel.Meter(meterName)

	clickCount, err := meter.Int64Counter(
		"clicks_total",
		metric.WithDescription("Total number of confirmed paid clicks"),
	)
	if err != nil {
		return nil, err
	}

	clickGoal, err := meter.Int64Gauge(
		"click_goal",
		metric.WithDescription("Current click goal"),
	)
	if err != nil {
		return nil, err
	}

	donationDueCount, err := meter.Int64Counter(
		"donations_due_total",
		metric.WithDescription("Total number of donation-due notifications"),
	)
	if err != nil {
		return nil, err
	}

	checkoutSessionCount, err := meter.Int64Counter(
		"checkout_sessions_total",
		metric.WithDescription("Total number of checkout sessions created"),
	)
	if err != nil {
		return nil, err
	}

	webhookRejectedCount, err := meter.Int64Counter(
		"webhook_rejected_total",
		metric.WithDescription("Total number of webhooks rejected by signature verification"),
	)
	if err != nil {
		return nil, err
	}

	duplicateEventCount, err := meter.Int64Counter(
		"duplicate_events_total",
		metric.WithDescription("Total number of replayed payment events ignored"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		ClickCount:           clickCount,
		ClickGoal:            clickGoal,
		DonationDueCount:     donationDueCount,
		CheckoutSessionCount: checkoutSessionCount,
		WebhookRejectedCount: webhookRejectedCount,
		DuplicateEventCount:  duplicateEventCount,
		RequestCount:         requestCount,
		ResponseTime:         responseTime,
		ErrorCount:           errorCount,
	}, nil
}

// RecordClick 確定クリックを記録
func (m *Metrics) RecordClick(ctx context.Context, currency string) {
	m.ClickCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("currency", currency),
		),
	)
}

// RecordClickGoal 現在の目標クリック数を記録
func (m *Metrics) RecordClickGoal(ctx context.Context, goal int64) {
	m.ClickGoal.Record(ctx, goal)
}

// RecordDonationDue 寄付予定通知の発行を記録
func (m *Metrics) RecordDonationDue(ctx context.Context, charityName string) {
	m.DonationDueCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("charity", charityName),
		),
	)
}

// RecordCheckoutSession チェックアウトセッションの作成を記録
func (m *Metrics) RecordCheckoutSession(ctx context.Context, currency string) {
	m.CheckoutSessionCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("currency", currency),
		),
	)
}

// RecordWebhookRejected 署名検証で拒否されたWebhookを記録
func (m *Metrics) RecordWebhookRejected(ctx context.Context) {
	m.WebhookRejectedCount.Add(ctx, 1)
}

// RecordDuplicateEvent 重複として無視された決済イベントを記録
func (m *Metrics) RecordDuplicateEvent(ctx context.Context) {
	m.DuplicateEventCount.Add(ctx, 1)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}
