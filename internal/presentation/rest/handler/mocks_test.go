package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"donation-server/internal/domain/ledger"
	"donation-server/internal/domain/payment"
	otelinfra "donation-server/internal/infrastructure/observability/otel"
	"donation-server/internal/infrastructure/persistence/memory"
)

// MockGateway モック決済ゲートウェイ
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, req *payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

func (m *MockGateway) VerifyEvent(payload []byte, signatureHeader string) (*payment.Event, error) {
	args := m.Called(payload, signatureHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Event), args.Error(1)
}

// newTestStore テスト用のインメモリストアを作成
func newTestStore(t *testing.T) *memory.Store {
	t.Helper()
	return memory.NewStore(ledger.MustNewLedger(42, 1000, 4200, "Direct Relief", 50))
}

// newTestObservability テスト用のロガーとメトリクスを作成
func newTestObservability(t *testing.T) (*otelinfra.Logger, *otelinfra.Metrics) {
	t.Helper()
	tracer := otel.Tracer("test")
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)
	return otelinfra.NewLogger(tracer), metrics
}
