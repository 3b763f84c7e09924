package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	webhookapp "donation-server/internal/application/webhook"
	"donation-server/internal/domain/payment"
	"donation-server/internal/domain/pricing"
	"donation-server/internal/infrastructure/persistence/memory"
)

func newWebhookHandler(t *testing.T, gateway *MockGateway) (*WebhookHandler, *memory.Store) {
	t.Helper()
	store := newTestStore(t)
	logger, metrics := newTestObservability(t)
	svc := webhookapp.NewWebhookApplicationService(
		gateway,
		pricing.NewTable(nil),
		memory.NewLedgerRepository(store),
		memory.NewProcessedEventRepository(store),
		memory.NewDonationRepository(store),
		store,
		logger,
		metrics,
	)
	return NewWebhookHandler(svc), store
}

func postWebhook(e *echo.Echo, body, signature string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWebhookHandler_HandleWebhook(t *testing.T) {
	payload := `{"id":"evt_1"}`
	sig := "t=1,v1=sig"

	t.Run("正常系: 生のボディと署名ヘッダーが検証に渡される", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("VerifyEvent", []byte(payload), sig).Return(&payment.Event{
			Type: payment.EventTypeCheckoutCompleted,
			Payment: &payment.ConfirmedPayment{
				SessionID:   "cs_1",
				Currency:    "USD",
				AmountTotal: 100,
			},
		}, nil)

		handler, store := newWebhookHandler(t, gateway)
		e := echo.New()
		c, rec := postWebhook(e, payload, sig)

		err := handler.HandleWebhook(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp WebhookResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Received)

		l, err := memory.NewLedgerRepository(store).Find(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(43), l.ClickCount())
		gateway.AssertExpectations(t)
	})

	t.Run("正常系: 再送イベントも200で応答する", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("VerifyEvent", []byte(payload), sig).Return(&payment.Event{
			Type: payment.EventTypeCheckoutCompleted,
			Payment: &payment.ConfirmedPayment{
				SessionID:   "cs_1",
				Currency:    "USD",
				AmountTotal: 100,
			},
		}, nil)

		handler, store := newWebhookHandler(t, gateway)
		e := echo.New()

		c, _ := postWebhook(e, payload, sig)
		require.NoError(t, handler.HandleWebhook(c))

		c, rec := postWebhook(e, payload, sig)
		require.NoError(t, handler.HandleWebhook(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		l, err := memory.NewLedgerRepository(store).Find(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(43), l.ClickCount())
	})

	t.Run("異常系: 署名検証失敗はエラーとして伝播する", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("VerifyEvent", []byte(payload), "bad").Return(nil, payment.ErrInvalidSignature)

		handler, _ := newWebhookHandler(t, gateway)
		e := echo.New()
		c, _ := postWebhook(e, payload, "bad")

		err := handler.HandleWebhook(c)
		assert.ErrorIs(t, err, payment.ErrInvalidSignature)
	})
}
