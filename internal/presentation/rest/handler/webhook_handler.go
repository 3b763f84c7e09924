package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	webhookapp "donation-server/internal/application/webhook"
)

// signatureHeader 決済プロバイダーの署名ヘッダー
const signatureHeader = "Stripe-Signature"

// maxWebhookBodyBytes Webhookボディの最大サイズ
const maxWebhookBodyBytes = 1 << 20 // 1MiB

// WebhookHandler Webhook受信ハンドラー
type WebhookHandler struct {
	webhookService *webhookapp.WebhookApplicationService
}

// NewWebhookHandler 新しいWebhookHandlerを作成
func NewWebhookHandler(webhookService *webhookapp.WebhookApplicationService) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
	}
}

// HandleWebhook Webhook受信ハンドラー
// @Summary 決済プロバイダーからのWebhookを受信
// @Description 署名検証済みの決済完了イベントをカウンターに反映します
// @Tags webhook
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "署名ヘッダー"
// @Success 200 {object} WebhookResponse "受信成功（再送イベントも成功扱い）"
// @Failure 400 {object} ErrorResponse "署名検証失敗"
// @Router /webhook [post]
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	// 署名検証は生のボディに対して行うため、バインドせずに読み取る
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBodyBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}

	resp, err := h.webhookService.HandleEvent(c.Request().Context(), payload, c.Request().Header.Get(signatureHeader))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, WebhookResponse{
		Received: resp.Received,
	})
}
