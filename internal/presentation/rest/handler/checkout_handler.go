package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	checkoutapp "donation-server/internal/application/checkout"
)

// CheckoutHandler チェックアウト関連ハンドラー
type CheckoutHandler struct {
	checkoutService *checkoutapp.CheckoutApplicationService
}

// NewCheckoutHandler 新しいCheckoutHandlerを作成
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutApplicationService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// CreateCheckoutSession チェックアウトセッション作成ハンドラー
// @Summary 決済セッションを作成
// @Description ホスト型決済ページへのセッションを作成し、リダイレクト先URLを返します
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body CreateCheckoutSessionRequest false "セッション作成リクエスト"
// @Success 200 {object} CreateCheckoutSessionResponse "セッション作成成功"
// @Failure 400 {object} ErrorResponse "未対応の通貨"
// @Failure 500 {object} ErrorResponse "決済プロバイダーに到達できない"
// @Router /create-checkout-session [post]
func (h *CheckoutHandler) CreateCheckoutSession(c echo.Context) error {
	var reqBody CreateCheckoutSessionRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	// ボディで国が明示された場合はジオ推定より優先する
	country := reqBody.Country
	if country == "" {
		country = resolveCountry(c)
	}

	req := &checkoutapp.CreateSessionRequest{
		Currency: reqBody.Currency,
		Country:  country,
	}

	resp, err := h.checkoutService.CreateSession(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CreateCheckoutSessionResponse{
		SessionID: resp.SessionID,
		URL:       resp.URL,
	})
}
