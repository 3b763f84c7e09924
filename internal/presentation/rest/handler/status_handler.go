package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	statusapp "donation-server/internal/application/status"
)

// StatusHandler カウンター状況ハンドラー
type StatusHandler struct {
	statusService *statusapp.StatusApplicationService
}

// NewStatusHandler 新しいStatusHandlerを作成
func NewStatusHandler(statusService *statusapp.StatusApplicationService) *StatusHandler {
	return &StatusHandler{
		statusService: statusService,
	}
}

// GetStatus カウンター状況取得ハンドラー
// @Summary カウンター状況を取得
// @Description 現在のクリック数・目標・地域向けの価格を取得します
// @Tags status
// @Produce json
// @Param country query string false "国コード（未指定時はCF-IPCountryヘッダーから推定）" example(JP)
// @Success 200 {object} StatusResponse "取得成功"
// @Failure 500 {object} ErrorResponse "サーバーエラー"
// @Router /status [get]
func (h *StatusHandler) GetStatus(c echo.Context) error {
	req := &statusapp.GetStatusRequest{
		Country: resolveCountry(c),
	}

	resp, err := h.statusService.GetStatus(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, StatusResponse{
		CurrentClicks:    resp.CurrentClicks,
		ClickGoal:        resp.ClickGoal,
		TotalRaisedCents: resp.TotalRaisedCents,
		CharityName:      resp.CharityName,
		DonationPercent:  resp.DonationPercent,
		Country:          resp.Country,
		Currency:         resp.Currency,
		DisplayAmount:    resp.DisplayAmount,
		UnitAmount:       resp.UnitAmount,
	})
}
