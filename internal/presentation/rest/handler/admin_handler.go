package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	adminapp "donation-server/internal/application/admin"
)

// AdminHandler 運用者向けハンドラー
type AdminHandler struct {
	adminService *adminapp.AdminApplicationService
}

// NewAdminHandler 新しいAdminHandlerを作成
func NewAdminHandler(adminService *adminapp.AdminApplicationService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GetSettings 運用設定取得ハンドラー
// @Summary 運用設定を取得
// @Description 現在の運用設定とカウンター状況を取得します
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} SettingsResponse "取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/settings [get]
func (h *AdminHandler) GetSettings(c echo.Context) error {
	resp, err := h.adminService.GetSettings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settingsResponse(resp))
}

// UpdateSettings 運用設定更新ハンドラー
// @Summary 運用設定を更新
// @Description 指定されたフィールドのみ更新します
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body UpdateSettingsRequest true "更新リクエスト"
// @Success 200 {object} SettingsResponse "更新成功"
// @Failure 400 {object} ErrorResponse "不正な設定値"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/settings [post]
func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	var reqBody UpdateSettingsRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req := &adminapp.UpdateSettingsRequest{
		CharityName:     reqBody.CharityName,
		ContactEmail:    reqBody.ContactEmail,
		ClickGoal:       reqBody.ClickGoal,
		DonationPercent: reqBody.DonationPercent,
	}

	resp, err := h.adminService.UpdateSettings(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settingsResponse(resp))
}

// Reset カウンターリセットハンドラー
// @Summary カウンターをリセット
// @Description クリック数と累計金額をゼロに戻します。寄付予定の記録は保持されます
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body ResetRequest false "リセットリクエスト"
// @Success 200 {object} SettingsResponse "リセット成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/reset [post]
func (h *AdminHandler) Reset(c echo.Context) error {
	var reqBody ResetRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.adminService.Reset(c.Request().Context(), &adminapp.ResetRequest{
		ClickGoal: reqBody.ClickGoal,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settingsResponse(resp))
}

// ListDonations 寄付予定一覧ハンドラー
// @Summary 寄付予定の一覧を取得
// @Description 記録された寄付予定を新しい順に取得します
// @Tags admin
// @Produce json
// @Security Bearer
// @Param limit query int false "取得件数" example(50)
// @Success 200 {object} DonationListResponse "取得成功"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/donations [get]
func (h *AdminHandler) ListDonations(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit format")
		}
		limit = parsed
	}

	resp, err := h.adminService.ListDonations(c.Request().Context(), &adminapp.ListDonationsRequest{
		Limit: limit,
	})
	if err != nil {
		return err
	}

	items := make([]DonationItem, 0, len(resp.Donations))
	for _, d := range resp.Donations {
		items = append(items, DonationItem{
			DonationID:  d.DonationID,
			CharityName: d.CharityName,
			AmountCents: d.AmountCents,
			GoalReached: d.GoalReached,
			OccurredAt:  d.OccurredAt,
		})
	}
	return c.JSON(http.StatusOK, DonationListResponse{Donations: items})
}

func settingsResponse(resp *adminapp.SettingsResponse) SettingsResponse {
	return SettingsResponse{
		CharityName:      resp.CharityName,
		ContactEmail:     resp.ContactEmail,
		ClickGoal:        resp.ClickGoal,
		DonationPercent:  resp.DonationPercent,
		CurrentClicks:    resp.CurrentClicks,
		TotalRaisedCents: resp.TotalRaisedCents,
		UpdatedAt:        resp.UpdatedAt,
	}
}
