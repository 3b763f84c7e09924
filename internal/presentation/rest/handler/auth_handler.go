package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authapp "donation-server/internal/application/auth"
)

// AuthHandler 認証関連ハンドラー
type AuthHandler struct {
	authService *authapp.AuthApplicationService
}

// NewAuthHandler 新しいAuthHandlerを作成
func NewAuthHandler(authService *authapp.AuthApplicationService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login 運用者ログインハンドラー
// @Summary 運用者としてログイン
// @Description 資格情報を検証してJWT認証トークンを発行します
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "ログインリクエスト"
// @Success 200 {object} LoginResponse "ログイン成功"
// @Failure 400 {object} ErrorResponse "不正なリクエスト"
// @Failure 401 {object} ErrorResponse "認証エラー"
// @Router /admin/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var reqBody LoginRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if reqBody.Username == "" || reqBody.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	req := &authapp.LoginRequest{
		Username: reqBody.Username,
		Password: reqBody.Password,
	}

	resp, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     resp.Token,
		ExpiresIn: int(resp.ExpiresIn),
		TokenType: resp.TokenType,
	})
}
