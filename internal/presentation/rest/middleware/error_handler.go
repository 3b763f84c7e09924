package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	authapp "donation-server/internal/application/auth"
	"donation-server/internal/domain/ledger"
	"donation-server/internal/domain/payment"
	"donation-server/internal/domain/pricing"
	otelinfra "donation-server/internal/infrastructure/observability/otel"
)

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			// エラーハンドリング
			return handleError(c, err, logger)
		}
	}
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	// ドメインエラーの判定と処理
	if errors.Is(err, pricing.ErrUnsupportedCurrency) {
		logger.Warn(ctx, "Unsupported currency", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "unsupported_currency",
			Message: err.Error(),
		})
	}

	if errors.Is(err, payment.ErrInvalidSignature) {
		logger.Warn(ctx, "Invalid webhook signature", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_signature",
			Message: "Webhook signature verification failed",
		})
	}

	if errors.Is(err, payment.ErrGatewayUnavailable) {
		logger.Error(ctx, "Payment gateway unavailable", err, nil)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "payment_gateway_unavailable",
			Message: "Failed to reach the payment provider",
		})
	}

	if errors.Is(err, authapp.ErrInvalidCredentials) {
		logger.Warn(ctx, "Invalid credentials", nil)
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Username or password is incorrect",
		})
	}

	if errors.Is(err, ledger.ErrInvalidGoal) ||
		errors.Is(err, ledger.ErrEmptyCharityName) ||
		errors.Is(err, ledger.ErrInvalidDonationPercent) ||
		errors.Is(err, ledger.ErrInvalidAmount) {
		logger.Warn(ctx, "Invalid ledger settings", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_settings",
			Message: err.Error(),
		})
	}

	if errors.Is(err, ledger.ErrLedgerNotFound) {
		logger.Error(ctx, "Ledger not found", err, nil)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "ledger_not_found",
			Message: "The counter ledger is not initialized",
		})
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		message := ""
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})
	}

	// 予期しないエラー
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_server_error",
		Message: "An unexpected error occurred",
	})
}
