package payment

import "errors"

var (
	// ErrGatewayUnavailable 決済プロバイダーへの外部呼び出しが失敗
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	// ErrInvalidSignature Webhookイベントの署名検証に失敗
	ErrInvalidSignature = errors.New("invalid webhook signature")
)
