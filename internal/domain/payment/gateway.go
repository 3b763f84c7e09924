package payment

import (
	"context"
)

// CheckoutRequest チェックアウトセッション作成リクエスト
type CheckoutRequest struct {
	Currency      string
	Country       string
	UnitAmount    int64  // 通貨の最小単位での金額
	StripePriceID string // 空の場合はインラインのprice_dataを使用
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// CheckoutSession 作成されたチェックアウトセッション
type CheckoutSession struct {
	SessionID string
	URL       string // ユーザーをリダイレクトする決済ページのURL
}

// Gateway 外部決済プロバイダーへのゲートウェイインターフェース
//
// 決済処理そのものは完全に外部プロバイダーに委譲される。このインターフェース
// が提供するのは「セッションを作成する」「イベントを検証・解釈する」の2操作のみ。
type Gateway interface {
	// CreateCheckoutSession ワンタイム決済セッションを作成
	// 外部呼び出しの失敗時はErrGatewayUnavailableを返す
	CreateCheckoutSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error)

	// VerifyEvent 受信したWebhookイベントを署名検証して解釈する
	// 検証失敗時はErrInvalidSignatureを返し、台帳は一切変異されない
	VerifyEvent(payload []byte, signatureHeader string) (*Event, error)
}
