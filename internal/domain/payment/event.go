package payment

// EventTypeCheckoutCompleted 台帳の変異を引き起こす唯一のイベントタイプ
const EventTypeCheckoutCompleted = "checkout.session.completed"

// Event 署名検証済みのWebhookイベント
//
// Payment は決済確定イベントの場合のみ非nil。その他のイベントタイプは
// 正当なイベントとして受理されるが、無視される（Paymentはnil）。
type Event struct {
	Type    string
	Payment *ConfirmedPayment
}

// ConfirmedPayment 外部プロバイダーで確定した決済
type ConfirmedPayment struct {
	SessionID   string // 冪等性キーとして使うセッションID
	Currency    string // 通貨コード（大文字）
	Country     string // セッション作成時にメタデータで往復させた国コード
	AmountTotal int64  // 通貨の最小単位での決済額
}
