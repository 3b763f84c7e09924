package checkout

// CreateSessionRequest チェックアウトセッション作成リクエスト
//
// Currencyが指定されている場合はその通貨の価格を厳密に適用し、未対応の
// 通貨は拒否する。未指定の場合はCountryから価格帯を解決する。
type CreateSessionRequest struct {
	Currency string
	Country  string
}

// CreateSessionResponse チェックアウトセッション作成レスポンス
type CreateSessionResponse struct {
	SessionID string
	URL       string
}
