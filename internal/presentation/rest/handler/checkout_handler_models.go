package handler

// CreateCheckoutSessionRequest チェックアウトセッション作成リクエスト
// @Description チェックアウトセッション作成リクエスト
type CreateCheckoutSessionRequest struct {
	Currency string `json:"currency,omitempty" example:"EUR"`
	Country  string `json:"country,omitempty" example:"DE"`
}

// CreateCheckoutSessionResponse チェックアウトセッション作成レスポンス
// @Description チェックアウトセッション作成レスポンス
type CreateCheckoutSessionResponse struct {
	SessionID string `json:"session_id" example:"cs_test_a1B2c3"`
	URL       string `json:"url" example:"https://checkout.stripe.com/c/pay/cs_test_a1B2c3"`
}
