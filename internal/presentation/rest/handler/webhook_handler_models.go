package handler

// WebhookResponse Webhook受信レスポンス
// @Description Webhook受信レスポンス
type WebhookResponse struct {
	Received bool `json:"received" example:"true"`
}
