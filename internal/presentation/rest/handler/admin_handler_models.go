package handler

import "time"

// SettingsResponse 運用設定レスポンス
// @Description 運用設定レスポンス
type SettingsResponse struct {
	CharityName      string    `json:"charity_name" example:"Direct Relief"`
	ContactEmail     string    `json:"contact_email" example:"ops@example.org"`
	ClickGoal        int64     `json:"click_goal" example:"1000000"`
	DonationPercent  int       `json:"donation_percent" example:"50"`
	CurrentClicks    int64     `json:"current_clicks" example:"421337"`
	TotalRaisedCents int64     `json:"total_raised_cents" example:"42133700"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UpdateSettingsRequest 運用設定の更新リクエスト
// @Description 運用設定の更新リクエスト（省略したフィールドは変更されない）
type UpdateSettingsRequest struct {
	CharityName     *string `json:"charity_name,omitempty" example:"Direct Relief"`
	ContactEmail    *string `json:"contact_email,omitempty" example:"ops@example.org"`
	ClickGoal       *int64  `json:"click_goal,omitempty" example:"2000000"`
	DonationPercent *int    `json:"donation_percent,omitempty" example:"50"`
}

// ResetRequest カウンターのリセットリクエスト
// @Description カウンターのリセットリクエスト
type ResetRequest struct {
	ClickGoal int64 `json:"click_goal,omitempty" example:"1000000"`
}

// DonationItem 記録された寄付予定
// @Description 記録された寄付予定
type DonationItem struct {
	DonationID  string    `json:"donation_id" example:"3b89b7d4-4892-4f1a-9a5c-2f1f5ec9b111"`
	CharityName string    `json:"charity_name" example:"Direct Relief"`
	AmountCents int64     `json:"amount_cents" example:"50000000"`
	GoalReached int64     `json:"goal_reached" example:"1000000"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// DonationListResponse 寄付予定一覧レスポンス
// @Description 寄付予定一覧レスポンス
type DonationListResponse struct {
	Donations []DonationItem `json:"donations"`
}
