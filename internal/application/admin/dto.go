package admin

import "time"

// SettingsResponse 運用設定と現在のカウンター状況
type SettingsResponse struct {
	CharityName      string
	ContactEmail     string
	ClickGoal        int64
	DonationPercent  int
	CurrentClicks    int64
	TotalRaisedCents int64
	UpdatedAt        time.Time
}

// UpdateSettingsRequest 運用設定の更新リクエスト
//
// nilのフィールドは変更しない。
type UpdateSettingsRequest struct {
	CharityName     *string
	ContactEmail    *string
	ClickGoal       *int64
	DonationPercent *int
}

// ResetRequest カウンターのリセットリクエスト
type ResetRequest struct {
	ClickGoal int64 // 0以下の場合は現在の目標を維持
}

// DonationRecord 記録された寄付予定
type DonationRecord struct {
	DonationID  string
	CharityName string
	AmountCents int64
	GoalReached int64
	OccurredAt  time.Time
}

// ListDonationsRequest 寄付予定一覧の取得リクエスト
type ListDonationsRequest struct {
	Limit int
}

// ListDonationsResponse 寄付予定一覧レスポンス
type ListDonationsResponse struct {
	Donations []DonationRecord
}
