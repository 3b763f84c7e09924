package handler

// ErrorResponse エラーレスポンス
// @Description エラーレスポンス
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse カウンター状況レスポンス
// @Description カウンター状況レスポンス
type StatusResponse struct {
	CurrentClicks    int64  `json:"current_clicks" example:"421337"`
	ClickGoal        int64  `json:"click_goal" example:"1000000"`
	TotalRaisedCents int64  `json:"total_raised_cents" example:"42133700"`
	CharityName      string `json:"charity_name" example:"Direct Relief"`
	DonationPercent  int    `json:"donation_percent" example:"50"`
	Country          string `json:"country" example:"US"`
	Currency         string `json:"currency" example:"USD"`
	DisplayAmount    string `json:"display_amount" example:"$1.00"`
	UnitAmount       int64  `json:"unit_amount" example:"100"`
}
