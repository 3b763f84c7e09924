package status

// GetStatusRequest カウンター状況取得リクエスト
type GetStatusRequest struct {
	Country string // 推定された国コード（空可）
}

// GetStatusResponse カウンター状況レスポンス
//
// 価格情報は閲覧者の地域向けにローカライズされた表示用の値。
type GetStatusResponse struct {
	CurrentClicks    int64
	ClickGoal        int64
	TotalRaisedCents int64
	CharityName      string
	DonationPercent  int
	Country          string
	Currency         string
	DisplayAmount    string
	UnitAmount       int64
}
