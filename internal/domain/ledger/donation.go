package ledger

import "time"

// DonationDue 目標到達時に発行される寄付予定の通知
//
// 報告用の副作用であり、送金そのものは行われない。
type DonationDue struct {
	DonationID  string
	CharityName string
	AmountCents int64 // 寄付予定額（米ドルセント換算）
	GoalReached int64 // 到達した目標クリック数
	OccurredAt  time.Time
}
