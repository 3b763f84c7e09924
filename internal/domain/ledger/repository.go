package ledger

import (
	"context"
)

// LedgerRepository 台帳リポジトリインターフェース
//
// 台帳は論理的に1件のみ存在し、常に最新の状態として読み書きされる。
type LedgerRepository interface {
	// Find 台帳を取得
	Find(ctx context.Context) (*Ledger, error)

	// Save 台帳を保存（更新）
	Save(ctx context.Context, l *Ledger) error
}

// ProcessedEventRepository 適用済み決済イベントのリポジトリインターフェース
//
// Webhookの再送・リプレイから台帳を保護する（各イベントは正確に1回だけ適用）。
type ProcessedEventRepository interface {
	// Record セッションIDを適用済みとして登録
	// 既に登録済みの場合はErrEventAlreadyProcessedを返す
	Record(ctx context.Context, sessionID string) error
}

// DonationRepository 寄付予定通知のリポジトリインターフェース
type DonationRepository interface {
	// Save 寄付予定通知を保存
	Save(ctx context.Context, d *DonationDue) error

	// FindRecent 直近の寄付予定通知を取得（新しい順）
	FindRecent(ctx context.Context, limit int) ([]*DonationDue, error)
}
