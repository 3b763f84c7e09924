package ledger

import "errors"

var (
	// ErrLedgerNotFound 台帳が見つからないエラー
	ErrLedgerNotFound = errors.New("ledger not found")
	// ErrNegativeClickCount クリック数が負の値
	ErrNegativeClickCount = errors.New("click count must not be negative")
	// ErrNegativeTotalRaised 調達額が負の値
	ErrNegativeTotalRaised = errors.New("total raised must not be negative")
	// ErrInvalidGoal 目標値が無効
	ErrInvalidGoal = errors.New("click goal must be positive")
	// ErrEmptyCharityName 慈善団体名が無効
	ErrEmptyCharityName = errors.New("charity name must not be empty")
	// ErrInvalidDonationPercent 寄付割合が範囲外
	ErrInvalidDonationPercent = errors.New("donation percent must be between 0 and 100")
	// ErrInvalidAmount 金額が無効
	ErrInvalidAmount = errors.New("invalid payment amount")
	// ErrEventAlreadyProcessed 同一の決済イベントが適用済み
	ErrEventAlreadyProcessed = errors.New("payment event already processed")
)
