package ledger

import (
	"time"
)

const (
	// DefaultDonationPercent デフォルトの寄付割合 (50%)
	DefaultDonationPercent = 50
	// MaxCharityNameLength 慈善団体名の最大長
	MaxCharityNameLength = 255
)

// Ledger クリック数・調達額・目標を保持する台帳エンティティ
//
// 確定済み決済イベントの適用によってのみ変異する。クリック数が目標に達した
// 瞬間に、寄付予定(DonationDue)の発行・目標の倍化・カウンターのリセットを
// ひとつの変異として行う。外部から clickCount >= clickGoal の状態が観測される
// ことはない。
type Ledger struct {
	clickCount       int64
	clickGoal        int64
	totalRaisedCents int64 // 米ドルセント換算の概算値（表示・報告用）
	charityName      string
	contactEmail     string
	donationPercent  int
	updatedAt        time.Time
}

// NewLedger 新しいLedgerエンティティを作成
func NewLedger(clickCount, clickGoal, totalRaisedCents int64, charityName string, donationPercent int) (*Ledger, error) {
	if clickCount < 0 {
		return nil, ErrNegativeClickCount
	}
	if clickGoal <= 0 {
		return nil, ErrInvalidGoal
	}
	if totalRaisedCents < 0 {
		return nil, ErrNegativeTotalRaised
	}
	if charityName == "" || len(charityName) > MaxCharityNameLength {
		return nil, ErrEmptyCharityName
	}
	if donationPercent < 0 || donationPercent > 100 {
		return nil, ErrInvalidDonationPercent
	}
	return &Ledger{
		clickCount:       clickCount,
		clickGoal:        clickGoal,
		totalRaisedCents: totalRaisedCents,
		charityName:      charityName,
		donationPercent:  donationPercent,
		updatedAt:        time.Now(),
	}, nil
}

// ClickCount 現在のサイクルの確定クリック数を返す
func (l *Ledger) ClickCount() int64 {
	return l.clickCount
}

// ClickGoal 現在の目標クリック数を返す
func (l *Ledger) ClickGoal() int64 {
	return l.clickGoal
}

// TotalRaisedCents 現在のサイクルの調達額（米ドルセント換算）を返す
func (l *Ledger) TotalRaisedCents() int64 {
	return l.totalRaisedCents
}

// CharityName 慈善団体名を返す
func (l *Ledger) CharityName() string {
	return l.charityName
}

// ContactEmail 慈善団体の連絡先メールアドレスを返す
func (l *Ledger) ContactEmail() string {
	return l.contactEmail
}

// DonationPercent 寄付割合 (0-100) を返す
func (l *Ledger) DonationPercent() int {
	return l.donationPercent
}

// UpdatedAt 最終更新時刻を返す
func (l *Ledger) UpdatedAt() time.Time {
	return l.updatedAt
}

// ApplyPayment 確定済み決済を1件適用する
//
// クリック数を1増やし、調達額に概算の米ドルセント換算額を加算する。
// 加算後にクリック数が目標に達していた場合は目標到達遷移を同時に適用する:
// DonationDueを生成し、目標を2倍にし、両カウンターを0に戻す。
// 目標の倍化は無条件・無上限（キャンペーンの打ち切りは存在しない）。
func (l *Ledger) ApplyPayment(usdCents int64) (*DonationDue, error) {
	if usdCents < 0 {
		return nil, ErrInvalidAmount
	}

	l.clickCount++
	l.totalRaisedCents += usdCents
	l.updatedAt = time.Now()

	if l.clickCount < l.clickGoal {
		return nil, nil
	}

	// 目標到達遷移
	due := &DonationDue{
		CharityName: l.charityName,
		AmountCents: l.totalRaisedCents * int64(l.donationPercent) / 100,
		GoalReached: l.clickGoal,
		OccurredAt:  l.updatedAt,
	}
	l.clickGoal *= 2
	l.clickCount = 0
	l.totalRaisedCents = 0
	return due, nil
}

// SetCharityName 慈善団体名を更新する
func (l *Ledger) SetCharityName(name string) error {
	if name == "" || len(name) > MaxCharityNameLength {
		return ErrEmptyCharityName
	}
	l.charityName = name
	l.updatedAt = time.Now()
	return nil
}

// SetContactEmail 慈善団体の連絡先メールアドレスを更新する
func (l *Ledger) SetContactEmail(email string) {
	l.contactEmail = email
	l.updatedAt = time.Now()
}

// SetClickGoal 目標クリック数を上書きする（管理操作）
func (l *Ledger) SetClickGoal(goal int64) error {
	if goal <= 0 {
		return ErrInvalidGoal
	}
	l.clickGoal = goal
	l.updatedAt = time.Now()
	return nil
}

// SetDonationPercent 寄付割合を更新する（管理操作）
func (l *Ledger) SetDonationPercent(percent int) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidDonationPercent
	}
	l.donationPercent = percent
	l.updatedAt = time.Now()
	return nil
}

// Reset カウンターをゼロに戻し、目標を指定値に設定する（管理操作）
func (l *Ledger) Reset(goal int64) error {
	if goal <= 0 {
		return ErrInvalidGoal
	}
	l.clickCount = 0
	l.totalRaisedCents = 0
	l.clickGoal = goal
	l.updatedAt = time.Now()
	return nil
}

// MustNewLedger テスト用ヘルパー: NewLedgerを呼び出し、エラーが発生した場合はpanicする
func MustNewLedger(clickCount, clickGoal, totalRaisedCents int64, charityName string, donationPercent int) *Ledger {
	l, err := NewLedger(clickCount, clickGoal, totalRaisedCents, charityName, donationPercent)
	if err != nil {
		panic(err)
	}
	return l
}
