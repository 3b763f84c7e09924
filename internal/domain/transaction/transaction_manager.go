package transaction

import (
	"context"
)

// Manager トランザクション管理インターフェース
//
// 台帳の変異はすべてこの境界の内側で行う。fnがエラーを返した場合、
// ストレージの状態は呼び出し前と同一でなければならない。fnに渡される
// コンテキストをそのままリポジトリに渡すことで、同一トランザクション内で
// 操作が実行される。
type Manager interface {
	// WithTransaction トランザクション内で関数を実行
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
