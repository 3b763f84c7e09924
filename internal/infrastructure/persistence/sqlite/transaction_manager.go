package sqlite

import (
	"context"
	"database/sql"
	"sync"
)

// txKey コンテキストにトランザクションを載せるためのキー
type txKey struct{}

// txFromContext コンテキストからトランザクションを取り出す（なければnil）
func txFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// TransactionManager トランザクション管理を提供
//
// データベーストランザクションに加えてプロセス内ミューテックスで書き込みを
// 直列化する。並行して届いたWebhookが増分を失ったり、目標到達遷移を二重に
// 適用したりすることを防ぐ。fnに渡すコンテキストにトランザクションを載せ、
// 同じコンテキストで呼ばれたリポジトリ操作をトランザクション内で実行させる。
type TransactionManager struct {
	db *DB
	mu sync.Mutex
}

// NewTransactionManager 新しいトランザクションマネージャーを作成
func NewTransactionManager(db *DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// WithTransaction トランザクション内で関数を実行
//
// 戻り値は名前付きにする。deferで実行されるコミットの失敗を呼び出し元へ
// 伝播させないと、永続化されていない決済を成功として応答してしまう。
func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	tx, err := tm.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(context.WithValue(ctx, txKey{}, tx))
	return err
}
