package memory

import (
	"context"
	"sync"

	"donation-server/internal/domain/ledger"
)

// DefaultProcessedEventLimit 適用済みイベントIDを保持する件数の上限
//
// インメモリ実装ではリプレイ保護を直近のイベントに限定する（古いものから破棄）。
const DefaultProcessedEventLimit = 10000

// Store ミューテックスで保護されたインメモリストア
//
// 台帳・適用済みイベント・寄付履歴を同一のロックで保持する。リポジトリと
// トランザクションマネージャーはすべてこのStoreを共有する。
type Store struct {
	mu         sync.RWMutex
	state      ledger.Ledger
	processed  map[string]struct{}
	eventOrder []string // FIFO破棄用の登録順
	eventLimit int
	donations  []*ledger.DonationDue
}

// NewStore 初期状態の台帳で新しいStoreを作成
func NewStore(initial *ledger.Ledger) *Store {
	return &Store{
		state:      *initial,
		processed:  make(map[string]struct{}),
		eventLimit: DefaultProcessedEventLimit,
	}
}

// HealthCheck ストアの疎通確認（インメモリ実装では常に成功）
func (s *Store) HealthCheck() error {
	return nil
}

// txKey WithTransaction内からの呼び出しを示すコンテキストキー
type txKey struct{}

func inTransaction(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
}

// WithTransaction トランザクション内で関数を実行
//
// 書き込みロックを取り、fnがエラーを返した場合は台帳・適用済みイベント・
// 寄付履歴のすべてを呼び出し前のスナップショットに戻す。
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

// storeSnapshot ロールバック用のスナップショット
type storeSnapshot struct {
	state      ledger.Ledger
	processed  map[string]struct{}
	eventOrder []string
	donations  []*ledger.DonationDue
}

func (s *Store) snapshot() storeSnapshot {
	processed := make(map[string]struct{}, len(s.processed))
	for k := range s.processed {
		processed[k] = struct{}{}
	}
	return storeSnapshot{
		state:      s.state,
		processed:  processed,
		eventOrder: append([]string(nil), s.eventOrder...),
		donations:  append([]*ledger.DonationDue(nil), s.donations...),
	}
}

func (s *Store) restore(snap storeSnapshot) {
	s.state = snap.state
	s.processed = snap.processed
	s.eventOrder = snap.eventOrder
	s.donations = snap.donations
}

// rlock 読み取りロックを取得する（トランザクション内では再取得しない）
func (s *Store) rlock(ctx context.Context) func() {
	if inTransaction(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

// lock 書き込みロックを取得する（トランザクション内では再取得しない）
func (s *Store) lock(ctx context.Context) func() {
	if inTransaction(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// LedgerRepository インメモリ実装のLedgerRepository
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository 新しいLedgerRepositoryを作成
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// Find 台帳を取得
func (r *LedgerRepository) Find(ctx context.Context) (*ledger.Ledger, error) {
	defer r.store.rlock(ctx)()

	// 呼び出し側の変更がストアに漏れないようコピーを返す
	state := r.store.state
	return &state, nil
}

// Save 台帳を保存（更新）
func (r *LedgerRepository) Save(ctx context.Context, l *ledger.Ledger) error {
	defer r.store.lock(ctx)()

	r.store.state = *l
	return nil
}

// ProcessedEventRepository インメモリ実装のProcessedEventRepository
type ProcessedEventRepository struct {
	store *Store
}

// NewProcessedEventRepository 新しいProcessedEventRepositoryを作成
func NewProcessedEventRepository(store *Store) *ProcessedEventRepository {
	return &ProcessedEventRepository{store: store}
}

// Record セッションIDを適用済みとして登録
//
// 既に登録済みの場合はErrEventAlreadyProcessedを返す。保持件数が上限を
// 超えた場合は最も古いIDから破棄する。
func (r *ProcessedEventRepository) Record(ctx context.Context, sessionID string) error {
	defer r.store.lock(ctx)()

	s := r.store
	if _, ok := s.processed[sessionID]; ok {
		return ledger.ErrEventAlreadyProcessed
	}
	s.processed[sessionID] = struct{}{}
	s.eventOrder = append(s.eventOrder, sessionID)

	for len(s.eventOrder) > s.eventLimit {
		oldest := s.eventOrder[0]
		s.eventOrder = s.eventOrder[1:]
		delete(s.processed, oldest)
	}
	return nil
}

// DonationRepository インメモリ実装のDonationRepository
type DonationRepository struct {
	store *Store
}

// NewDonationRepository 新しいDonationRepositoryを作成
func NewDonationRepository(store *Store) *DonationRepository {
	return &DonationRepository{store: store}
}

// Save 寄付予定通知を保存
func (r *DonationRepository) Save(ctx context.Context, d *ledger.DonationDue) error {
	defer r.store.lock(ctx)()

	copied := *d
	r.store.donations = append(r.store.donations, &copied)
	return nil
}

// FindRecent 直近の寄付予定通知を取得（新しい順）
func (r *DonationRepository) FindRecent(ctx context.Context, limit int) ([]*ledger.DonationDue, error) {
	defer r.store.rlock(ctx)()

	donations := r.store.donations
	n := len(donations)
	if limit > n {
		limit = n
	}
	result := make([]*ledger.DonationDue, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		copied := *donations[i]
		result = append(result, &copied)
	}
	return result, nil
}
